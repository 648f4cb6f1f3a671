package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nzemmouri/subdeck/internal/model"
	"github.com/nzemmouri/subdeck/internal/search"
)

func TestRenderResponse_NoResults(t *testing.T) {
	var buf bytes.Buffer
	NewPlain(&buf).RenderResponse(search.EmptyResponse())

	assert.Equal(t, "No results.\n", buf.String())
}

func TestRenderResponse_Results(t *testing.T) {
	var buf bytes.Buffer
	resp := &search.Response{
		Results: []search.Result{
			{
				ID: "p1", Type: model.TypePlatform, Title: "Netflix Supplier",
				Subtitle: "Streaming accounts", Description: "Balance: 1250.5 DZD",
				RelevanceScore: 36, MatchedFields: []string{"content", "name"},
				URL: "/platforms/p1", Icon: "🏢", Status: "active",
			},
		},
		TotalCount:  1,
		SearchTime:  3,
		Suggestions: []string{"Netflix Supplier"},
	}

	NewPlain(&buf).RenderResponse(resp)
	out := buf.String()

	assert.Contains(t, out, "Netflix Supplier")
	assert.Contains(t, out, "(36)")
	assert.Contains(t, out, "platform • /platforms/p1 • active • matched: content,name")
	assert.Contains(t, out, "1 of 1 results in 3ms")
	assert.Contains(t, out, "Related: Netflix Supplier")
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	stats := search.IndexStats{
		TotalItems: 8,
		LastUpdate: time.Now(),
		EntityCounts: map[model.EntityType]int{
			model.TypeSale:     2,
			model.TypePlatform: 2,
		},
	}

	NewPlain(&buf).RenderStats(stats)
	out := buf.String()

	assert.Contains(t, out, "Entries:     8")
	assert.Contains(t, out, "platform")
	assert.Contains(t, out, "sale")
	idxPlatform := bytes.Index(buf.Bytes(), []byte("platform"))
	idxSale := bytes.Index(buf.Bytes(), []byte("sale"))
	assert.Less(t, idxPlatform, idxSale, "entity types print in sorted order")
}

func TestRenderStats_NeverBuilt(t *testing.T) {
	var buf bytes.Buffer
	NewPlain(&buf).RenderStats(search.IndexStats{})

	assert.Contains(t, buf.String(), "never")
}

func TestRenderSuggestions(t *testing.T) {
	var buf bytes.Buffer
	NewPlain(&buf).RenderSuggestions([]string{"netflix", "Netflix Supplier"})
	assert.Equal(t, "netflix\nNetflix Supplier\n", buf.String())

	buf.Reset()
	NewPlain(&buf).RenderSuggestions(nil)
	assert.Equal(t, "No suggestions.\n", buf.String())
}

func TestWriter_StatusIcons(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlain(&buf)

	w.Successf("Seeded %d suppliers", 2)
	w.Warning("low balance")
	w.Status("", "plain line")

	out := buf.String()
	assert.Contains(t, out, "✅ Seeded 2 suppliers")
	assert.Contains(t, out, "low balance")
	assert.Contains(t, out, "   plain line")
}
