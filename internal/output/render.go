package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nzemmouri/subdeck/internal/model"
	"github.com/nzemmouri/subdeck/internal/search"
)

// RenderResponse prints a search response in the human-readable format.
func (w *Writer) RenderResponse(resp *search.Response) {
	if resp.TotalCount == 0 {
		w.Println(w.styled(dimStyle, "No results."))
		return
	}

	for i, r := range resp.Results {
		w.RenderResult(i+1, r)
	}

	w.Println(w.styled(sepStyle, strings.Repeat("─", 40)))
	w.Printf("%s\n", w.styled(dimStyle, fmt.Sprintf(
		"%d of %d results in %dms", len(resp.Results), resp.TotalCount, resp.SearchTime)))

	if len(resp.Suggestions) > 0 {
		w.Printf("%s %s\n",
			w.styled(dimStyle, "Related:"),
			strings.Join(resp.Suggestions, ", "))
	}
}

// RenderResult prints one result with its rank.
func (w *Writer) RenderResult(rank int, r search.Result) {
	w.Printf("%2d. %s %s  %s\n", rank, r.Icon,
		w.styled(titleStyle, r.Title),
		w.styled(scoreStyle, fmt.Sprintf("(%.0f)", r.RelevanceScore)))
	if r.Subtitle != "" {
		w.Printf("    %s\n", w.styled(subtitleStyle, r.Subtitle))
	}
	if r.Description != "" {
		w.Printf("    %s\n", r.Description)
	}
	meta := fmt.Sprintf("%s • %s", r.Type, r.URL)
	if r.Status != "" {
		meta += " • " + r.Status
	}
	if len(r.MatchedFields) > 0 {
		meta += " • matched: " + strings.Join(r.MatchedFields, ",")
	}
	w.Printf("    %s\n", w.styled(dimStyle, meta))
}

// RenderStats prints index statistics.
func (w *Writer) RenderStats(stats search.IndexStats) {
	w.Println(w.styled(headerStyle, "Index"))
	w.Printf("  Entries:     %d\n", stats.TotalItems)
	if stats.LastUpdate.IsZero() {
		w.Printf("  Last update: %s\n", w.styled(dimStyle, "never"))
	} else {
		w.Printf("  Last update: %s (%s ago)\n",
			stats.LastUpdate.Format(time.RFC3339),
			time.Since(stats.LastUpdate).Round(time.Second))
	}

	if len(stats.EntityCounts) == 0 {
		return
	}
	types := make([]model.EntityType, 0, len(stats.EntityCounts))
	for t := range stats.EntityCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	w.Println(w.styled(headerStyle, "Entities"))
	for _, t := range types {
		w.Printf("  %-16s %d\n", t, stats.EntityCounts[t])
	}
}

// RenderSuggestions prints typeahead suggestions one per line.
func (w *Writer) RenderSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		w.Println(w.styled(dimStyle, "No suggestions."))
		return
	}
	for _, s := range suggestions {
		w.Println(s)
	}
}

func titleStyle(s Styles) lipgloss.Style    { return s.Title }
func subtitleStyle(s Styles) lipgloss.Style { return s.Subtitle }
func dimStyle(s Styles) lipgloss.Style      { return s.Dim }
func scoreStyle(s Styles) lipgloss.Style    { return s.Score }
func headerStyle(s Styles) lipgloss.Style   { return s.Header }
func sepStyle(s Styles) lipgloss.Style      { return s.Separator }
