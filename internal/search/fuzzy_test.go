package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b   string
		expect int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"netflix", "netflix", 0},
		{"netflex", "netflix", 1},
		{"kitten", "sitting", 3},
		{"cart", "care", 1},
		{"spotify", "shopify", 2},
		{"café", "cafe", 1}, // rune-wise, not byte-wise
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expect, levenshtein(tt.a, tt.b))
		})
	}
}

func TestFuzzyMatcher_WithinDistance(t *testing.T) {
	f := newFuzzyMatcher(128)
	keywords := []string{"netflix", "premium", "streaming"}

	assert.True(t, f.withinDistance("netflex", keywords))
	assert.True(t, f.withinDistance("netflix", keywords), "distance zero counts")
	assert.False(t, f.withinDistance("spotify", keywords))
	assert.False(t, f.withinDistance("net", keywords),
		"length difference beyond the threshold short-circuits")
}

func TestFuzzyMatcher_WithinDistanceMultibyte(t *testing.T) {
	f := newFuzzyMatcher(128)

	// "créée" is seven bytes but five runes; the length prefilter must
	// count runes or it skips a pair two edits away from "cree".
	assert.True(t, f.withinDistance("créée", []string{"cree"}))
	assert.Equal(t, 2, levenshtein("créée", "cree"))
}

func TestFuzzyMatcher_MemoizesDistances(t *testing.T) {
	f := newFuzzyMatcher(128)

	first := f.distance("netflex", "netflix")
	cached := f.distance("netflex", "netflix")

	assert.Equal(t, 1, first)
	assert.Equal(t, first, cached)
	assert.Equal(t, 1, f.memo.Len())
}
