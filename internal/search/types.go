// Package search implements the in-process search core: a rebuildable
// in-memory keyword index over the four business record variants, a
// deterministic heuristic scorer, filtering, faceting, pagination, and
// typeahead suggestions.
//
// The index is a process-wide cache, lazily built on first use and
// rebuilt wholesale on a fixed interval. Rebuilds construct a fresh
// immutable snapshot and publish it atomically, so readers never observe
// a partially built index. All mutations happen in the record source and
// become visible after the next rebuild.
package search

import (
	"time"

	"github.com/nzemmouri/subdeck/internal/model"
)

// Matched-field tags reported per result.
const (
	FieldContent  = "content"
	FieldKeywords = "keywords"
	FieldFuzzy    = "fuzzy"
	FieldName     = "name"
	FieldCustomer = "customer"
)

// Result is the uniform, UI-agnostic shape every matched entry is
// converted to. Metadata carries the type-specific fields consumers use
// for secondary display.
type Result struct {
	ID             string           `json:"id"`
	Type           model.EntityType `json:"type"`
	Title          string           `json:"title"`
	Subtitle       string           `json:"subtitle"`
	Description    string           `json:"description"`
	Metadata       map[string]any   `json:"metadata"`
	RelevanceScore float64          `json:"relevanceScore"`
	MatchedFields  []string         `json:"matchedFields"`
	URL            string           `json:"url"`
	Icon           string           `json:"icon"`
	Status         string           `json:"status,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      *time.Time       `json:"updatedAt,omitempty"`
}

// Response is the envelope returned by Service.Search.
// TotalCount reflects the full filtered-and-scored match count before
// pagination; SearchTime is wall time in milliseconds.
type Response struct {
	Results     []Result `json:"results"`
	TotalCount  int      `json:"totalCount"`
	SearchTime  int64    `json:"searchTime"`
	Suggestions []string `json:"suggestions"`
	Facets      Facets   `json:"facets"`
}

// Facets are count breakdowns of the current match set, used to drive
// filter-UI counters. Tallied over all matches, not just the page.
type Facets struct {
	EntityTypes map[model.EntityType]int `json:"entityTypes"`
	Platforms   map[string]int           `json:"platforms"`
	Categories  map[string]int           `json:"categories"`
	Statuses    map[string]int           `json:"statuses"`
}

// emptyFacets returns a Facets value with empty, non-nil maps.
func emptyFacets() Facets {
	return Facets{
		EntityTypes: map[model.EntityType]int{},
		Platforms:   map[string]int{},
		Categories:  map[string]int{},
		Statuses:    map[string]int{},
	}
}

// EmptyResponse returns the canonical empty search response: no results,
// no suggestions, empty facet maps, zero timing.
func EmptyResponse() *Response {
	return &Response{
		Results:     []Result{},
		TotalCount:  0,
		SearchTime:  0,
		Suggestions: []string{},
		Facets:      emptyFacets(),
	}
}

// IndexStats describes the current index state. Pure read; requesting
// stats never triggers a rebuild.
type IndexStats struct {
	TotalItems   int                      `json:"totalItems"`
	LastUpdate   time.Time                `json:"lastUpdate"`
	EntityCounts map[model.EntityType]int `json:"entityCounts"`
}
