package search

import (
	"time"

	"github.com/nzemmouri/subdeck/internal/model"
)

// SortField selects the sort key for search results.
type SortField string

const (
	SortRelevance SortField = "relevance"
	SortDate      SortField = "date"
	SortAmount    SortField = "amount"
	SortName      SortField = "name"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DateRange bounds an entry's primary date. A zero Start or End leaves
// that side unbounded.
type DateRange struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Filters are the structural restrictions applied before scoring.
// All set fields must match (AND logic).
type Filters struct {
	// EntityTypes restricts results to a subset of variants. Empty means
	// all four.
	EntityTypes []model.EntityType `json:"entityTypes,omitempty"`

	// SupplierID scopes results to one supplier: the supplier itself and
	// every product, sale, and movement referencing it.
	SupplierID string `json:"supplierId,omitempty"`

	// DateRange bounds the entry's primary date (createdAt, or saleDate
	// for sales).
	DateRange *DateRange `json:"dateRange,omitempty"`

	// Status matches a sale's payment status, or "active"/"inactive" for
	// suppliers. Other variants are unaffected.
	Status string `json:"status,omitempty"`

	// Category restricts products by category. Non-products are unaffected.
	Category string `json:"category,omitempty"`

	// PaymentStatus restricts sales by payment status. Non-sales are
	// unaffected.
	PaymentStatus string `json:"paymentStatus,omitempty"`

	// MinAmount and MaxAmount bound the type-specific amount field:
	// totalPrice for sales, |amount| for movements, creditBalance for
	// suppliers, suggestedSellPrice for products.
	MinAmount *float64 `json:"minAmount,omitempty"`
	MaxAmount *float64 `json:"maxAmount,omitempty"`

	// SortBy defaults to relevance, SortOrder to descending.
	SortBy    SortField `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`
}

// Options configures one search call.
type Options struct {
	// Query is the free-text query. Empty or whitespace-only yields the
	// canonical empty response without touching the index.
	Query string `json:"query"`

	Filters Filters `json:"filters"`

	// Limit is the page size (default 20); Offset the page start.
	Limit  int `json:"limit"`
	Offset int `json:"offset"`

	// IncludeInactive keeps inactive suppliers and products in results.
	IncludeInactive bool `json:"includeInactive"`

	// FuzzySearch enables the edit-distance score contribution. Nil means
	// the default, enabled, so a zero-value or JSON-decoded Options keeps
	// fuzzy matching on.
	FuzzySearch *bool `json:"fuzzySearch,omitempty"`

	// HighlightMatches is accepted for interface compatibility but does
	// not gate anything: matched-field tags are always computed. Nil
	// means the default, enabled.
	HighlightMatches *bool `json:"highlightMatches,omitempty"`
}

// Bool returns a pointer to b, for the optional boolean options.
func Bool(b bool) *bool { return &b }

// NewOptions returns Options for query with the documented defaults:
// limit 20, fuzzy search on, highlighting on.
func NewOptions(query string) Options {
	return Options{
		Query:            query,
		Limit:            20,
		FuzzySearch:      Bool(true),
		HighlightMatches: Bool(true),
	}
}

// normalize fills unset pagination, sort, and flag fields with their
// defaults.
func (o *Options) normalize(defaultLimit int) {
	if o.FuzzySearch == nil {
		o.FuzzySearch = Bool(true)
	}
	if o.HighlightMatches == nil {
		o.HighlightMatches = Bool(true)
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	switch o.Filters.SortBy {
	case SortRelevance, SortDate, SortAmount, SortName:
	default:
		o.Filters.SortBy = SortRelevance
	}
	switch o.Filters.SortOrder {
	case SortAsc, SortDesc:
	default:
		o.Filters.SortOrder = SortDesc
	}
}
