package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nzemmouri/subdeck/internal/model"
)

func entryFor(e model.Entity, t model.EntityType) *IndexEntry {
	return newIndexEntry(e, t)
}

func TestBuildFilters_NoCriteria(t *testing.T) {
	opts := NewOptions("q")
	opts.IncludeInactive = true

	filters := buildFilters(opts)

	assert.Empty(t, filters, "no criteria compiles to no filters")
}

func TestFilters_ActiveOnlyIsDefault(t *testing.T) {
	opts := NewOptions("q")
	filters := buildFilters(opts)

	inactive := entryFor(model.Supplier{ID: "p2", IsActive: false}, model.TypePlatform)
	active := entryFor(model.Supplier{ID: "p1", IsActive: true}, model.TypePlatform)
	sale := entryFor(model.Sale{ID: "s1"}, model.TypeSale)
	movement := entryFor(model.CreditMovement{ID: "m1"}, model.TypeCreditMovement)

	assert.False(t, matchesAll(inactive, filters))
	assert.True(t, matchesAll(active, filters))
	assert.True(t, matchesAll(sale, filters), "sales have no active flag")
	assert.True(t, matchesAll(movement, filters), "movements have no active flag")
}

func TestFilters_SupplierScope(t *testing.T) {
	opts := NewOptions("q")
	opts.Filters.SupplierID = "p1"
	filters := buildFilters(opts)

	tests := []struct {
		name   string
		entry  *IndexEntry
		expect bool
	}{
		{"supplier matches itself", entryFor(model.Supplier{ID: "p1", IsActive: true}, model.TypePlatform), true},
		{"other supplier excluded", entryFor(model.Supplier{ID: "p2", IsActive: true}, model.TypePlatform), false},
		{"product of supplier", entryFor(model.Product{ID: "pr1", SupplierID: "p1", IsActive: true}, model.TypeProduct), true},
		{"sale of supplier", entryFor(model.Sale{ID: "s1", SupplierID: "p1"}, model.TypeSale), true},
		{"movement of other supplier", entryFor(model.CreditMovement{ID: "m1", SupplierID: "p2"}, model.TypeCreditMovement), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, matchesAll(tt.entry, filters))
		})
	}
}

func TestFilters_DateRangeOpenEnds(t *testing.T) {
	entry := entryFor(model.Sale{ID: "s1", SaleDate: date(2025, 1, 15)}, model.TypeSale)

	tests := []struct {
		name   string
		rng    DateRange
		expect bool
	}{
		{"inside", DateRange{Start: date(2025, 1, 14), End: date(2025, 1, 16)}, true},
		{"before start", DateRange{Start: date(2025, 1, 16)}, false},
		{"after end", DateRange{End: date(2025, 1, 14)}, false},
		{"open start", DateRange{End: date(2025, 1, 16)}, true},
		{"open end", DateRange{Start: date(2025, 1, 14)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions("q")
			opts.Filters.DateRange = &tt.rng
			assert.Equal(t, tt.expect, matchesAll(entry, buildFilters(opts)))
		})
	}
}

func TestFilters_AmountBounds(t *testing.T) {
	min, max := 100.0, 1000.0
	opts := NewOptions("q")
	opts.IncludeInactive = true
	opts.Filters.MinAmount = &min
	opts.Filters.MaxAmount = &max
	filters := buildFilters(opts)

	tests := []struct {
		name   string
		entry  *IndexEntry
		expect bool
	}{
		{"supplier balance in range", entryFor(model.Supplier{ID: "p1", CreditBalance: 500}, model.TypePlatform), true},
		{"product price above max", entryFor(model.Product{ID: "pr1", SuggestedSellPrice: 1500}, model.TypeProduct), false},
		{"sale total below min", entryFor(model.Sale{ID: "s1", TotalPrice: 10}, model.TypeSale), false},
		{"sale total at min boundary", entryFor(model.Sale{ID: "s2", TotalPrice: 100}, model.TypeSale), true},
		{"movement amount uses absolute value", entryFor(model.CreditMovement{ID: "m1", Amount: -500}, model.TypeCreditMovement), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, matchesAll(tt.entry, filters))
		})
	}
}

func TestFilters_StatusPerVariant(t *testing.T) {
	opts := NewOptions("q")
	opts.IncludeInactive = true
	opts.Filters.Status = "inactive"
	filters := buildFilters(opts)

	assert.True(t, matchesAll(entryFor(model.Supplier{ID: "p2"}, model.TypePlatform), filters))
	assert.False(t, matchesAll(entryFor(model.Supplier{ID: "p1", IsActive: true}, model.TypePlatform), filters))
	assert.False(t, matchesAll(entryFor(model.Sale{ID: "s1", PaymentStatus: "paid"}, model.TypeSale), filters))
	assert.True(t, matchesAll(entryFor(model.Product{ID: "pr1", IsActive: true}, model.TypeProduct), filters),
		"products pass any status value")
}
