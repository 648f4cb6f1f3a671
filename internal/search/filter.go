package search

import (
	"github.com/nzemmouri/subdeck/internal/model"
)

// filterFunc checks whether an index entry survives one filter criterion.
type filterFunc func(entry *IndexEntry) bool

// buildFilters compiles the structural filters for one search call.
// Filters use AND logic: an entry must pass every compiled filter.
func buildFilters(opts Options) []filterFunc {
	var filters []filterFunc
	f := opts.Filters

	if len(f.EntityTypes) > 0 {
		allowed := make(map[model.EntityType]struct{}, len(f.EntityTypes))
		for _, t := range f.EntityTypes {
			allowed[t] = struct{}{}
		}
		filters = append(filters, func(e *IndexEntry) bool {
			_, ok := allowed[e.Type]
			return ok
		})
	}

	if f.SupplierID != "" {
		filters = append(filters, func(e *IndexEntry) bool {
			return supplierIDOf(e.Entity) == f.SupplierID
		})
	}

	if f.DateRange != nil {
		dr := *f.DateRange
		filters = append(filters, func(e *IndexEntry) bool {
			d := primaryDate(e.Entity)
			if !dr.Start.IsZero() && d.Before(dr.Start) {
				return false
			}
			if !dr.End.IsZero() && d.After(dr.End) {
				return false
			}
			return true
		})
	}

	if !opts.IncludeInactive {
		filters = append(filters, activeOnlyFilter)
	}

	if f.Status != "" {
		status := f.Status
		filters = append(filters, func(e *IndexEntry) bool {
			switch v := e.Entity.(type) {
			case model.Sale:
				return v.PaymentStatus == status
			case model.Supplier:
				return activeStatus(v.IsActive) == status
			default:
				return true
			}
		})
	}

	if f.Category != "" {
		category := f.Category
		filters = append(filters, func(e *IndexEntry) bool {
			if p, ok := e.Entity.(model.Product); ok {
				return p.Category == category
			}
			return true
		})
	}

	if f.PaymentStatus != "" {
		payment := f.PaymentStatus
		filters = append(filters, func(e *IndexEntry) bool {
			if s, ok := e.Entity.(model.Sale); ok {
				return s.PaymentStatus == payment
			}
			return true
		})
	}

	if f.MinAmount != nil {
		min := *f.MinAmount
		filters = append(filters, func(e *IndexEntry) bool {
			return amountOf(e.Entity) >= min
		})
	}

	if f.MaxAmount != nil {
		max := *f.MaxAmount
		filters = append(filters, func(e *IndexEntry) bool {
			return amountOf(e.Entity) <= max
		})
	}

	return filters
}

// activeOnlyFilter excludes inactive suppliers and products. Sales and
// movements have no active flag and always pass.
func activeOnlyFilter(e *IndexEntry) bool {
	switch v := e.Entity.(type) {
	case model.Supplier:
		return v.IsActive
	case model.Product:
		return v.IsActive
	default:
		return true
	}
}

// matchesAll reports whether the entry passes every filter.
func matchesAll(entry *IndexEntry, filters []filterFunc) bool {
	for _, f := range filters {
		if !f(entry) {
			return false
		}
	}
	return true
}
