package search

import (
	"sort"
	"strings"

	"github.com/nzemmouri/subdeck/internal/model"
)

// suggestionScanLimit is how many top matches are scanned for inline
// suggestions in a search response.
const suggestionScanLimit = 10

// match is one entry that survived filtering with a positive score.
type match struct {
	entry   *IndexEntry
	score   float64
	matched []string
}

// runQuery linearly scans the snapshot, applies the structural filters,
// and scores survivors. Only entries with a positive score become
// candidates. Scan order follows the snapshot's stable entry order.
func runQuery(snap *indexSnapshot, queryWords []string, opts Options, sc *scorer) []*match {
	filters := buildFilters(opts)

	var matches []*match
	for _, entry := range snap.entries {
		if !matchesAll(entry, filters) {
			continue
		}
		score, matched := sc.score(entry, queryWords)
		if score <= 0 {
			continue
		}
		matches = append(matches, &match{entry: entry, score: score, matched: matched})
	}
	return matches
}

// sortMatches orders matches by the requested sort key. The sort is
// stable, so ties keep scan order and repeated calls return identical
// orderings.
func sortMatches(matches []*match, by SortField, order SortOrder) {
	less := func(a, b *match) bool {
		switch by {
		case SortDate:
			return primaryDate(a.entry.Entity).Before(primaryDate(b.entry.Entity))
		case SortAmount:
			return amountOf(a.entry.Entity) < amountOf(b.entry.Entity)
		case SortName:
			return strings.ToLower(primaryName(a.entry.Entity)) < strings.ToLower(primaryName(b.entry.Entity))
		default:
			return a.score < b.score
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if order == SortAsc {
			return less(matches[i], matches[j])
		}
		return less(matches[j], matches[i])
	})
}

// paginate slices [offset, offset+limit) out of the sorted matches.
func paginate(matches []*match, offset, limit int) []*match {
	if offset >= len(matches) {
		return nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end]
}

// tallyFacets counts the full match set along each facet dimension:
// entity type, owning supplier, product category, and type-specific
// status. Suppliers carry no supplier reference of their own, so they
// stay out of the platforms tally.
func tallyFacets(matches []*match) Facets {
	facets := emptyFacets()
	for _, m := range matches {
		facets.EntityTypes[m.entry.Type]++

		if _, ok := m.entry.Entity.(model.Supplier); !ok {
			if id := supplierIDOf(m.entry.Entity); id != "" {
				facets.Platforms[id]++
			}
		}
		if p, ok := m.entry.Entity.(model.Product); ok && p.Category != "" {
			facets.Categories[p.Category]++
		}
		if status := statusOf(m.entry.Entity); status != "" {
			facets.Statuses[status]++
		}
	}
	return facets
}

// collectSuggestions gathers distinguishing strings from the first ten
// post-sort matches: supplier name and contact, product name and
// category, sale customer and product name. Deduplicated, capped at max.
func collectSuggestions(matches []*match, max int) []string {
	suggestions := make([]string, 0, max)
	seen := make(map[string]struct{})

	add := func(s string) bool {
		if s == "" || len(suggestions) >= max {
			return len(suggestions) < max
		}
		if _, dup := seen[s]; dup {
			return true
		}
		seen[s] = struct{}{}
		suggestions = append(suggestions, s)
		return len(suggestions) < max
	}

	scan := matches
	if len(scan) > suggestionScanLimit {
		scan = scan[:suggestionScanLimit]
	}
	for _, m := range scan {
		switch v := m.entry.Entity.(type) {
		case model.Supplier:
			if !add(v.Name) || !add(v.ContactName) {
				return suggestions
			}
		case model.Product:
			if !add(v.Name) || !add(v.Category) {
				return suggestions
			}
		case model.Sale:
			if !add(v.CustomerName) || !add(v.ProductName) {
				return suggestions
			}
		case model.CreditMovement:
			// Movements contribute nothing distinguishing.
		}
	}
	return suggestions
}
