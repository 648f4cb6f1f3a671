package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nzemmouri/subdeck/internal/model"
)

func newTestScorer(useFuzz bool) *scorer {
	return &scorer{
		fuzzy:   newFuzzyMatcher(128),
		useFuzz: useFuzz,
		now:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestScorer_ContributionsStack(t *testing.T) {
	entry := newIndexEntry(model.Supplier{
		ID: "p1", Name: "Netflix Supplier", IsActive: true,
		CreatedAt: date(2025, 1, 10),
	}, model.TypePlatform)

	sc := newTestScorer(true)
	score, matched := sc.score(entry, []string{"netflix"})

	// content 10 + exact keyword 8 + fuzzy 3 + name 15.
	assert.Equal(t, float64(36), score)
	assert.Equal(t, []string{FieldContent, FieldKeywords, FieldFuzzy, FieldName}, matched)
}

func TestScorer_FuzzyOnly(t *testing.T) {
	entry := newIndexEntry(model.Supplier{
		ID: "p1", Name: "Netflix Supplier", IsActive: true,
		CreatedAt: date(2025, 1, 10),
	}, model.TypePlatform)

	sc := newTestScorer(true)
	score, matched := sc.score(entry, []string{"netflex"})
	assert.Equal(t, float64(scoreFuzzy), score)
	assert.Equal(t, []string{FieldFuzzy}, matched)

	sc = newTestScorer(false)
	score, matched = sc.score(entry, []string{"netflex"})
	assert.Zero(t, score)
	assert.Empty(t, matched)
}

func TestScorer_FuzzyAppliedOncePerQueryWord(t *testing.T) {
	// Both keywords are within distance 2 of the query word; the fuzzy
	// contribution must still be added once, not per close keyword.
	entry := newIndexEntry(model.Product{
		ID: "pr1", Name: "cart card", IsActive: true,
	}, model.TypeProduct)

	sc := newTestScorer(true)
	score, _ := sc.score(entry, []string{"care"})

	assert.Equal(t, float64(scoreFuzzy), score)
}

func TestScorer_CustomerBoostForSales(t *testing.T) {
	entry := newIndexEntry(model.Sale{
		ID: "s1", ProductName: "Netflix Premium", CustomerName: "Karim Belkacem",
		SaleDate: date(2025, 1, 15),
	}, model.TypeSale)

	sc := newTestScorer(false)
	score, matched := sc.score(entry, []string{"karim"})

	// content 10 + keyword 8 + customer 12; no name boost for sales.
	assert.Equal(t, float64(30), score)
	assert.Equal(t, []string{FieldContent, FieldKeywords, FieldCustomer}, matched)
}

func TestScorer_NameBoostNotForMovements(t *testing.T) {
	entry := newIndexEntry(model.CreditMovement{
		ID: "m1", SupplierID: "p1", Type: model.MovementCreditAdded,
		Amount: 500, CreatedAt: date(2025, 1, 13),
	}, model.TypeCreditMovement)

	sc := newTestScorer(false)
	score, matched := sc.score(entry, []string{"credit_added"})

	// content 10 + keyword 8. primaryName equals the movement type but the
	// name boost only applies to suppliers and products.
	assert.Equal(t, float64(18), score)
	assert.NotContains(t, matched, FieldName)
}

func TestScorer_MultiWordQueryAccumulates(t *testing.T) {
	entry := newIndexEntry(model.Product{
		ID: "pr1", Name: "Netflix Premium 4K", Category: "streaming", IsActive: true,
	}, model.TypeProduct)

	sc := newTestScorer(false)
	single, _ := sc.score(entry, []string{"netflix"})
	double, _ := sc.score(entry, []string{"netflix", "premium"})

	assert.Equal(t, 2*single, double, "each query word contributes independently")
}

func TestScorer_RecencyBoost(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	sc := &scorer{fuzzy: newFuzzyMatcher(128), now: now}

	build := func(createdAt time.Time) *IndexEntry {
		return newIndexEntry(model.Supplier{
			ID: "p1", Name: "Netflix Supplier", IsActive: true, CreatedAt: createdAt,
		}, model.TypePlatform)
	}

	old, _ := sc.score(build(now.Add(-30*24*time.Hour)), []string{"netflix"})
	recent, _ := sc.score(build(now.Add(-3*24*time.Hour)), []string{"netflix"})
	fresh, _ := sc.score(build(now.Add(-2*time.Hour)), []string{"netflix"})

	assert.Equal(t, old+scoreRecent, recent, "under 7 days adds +2")
	assert.Equal(t, old+scoreRecent+scoreFresh, fresh, "under 1 day adds +5 total")
}

func TestScorer_NoRecencyBoostWithoutWordMatch(t *testing.T) {
	sc := newTestScorer(false)
	entry := newIndexEntry(model.Supplier{
		ID: "p1", Name: "Netflix Supplier", IsActive: true,
		CreatedAt: sc.now.Add(-time.Hour),
	}, model.TypePlatform)

	score, _ := sc.score(entry, []string{"zzzzzz"})

	assert.Zero(t, score, "recency alone never makes an entry a match")
}

func TestRecencyBoost_ZeroDate(t *testing.T) {
	now := time.Now()
	assert.Zero(t, recencyBoost(time.Time{}, now))
	assert.Equal(t, float64(scoreRecent+scoreFresh), recencyBoost(now.Add(time.Hour), now),
		"a future date clamps to age zero")
}
