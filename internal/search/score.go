package search

import (
	"strings"
	"time"

	"github.com/nzemmouri/subdeck/internal/model"
)

// Score contributions. The relevance score is an additive, non-normalized
// heuristic: every query word accumulates the contributions below
// independently, plus a per-entry recency boost.
const (
	scoreContent  = 10 // query word is a substring of the searchable text
	scoreKeyword  = 8  // query word is an exact keyword
	scoreFuzzy    = 3  // some keyword is within edit distance 2
	scoreName     = 15 // query word is a substring of the primary name
	scoreCustomer = 12 // query word is a substring of the sale's customer name
	scoreRecent   = 2  // primary date under 7 days old
	scoreFresh    = 3  // additionally, primary date under 1 day old
)

// scorer scores index entries against a tokenized query.
type scorer struct {
	fuzzy   *fuzzyMatcher
	useFuzz bool
	now     time.Time
}

// score computes the relevance score and ordered matched-field tags for
// one entry. The fuzzy contribution is added once per query word when any
// keyword is close enough, not once per close keyword. An entry with a
// zero score is not a candidate.
func (sc *scorer) score(entry *IndexEntry, queryWords []string) (float64, []string) {
	var total float64
	var tags matchTags

	name := strings.ToLower(primaryName(entry.Entity))
	var customer string
	if sale, ok := entry.Entity.(model.Sale); ok {
		customer = strings.ToLower(sale.CustomerName)
	}

	for _, word := range queryWords {
		if strings.Contains(entry.SearchableText, word) {
			total += scoreContent
			tags.set(FieldContent)
		}
		if _, exact := entry.keywordSet[word]; exact {
			total += scoreKeyword
			tags.set(FieldKeywords)
		}
		if sc.useFuzz && sc.fuzzy.withinDistance(word, entry.Keywords) {
			total += scoreFuzzy
			tags.set(FieldFuzzy)
		}
		if nameBoostApplies(entry.Type) && name != "" && strings.Contains(name, word) {
			total += scoreName
			tags.set(FieldName)
		}
		if customer != "" && strings.Contains(customer, word) {
			total += scoreCustomer
			tags.set(FieldCustomer)
		}
	}

	if total > 0 {
		total += recencyBoost(primaryDate(entry.Entity), sc.now)
	}
	return total, tags.ordered()
}

// nameBoostApplies limits the primary-name boost to suppliers and
// products; sales get the customer boost instead.
func nameBoostApplies(t model.EntityType) bool {
	return t == model.TypePlatform || t == model.TypeProduct
}

// recencyBoost is applied once per entry: +2 under 7 days, a further +3
// under 1 day. A same-day entry gets +5 on top of its word-match score.
func recencyBoost(date time.Time, now time.Time) float64 {
	if date.IsZero() {
		return 0
	}
	age := now.Sub(date)
	if age < 0 {
		age = 0
	}
	var boost float64
	if age < 7*24*time.Hour {
		boost += scoreRecent
		if age < 24*time.Hour {
			boost += scoreFresh
		}
	}
	return boost
}

// matchTags accumulates matched-field tags in their canonical order,
// deduplicated across query words.
type matchTags struct {
	content, keywords, fuzzy, name, customer bool
}

func (m *matchTags) set(tag string) {
	switch tag {
	case FieldContent:
		m.content = true
	case FieldKeywords:
		m.keywords = true
	case FieldFuzzy:
		m.fuzzy = true
	case FieldName:
		m.name = true
	case FieldCustomer:
		m.customer = true
	}
}

func (m *matchTags) ordered() []string {
	tags := make([]string, 0, 5)
	if m.content {
		tags = append(tags, FieldContent)
	}
	if m.keywords {
		tags = append(tags, FieldKeywords)
	}
	if m.fuzzy {
		tags = append(tags, FieldFuzzy)
	}
	if m.name {
		tags = append(tags, FieldName)
	}
	if m.customer {
		tags = append(tags, FieldCustomer)
	}
	return tags
}
