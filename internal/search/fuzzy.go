package search

import (
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// maxFuzzyDistance is the edit-distance threshold for a fuzzy keyword
// match.
const maxFuzzyDistance = 2

// fuzzyMatcher computes Levenshtein distances with a bounded memo cache.
// Query words repeat across entries within a scan and across consecutive
// searches, so memoization pays for itself quickly.
type fuzzyMatcher struct {
	memo *lru.Cache[string, int]
}

func newFuzzyMatcher(cacheSize int) *fuzzyMatcher {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	// Only errors on non-positive size.
	cache, _ := lru.New[string, int](cacheSize)
	return &fuzzyMatcher{memo: cache}
}

// distance returns the Levenshtein edit distance between a and b,
// consulting the memo cache first.
func (f *fuzzyMatcher) distance(a, b string) int {
	key := a + "\x00" + b
	if d, ok := f.memo.Get(key); ok {
		return d
	}
	d := levenshtein(a, b)
	f.memo.Add(key, d)
	return d
}

// withinDistance reports whether any keyword is within maxFuzzyDistance
// of word. Rune-length difference alone already bounds the distance, so
// pairs that cannot be close are skipped without running the table.
func (f *fuzzyMatcher) withinDistance(word string, keywords []string) bool {
	wordLen := utf8.RuneCountInString(word)
	for _, k := range keywords {
		diff := utf8.RuneCountInString(k) - wordLen
		if diff < 0 {
			diff = -diff
		}
		if diff > maxFuzzyDistance {
			continue
		}
		if f.distance(word, k) <= maxFuzzyDistance {
			return true
		}
	}
	return false
}

// levenshtein computes classic dynamic-programming edit distance over
// rune strings, O(len(a)*len(b)) time with a rolling row.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
