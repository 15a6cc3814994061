package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/pokedex/internal/domain"
)

// Match is a fuzzy match over a list of names
type Match struct {
	Index          int   // Index in the source slice
	Score          int   // Higher is better
	MatchedIndexes []int // Character positions that matched (for highlighting)
}

// nameIndex implements sahilm/fuzzy.Source over pre-lowered names
type nameIndex struct {
	lower []string
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx nameIndex) String(i int) string { return idx.lower[i] }

// Len returns the number of names (implements fuzzy.Source)
func (idx nameIndex) Len() int { return len(idx.lower) }

// FuzzyFind performs subsequence matching of query against names ("pkch"
// matches "pikachu"). Results are sorted best first. An empty query matches
// nothing.
func FuzzyFind(query string, names []string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	idx := nameIndex{lower: make([]string, len(names))}
	for i, n := range names {
		idx.lower[i] = strings.ToLower(n)
	}

	found := fuzzy.FindFrom(query, idx)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Index:          m.Index,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return matches
}

// Suggest returns up to max species whose names are close to query by edit
// distance, for "did you mean" hints when the substring filter is empty.
// Names are compared as whole words, so only typos of similar length rank.
func Suggest(query string, refs []domain.SpeciesRef, max int) []domain.SpeciesRef {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(refs) == 0 || max <= 0 {
		return nil
	}

	type scored struct {
		ref      domain.SpeciesRef
		distance int
		order    int
	}

	limit := maxSuggestDistance(query)
	var candidates []scored
	for i, ref := range refs {
		d := lfuzzy.LevenshteinDistance(query, strings.ToLower(ref.Name))
		if d <= limit {
			candidates = append(candidates, scored{ref: ref, distance: d, order: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]domain.SpeciesRef, len(candidates))
	for i, c := range candidates {
		out[i] = c.ref
	}
	return out
}

// maxSuggestDistance scales typo tolerance with query length
func maxSuggestDistance(query string) int {
	switch n := len([]rune(query)); {
	case n <= 3:
		return 1
	case n <= 6:
		return 2
	default:
		return 3
	}
}
