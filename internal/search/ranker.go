// Package search reorders store results by relevance. The store only
// filters; ranking happens here, in memory, over the candidate set.
package search

import (
	"sort"
	"strings"
)

const prefixScore = 20

// score rates how well query matches description. A prefix match beats any
// positional match; otherwise matches nearer the start of the description
// score higher. This is a cheap approximation, not edit distance.
func score(description, query string) (int, bool) {
	desc := strings.ToLower(description)

	if strings.HasPrefix(desc, query) {
		return prefixScore, true
	}

	pos := strings.Index(desc, query)
	if pos < 0 {
		return 0, false
	}

	length := len(desc)
	if length < 1 {
		length = 1
	}
	return 10 * (len(desc) - pos) / length, true
}

// RankByRelevance returns the items ordered by descending match score of
// their description against query. Non-matching items drop out; ties keep
// their original relative order, which is why the sort must be stable.
func RankByRelevance[T any](items []T, description func(T) string, query string) []T {
	query = strings.ToLower(query)

	type scored struct {
		item  T
		score int
	}

	ranked := make([]scored, 0, len(items))
	for _, item := range items {
		if s, ok := score(description(item), query); ok {
			ranked = append(ranked, scored{item: item, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}
