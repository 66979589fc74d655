// Package filter ranks registry entries against the user's query. It is the
// only hot path in the launcher (re-run on every keystroke) and is pure:
// no side effects, no mutation of its input, identical output for identical
// input.
package filter

import (
	"sort"
	"strings"

	"github.com/fling-dev/fling/internal/registry"
)

// Match ranks, lower is better. Display-name matches always outrank matches
// that only hit the auxiliary search terms.
const (
	rankNamePrefix    = 0
	rankNameSubstring = 1
	rankTermSubstring = 2
)

type scored struct {
	item registry.Item
	rank int
}

// Apply returns the entries matching query, best rank first, ties broken by
// lowercased display name and then ID. An empty query is the identity pass:
// the input order (the registry's default order) is preserved. No match
// yields an empty, non-nil slice.
func Apply(items []registry.Item, query string) []registry.Item {
	if query == "" {
		out := make([]registry.Item, len(items))
		copy(out, items)
		return out
	}

	q := strings.ToLower(query)
	matches := make([]scored, 0, len(items))
	for _, item := range items {
		rank, ok := score(item, q)
		if !ok {
			continue
		}
		matches = append(matches, scored{item: item, rank: rank})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		ni, nj := strings.ToLower(matches[i].item.Name), strings.ToLower(matches[j].item.Name)
		if ni != nj {
			return ni < nj
		}
		return matches[i].item.ID < matches[j].item.ID
	})

	out := make([]registry.Item, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// score computes the best rank of an item against a lowercased query.
func score(item registry.Item, q string) (int, bool) {
	name := strings.ToLower(item.Name)
	if strings.HasPrefix(name, q) {
		return rankNamePrefix, true
	}
	if strings.Contains(name, q) {
		return rankNameSubstring, true
	}
	for _, term := range item.SearchTerms() {
		if strings.Contains(strings.ToLower(term), q) {
			return rankTermSubstring, true
		}
	}
	return 0, false
}
