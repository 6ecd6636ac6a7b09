package main

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"mindflerm/internal/mindmap"
)

// findNodes ranks nodes against query. Substring matches come first, then
// near misses by edit distance to the closest word. Ties keep tree order.
func findNodes(m *mindmap.Map, query string, limit int) []searchHit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	tolerance := max(1, len([]rune(q))/3)

	var hits []searchHit
	m.Walk(func(n mindmap.Node, _ int) bool {
		text := strings.ToLower(singleLine(n.Text))
		if strings.Contains(text, q) {
			hits = append(hits, searchHit{id: n.ID, text: n.Text, score: 0})
			return true
		}
		best := levenshtein.ComputeDistance(q, text)
		for _, word := range strings.Fields(text) {
			best = min(best, levenshtein.ComputeDistance(q, word))
		}
		if best <= tolerance {
			hits = append(hits, searchHit{id: n.ID, text: n.Text, score: best})
		}
		return true
	})

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score < hits[j].score
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
