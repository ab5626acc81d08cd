package utils

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTerm trims a search term, collapses inner whitespace and applies
// Unicode NFC so visually identical terms compare equal.
func NormalizeTerm(term string) string {
	return norm.NFC.String(strings.Join(strings.Fields(term), " "))
}

// RankBySimilarity orders candidates by closeness to query.
// Candidates containing query (case-insensitive) rank first, the rest by edit
// distance; candidates farther than half the query length are dropped.
// An empty query returns candidates unchanged.
func RankBySimilarity(query string, candidates []string) []string {
	q := strings.ToLower(NormalizeTerm(query))
	if q == "" {
		return append([]string(nil), candidates...)
	}

	maxDistance := len([]rune(q)) / 2
	if maxDistance < 2 {
		maxDistance = 2
	}

	type scored struct {
		term  string
		score int
	}

	var matches []scored
	for _, candidate := range candidates {
		c := strings.ToLower(candidate)
		if strings.Contains(c, q) {
			matches = append(matches, scored{term: candidate, score: 0})
			continue
		}
		distance := levenshtein.ComputeDistance(q, c)
		if distance <= maxDistance {
			matches = append(matches, scored{term: candidate, score: distance})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.term)
	}
	return result
}
