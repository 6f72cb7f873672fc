/*
Package text implements the string kernel shared by every ranking stage.

It provides normalization, tokenization, bounded edit distance and a
[0,1] match score. Edit-distance leniency is capped at 0.6 so a typo match
can never outrank literal containment.
*/
package text

import (
	"strings"
)

const (
	// maxEditDistance is the largest distance that still earns a score.
	maxEditDistance = 3

	// maxLengthDelta is the largest rune length difference for which
	// edit distance is computed at all.
	maxLengthDelta = 3

	scoreExact     = 1.0
	scorePrefix    = 0.8
	scoreSubstring = 0.5

	// editCeiling and editStep map distance d to max(0, 0.6-0.2*d).
	editCeiling = 0.6
	editStep    = 0.2
)

// Normalize trims, lowercases and collapses interior whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Tokenize returns the whitespace tokens of the normalized form of s.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// MatchScore scores how well query matches candidate, in [0,1].
//
// 1.0 exact, 0.8 prefix, 0.5 substring, otherwise the greater of Jaccard
// token overlap and the bounded edit-distance score.
func MatchScore(query, candidate string) float64 {
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return 0
	}

	switch {
	case q == c:
		return scoreExact
	case strings.HasPrefix(c, q):
		return scorePrefix
	case strings.Contains(c, q):
		return scoreSubstring
	}

	jaccard := Jaccard(Tokenize(q), Tokenize(c))
	return max(jaccard, editScore(q, c))
}

// editScore returns max(0, 0.6-0.2*d) for strings close enough in length.
func editScore(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > maxLengthDelta {
		return 0
	}
	d := EditDistance(a, b, maxEditDistance)
	return max(0, editCeiling-editStep*float64(d))
}

// Jaccard returns |a ∩ b| / |a ∪ b| over token sets.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// EditDistance computes the Levenshtein distance between a and b over
// runes. Distances above limit are reported as limit+1, and the
// computation stops early once every cell in a row exceeds limit.
func EditDistance(a, b string, limit int) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if abs(la-lb) > limit {
		return limit + 1
	}
	if la == 0 {
		return min(lb, limit+1)
	}
	if lb == 0 {
		return min(la, limit+1)
	}

	// Single-row DP
	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > limit {
			return limit + 1
		}
		prev = curr
	}
	return min(prev[lb], limit+1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
