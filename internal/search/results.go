/*
Package search ranks exercises for free-text queries.

A query is first classified as precision (the user names a movement) or
discovery (the user browses a muscle group or piece of equipment).
Precision search evaluates an ordered ladder of text rules and returns a
best tier plus an optional related tier; discovery search scores every
exercise by its strongest signal. SmartSearch blends text matching with the
learned familiarity signals. All searches are pure functions over an
exercise slice.

Instruction text is searched separately through a Bleve full-text index.
*/
package search

import (
	"sort"
	"strings"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

// Scored is an exercise with the score and reason it was ranked by.
type Scored struct {
	Exercise catalog.Exercise `json:"exercise"`
	Score    float64          `json:"score"`

	// Reason names the ladder rule that placed the exercise.
	Reason string `json:"reason,omitempty"`

	// Signals lists the distinct discovery signals that matched.
	Signals []string `json:"signals,omitempty"`
}

// Exercises strips the scores from results.
func Exercises(results []Scored) []catalog.Exercise {
	out := make([]catalog.Exercise, len(results))
	for i, r := range results {
		out[i] = r.Exercise
	}
	return out
}

// sortByScoreConcise orders by score desc, then fewer words, then name.
func sortByScoreConcise(results []Scored) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		wa, wb := len(a.Exercise.Words()), len(b.Exercise.Words())
		if wa != wb {
			return wa < wb
		}
		return lessName(a.Exercise, b.Exercise)
	})
}

// lessName orders exercises alphabetically, case-insensitively, with the
// id as a final tie-break so ordering is total.
func lessName(a, b catalog.Exercise) bool {
	na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if na != nb {
		return na < nb
	}
	return a.ID < b.ID
}
