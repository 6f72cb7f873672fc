package search

import "github.com/khanglvm/liftsearch/internal/catalog"

const (
	// relatedThreshold is the best-tier size below which the related tier
	// is built.
	relatedThreshold = 5

	// RelatedLimit caps the related tier once the best tier is non-empty.
	RelatedLimit = 30
)

// PrecisionResult is the two-tier output of a precision search.
type PrecisionResult struct {
	Best    []Scored `json:"best"`
	Related []Scored `json:"related"`
}

// Precision ranks exercises for a query that names a movement.
//
// The best tier takes the first matching rule of the best ladder. The
// related tier is built only when the best tier has fewer than 5 results,
// from the remaining exercises, and is capped only when the best tier is
// non-empty.
func Precision(exercises []catalog.Exercise, query string) PrecisionResult {
	q := newQueryView(query)
	if q.text == "" {
		return PrecisionResult{}
	}

	candidates := make([]candidate, len(exercises))
	for i, e := range exercises {
		candidates[i] = newCandidate(e)
	}

	var result PrecisionResult
	inBest := make(map[int]bool)
	for i, c := range candidates {
		if r, ok := bestLadder.evaluate(q, c); ok {
			result.Best = append(result.Best, Scored{Exercise: c.ex, Score: r.score, Reason: r.name})
			inBest[i] = true
		}
	}
	sortByScoreConcise(result.Best)

	if len(result.Best) >= relatedThreshold {
		return result
	}

	for i, c := range candidates {
		if inBest[i] {
			continue
		}
		if r, ok := relatedLadder.evaluate(q, c); ok {
			result.Related = append(result.Related, Scored{Exercise: c.ex, Score: r.score, Reason: r.name})
		}
	}
	sortByScoreConcise(result.Related)

	if len(result.Best) > 0 && len(result.Related) > RelatedLimit {
		result.Related = result.Related[:RelatedLimit]
	}

	return result
}
