package search

import (
	"sort"
	"strings"

	"github.com/khanglvm/liftsearch/internal/anchor"
	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/concepts"
	"github.com/khanglvm/liftsearch/internal/learning"
	"github.com/khanglvm/liftsearch/internal/text"
)

const (
	// MatchesLimit caps the matches tier of SmartSearch.
	MatchesLimit = 15

	// SmartRelatedLimit caps the related tier of SmartSearch.
	SmartRelatedLimit = 5

	// weakThreshold is the match count below which related is shown.
	weakThreshold = 5

	resolvedAnchorBoost   = 100
	qualifyingAnchorBoost = 50

	// relatedAnchorBoost is added to the semantic score of canonical
	// exercises in the related tier.
	relatedAnchorBoost = 2

	usageSortWeight    = 10
	affinitySortWeight = 5
)

// SmartOptions carries the per-query inputs of SmartSearch.
type SmartOptions struct {
	ContextID string
	Signals   learning.Signals
	Scorer    *learning.Scorer
	Inferrer  *concepts.Inferrer
}

// SmartHit is one ranked exercise of SmartSearch.
type SmartHit struct {
	Exercise catalog.Exercise `json:"exercise"`

	// Score is the familiarity score plus anchor boost and specialty
	// penalty for matches, or the semantic score plus anchor boost for
	// related exercises.
	Score float64 `json:"score"`

	Familiarity float64 `json:"familiarity,omitempty"`
	Semantic    int     `json:"semantic,omitempty"`
	Anchor      bool    `json:"anchor,omitempty"`

	usage    int
	affinity int
}

// SmartResult is the two-tier output of SmartSearch.
type SmartResult struct {
	Matches []SmartHit `json:"matches"`
	Related []SmartHit `json:"related"`

	// RawMatches counts text matches before the matches cap.
	RawMatches int `json:"rawMatches"`
}

// SmartSearch splits exercises into text matches, ranked by familiarity,
// and semantically related exercises, shown only when matches are weak.
func SmartSearch(exercises []catalog.Exercise, query string, opts SmartOptions) SmartResult {
	q := newQueryView(query)
	if q.text == "" {
		return SmartResult{}
	}

	scorer := opts.Scorer
	if scorer == nil {
		scorer = learning.NewScorer()
	}

	resolved, hasResolved := anchor.FindAnchor(q.text, exercises)

	var matches, related []SmartHit
	var inferred *concepts.Concepts

	for _, e := range exercises {
		c := newCandidate(e)
		stored := opts.Signals.AliasesOf(e.ID)

		if isTextMatch(q, c, stored) {
			hit := SmartHit{
				Exercise:    e,
				Familiarity: scorer.TotalScore(e, q.text, opts.ContextID, opts.Signals),
				usage:       opts.Signals.UsageOf(e.ID).Count,
				affinity:    opts.Signals.AffinityOf(q.text, e.ID),
			}
			hit.Score = hit.Familiarity
			switch {
			case hasResolved && e.ID == resolved.ID:
				hit.Score += resolvedAnchorBoost
				hit.Anchor = true
			case anchor.IsAnchorForQuery(e, q.text):
				hit.Score += qualifyingAnchorBoost
				hit.Anchor = true
			}
			hit.Score += float64(anchor.SpecialtyPenalty(e.Name, q.text))
			matches = append(matches, hit)
			continue
		}

		if inferred == nil {
			inf := opts.Inferrer.Infer(q.text)
			inferred = &inf
		}
		semantic := SemanticScore(e, *inferred)
		if semantic <= 0 {
			continue
		}
		hit := SmartHit{Exercise: e, Semantic: semantic, Score: float64(semantic)}
		if anchor.IsAnchor(e) {
			hit.Score += relatedAnchorBoost
			hit.Anchor = true
		}
		related = append(related, hit)
	}

	sortMatches(matches)
	result := SmartResult{RawMatches: len(matches)}
	if len(matches) > MatchesLimit {
		matches = matches[:MatchesLimit]
	}
	result.Matches = matches

	if len(result.Matches) < weakThreshold && result.RawMatches < weakThreshold {
		sortRelated(related)
		if len(related) > SmartRelatedLimit {
			related = related[:SmartRelatedLimit]
		}
		result.Related = related
	}

	return result
}

// isTextMatch is the broad predicate that admits an exercise to the
// matches tier.
func isTextMatch(q queryView, c candidate, stored []string) bool {
	if text.MatchScore(q.text, c.name) >= 0.5 {
		return true
	}
	if text.AllTokensIn(q.tokens, c.words) {
		return true
	}

	aliases := make([]string, 0, len(c.aliases)+len(stored))
	aliases = append(aliases, c.aliases...)
	for _, s := range stored {
		aliases = append(aliases, text.Normalize(s))
	}
	for _, a := range aliases {
		if strings.Contains(a, q.text) {
			return true
		}
		if text.AllTokensIn(q.tokens, text.Tokenize(a)) {
			return true
		}
	}
	return false
}

// sortMatches orders by usage and affinity, then anchors first, then
// score, then name.
func sortMatches(hits []SmartHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		sa := a.usage*usageSortWeight + a.affinity*affinitySortWeight
		sb := b.usage*usageSortWeight + b.affinity*affinitySortWeight
		if sa != sb {
			return sa > sb
		}
		if a.Anchor != b.Anchor {
			return a.Anchor
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return lessName(a.Exercise, b.Exercise)
	})
}

// sortRelated orders by score, then anchors first, then name.
func sortRelated(hits []SmartHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Anchor != b.Anchor {
			return a.Anchor
		}
		return lessName(a.Exercise, b.Exercise)
	})
}

// HitExercises strips the scores from hits.
func HitExercises(hits []SmartHit) []catalog.Exercise {
	out := make([]catalog.Exercise, len(hits))
	for i, h := range hits {
		out[i] = h.Exercise
	}
	return out
}
