package learning

import (
	"math"
	"time"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/text"
)

const (
	// usageWeight is the weight of the usage signal (0.4 = 40%).
	usageWeight = 0.4

	// contextWeight is the weight of the workout context signal (0.2 = 20%).
	contextWeight = 0.2

	// affinityWeight is the weight of the learned query affinity (0.3 = 30%).
	affinityWeight = 0.3

	// textWeight is the weight of the text match (0.1 = 10%).
	textWeight = 0.1

	// frequencyShare and recencyShare split the usage signal.
	frequencyShare = 0.6
	recencyShare   = 0.4

	// frequencySaturation is the use count treated as "used a lot".
	frequencySaturation = 20.0

	// recencyHalfLife is the half-life for exponential decay (7 days).
	recencyHalfLife = 7 * 24 * time.Hour
)

// Breakdown is the familiarity score of one exercise with its terms, each
// normalized to [0,1] before weighting.
type Breakdown struct {
	Usage    float64 `json:"usage"`
	Context  float64 `json:"context"`
	Affinity float64 `json:"affinity"`
	Text     float64 `json:"text"`
	Total    float64 `json:"total"`
}

// Scorer computes familiarity scores. The weights are fixed so scores stay
// comparable across calls.
type Scorer struct {
	// Now is the clock used for recency decay.
	Now func() time.Time
}

// NewScorer creates a scorer on the wall clock.
func NewScorer() *Scorer {
	return &Scorer{Now: time.Now}
}

// TotalScore returns 0.4·usage + 0.2·context + 0.3·affinity + 0.1·text.
func (s *Scorer) TotalScore(e catalog.Exercise, query, contextID string, sig Signals) float64 {
	return s.Breakdown(e, query, contextID, sig).Total
}

// Breakdown returns the individual terms of TotalScore.
func (s *Scorer) Breakdown(e catalog.Exercise, query, contextID string, sig Signals) Breakdown {
	usage := sig.UsageOf(e.ID)

	b := Breakdown{
		Usage:    s.usageScore(usage),
		Context:  contextScore(usage, contextID),
		Affinity: math.Min(float64(sig.AffinityOf(query, e.ID))/MaxAffinityScore, 1.0),
		Text:     textScore(e, query, sig),
	}
	b.Total = usageWeight*b.Usage + contextWeight*b.Context + affinityWeight*b.Affinity + textWeight*b.Text
	return b
}

// usageScore blends frequency and recency. Unused exercises score 0.
func (s *Scorer) usageScore(r UsageRecord) float64 {
	if r.Count <= 0 {
		return 0.0
	}

	freq := math.Min(float64(r.Count)/frequencySaturation, 1.0)

	recency := 0.0
	if !r.LastUsed.IsZero() {
		now := time.Now()
		if s != nil && s.Now != nil {
			now = s.Now()
		}
		age := max(now.Sub(r.LastUsed), 0)

		// weight = e^(-ln(2) * t / half_life)
		recency = math.Exp(-math.Ln2 * age.Hours() / recencyHalfLife.Hours())
	}

	return frequencyShare*freq + recencyShare*recency
}

func contextScore(r UsageRecord, contextID string) float64 {
	if contextID != "" && r.LastContextID == contextID {
		return 1.0
	}
	return 0.0
}

// textScore is the best match of query against the name and every alias.
func textScore(e catalog.Exercise, query string, sig Signals) float64 {
	best := text.MatchScore(query, e.Name)
	for _, lists := range [][]string{e.Aliases, sig.AliasesOf(e.ID)} {
		for _, alias := range lists {
			if score := text.MatchScore(query, alias); score > best {
				best = score
			}
		}
	}
	return best
}
