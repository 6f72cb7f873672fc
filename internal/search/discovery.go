package search

import (
	"sort"
	"strings"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

// Discovery signal tags.
const (
	signalName      = "name"
	signalAlias     = "alias"
	signalEquipment = "equipment"
	signalBucket    = "bucket"
	signalTarget    = "target"
)

// Discovery scores every exercise by the strongest signal it carries and
// drops exercises without any. Results are ordered by score, then by the
// number of distinct signals, then by name.
func Discovery(exercises []catalog.Exercise, query string) []Scored {
	q := newQueryView(query)
	if q.text == "" {
		return nil
	}

	var results []Scored
	for _, e := range exercises {
		if s, ok := discoveryScore(q, newCandidate(e)); ok {
			results = append(results, s)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Signals) != len(b.Signals) {
			return len(a.Signals) > len(b.Signals)
		}
		return lessName(a.Exercise, b.Exercise)
	})

	return results
}

func discoveryScore(q queryView, c candidate) (Scored, bool) {
	var (
		best    float64
		reason  string
		signals []string
	)
	hit := func(tag, why string, score float64) {
		if score <= 0 {
			return
		}
		signals = append(signals, tag)
		if score > best {
			best, reason = score, why
		}
	}

	why, score := nameSignal(q, c)
	hit(signalName, why, score)
	why, score = aliasSignal(q, c)
	hit(signalAlias, why, score)
	why, score = equipmentSignal(q, c)
	hit(signalEquipment, why, score)
	why, score = bucketSignal(q, c)
	hit(signalBucket, why, score)
	if targetTokenMatches(q.tokens, c.ex) {
		hit(signalTarget, "target-token", 200)
	}

	if best == 0 {
		return Scored{}, false
	}
	return Scored{Exercise: c.ex, Score: best, Reason: reason, Signals: signals}, true
}

func nameSignal(q queryView, c candidate) (string, float64) {
	switch {
	case c.name == q.text:
		return "exact-name", 1000
	case strings.HasPrefix(c.name, q.text):
		return "name-prefix", 800
	}
	for _, w := range c.words {
		if strings.HasPrefix(w, q.text) {
			return "name-token-prefix", 700
		}
	}
	for _, w := range c.words {
		if strings.Contains(w, q.text) {
			return "name-token-contains", 500
		}
	}
	return "", 0
}

func aliasSignal(q queryView, c candidate) (string, float64) {
	best, why := 0.0, ""
	for _, a := range c.aliases {
		switch {
		case a == q.text:
			return "exact-alias", 900
		case strings.HasPrefix(a, q.text) && best < 650:
			best, why = 650, "alias-prefix"
		case strings.Contains(a, q.text) && best < 450:
			best, why = 450, "alias-contains"
		}
	}
	return why, best
}

func equipmentSignal(q queryView, c candidate) (string, float64) {
	if equipmentHintMatches(q.tokens, c.ex) {
		return "equipment-hint", 400
	}
	if literalIn(q.tokens, c.ex.Tags.Equipment) {
		return "equipment-literal", 350
	}
	return "", 0
}

func bucketSignal(q queryView, c candidate) (string, float64) {
	if bucketHintMatches(q.tokens, c.ex) {
		return "bucket-hint", 300
	}
	if literalIn(q.tokens, muscleText(c.ex)...) {
		return "muscle-literal", 250
	}
	return "", 0
}
