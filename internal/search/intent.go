package search

import (
	"strings"
	"unicode"

	"github.com/khanglvm/liftsearch/internal/concepts"
	"github.com/khanglvm/liftsearch/internal/text"
)

// Intent is the search mode a query is routed to.
type Intent string

const (
	// IntentPrecision is for queries that name a movement.
	IntentPrecision Intent = "precision"
	// IntentDiscovery is for broad browsing queries.
	IntentDiscovery Intent = "discovery"
)

// specificMovements are single words that name a movement.
var specificMovements = map[string]bool{
	"squat": true, "squats": true, "bench": true, "press": true,
	"deadlift": true, "rdl": true, "sldl": true, "ohp": true,
	"row": true, "rows": true, "curl": true, "curls": true,
	"lunge": true, "lunges": true, "dip": true, "dips": true,
	"pullup": true, "chinup": true, "pushup": true, "pulldown": true,
	"fly": true, "flye": true, "shrug": true, "shrugs": true,
	"thrust": true, "raise": true, "extension": true, "pushdown": true,
	"kickback": true, "crunch": true, "plank": true, "swing": true,
	"snatch": true, "clean": true, "jerk": true, "carry": true,
	"hyperextension": true, "skullcrusher": true,
}

// angleKeywords are single words that qualify a bench or grip angle.
var angleKeywords = map[string]bool{
	"incline": true, "decline": true, "flat": true,
	"incl": true, "decl": true,
}

// DetectIntent classifies a query as precision or discovery.
func DetectIntent(query string) Intent {
	tokens := text.Tokenize(query)

	switch {
	case len(tokens) == 0:
		return IntentDiscovery
	case len(tokens) >= 2:
		return IntentPrecision
	}

	token := tokens[0]
	switch {
	case specificMovements[token]:
		return IntentPrecision
	case isNumberOrAngle(token):
		return IntentPrecision
	case concepts.IsBucketOrEquipmentTerm(token):
		return IntentDiscovery
	}
	return IntentDiscovery
}

func isNumberOrAngle(token string) bool {
	if angleKeywords[token] {
		return true
	}
	digits := strings.TrimSuffix(token, "°")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
