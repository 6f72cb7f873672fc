package search

import (
	"strings"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/concepts"
	"github.com/khanglvm/liftsearch/internal/text"
)

// queryView is a query in normalized and tokenized form.
type queryView struct {
	text   string
	tokens []string
}

func newQueryView(query string) queryView {
	q := text.Normalize(query)
	return queryView{text: q, tokens: text.Tokenize(q)}
}

// candidate caches the normalized text of one exercise for a pass.
type candidate struct {
	ex       catalog.Exercise
	name     string
	words    []string
	aliases  []string
	allWords []string
}

func newCandidate(e catalog.Exercise) candidate {
	c := candidate{
		ex:    e,
		name:  e.NormalizedName(),
		words: e.Words(),
	}
	c.allWords = append(c.allWords, c.words...)
	for _, a := range e.Aliases {
		n := text.Normalize(a)
		if n == "" {
			continue
		}
		c.aliases = append(c.aliases, n)
		c.allWords = append(c.allWords, text.Tokenize(n)...)
	}
	return c
}

// rule is one rung of a ladder: the first rule whose predicate holds
// decides the score.
type rule struct {
	name  string
	score float64
	match func(q queryView, c candidate) bool
}

type ladder []rule

func (l ladder) evaluate(q queryView, c candidate) (rule, bool) {
	for _, r := range l {
		if r.match(q, c) {
			return r, true
		}
	}
	return rule{}, false
}

// bestLadder decides the best tier of a precision search.
var bestLadder = ladder{
	{"exact-name", 1000, func(q queryView, c candidate) bool {
		return c.name == q.text
	}},
	{"name-contains-query", 900, func(q queryView, c candidate) bool {
		return strings.Contains(c.name, q.text)
	}},
	{"alias-contains-query", 850, func(q queryView, c candidate) bool {
		for _, a := range c.aliases {
			if strings.Contains(a, q.text) {
				return true
			}
		}
		return false
	}},
	{"name-has-all-tokens", 800, func(q queryView, c candidate) bool {
		return text.AllTokensIn(q.tokens, c.words)
	}},
	{"name-or-alias-has-all-tokens", 780, func(q queryView, c candidate) bool {
		return text.AllTokensIn(q.tokens, c.allWords)
	}},
	{"name-starts-with-first-token", 700, func(q queryView, c candidate) bool {
		if len(q.tokens) == 0 || !strings.HasPrefix(c.name, q.tokens[0]) {
			return false
		}
		for _, t := range q.tokens[1:] {
			if !strings.Contains(c.name, t) {
				return false
			}
		}
		return true
	}},
}

// relatedLadder decides the related tier of a precision search.
var relatedLadder = ladder{
	{"name-has-token", 500, func(q queryView, c candidate) bool {
		for _, t := range q.tokens {
			if text.TokenIn(t, c.words) {
				return true
			}
			if len([]rune(t)) >= 3 && strings.Contains(c.name, t) {
				return true
			}
		}
		return false
	}},
	{"equipment-hint", 400, func(q queryView, c candidate) bool {
		return equipmentHintMatches(q.tokens, c.ex)
	}},
	{"equipment-literal", 350, func(q queryView, c candidate) bool {
		return literalIn(q.tokens, c.ex.Tags.Equipment)
	}},
	{"bucket-hint", 300, func(q queryView, c candidate) bool {
		return bucketHintMatches(q.tokens, c.ex)
	}},
	{"muscle-literal", 250, func(q queryView, c candidate) bool {
		return literalIn(q.tokens, muscleText(c.ex)...)
	}},
	{"target-token", 200, func(q queryView, c candidate) bool {
		return targetTokenMatches(q.tokens, c.ex)
	}},
}

// literalIn reports whether some token of at least 3 runes occurs in one
// of the fields.
func literalIn(tokens []string, fields ...string) bool {
	for _, f := range fields {
		n := text.Normalize(f)
		if n == "" {
			continue
		}
		for _, t := range tokens {
			if len([]rune(t)) >= 3 && strings.Contains(n, t) {
				return true
			}
		}
	}
	return false
}

// muscleText returns every muscle-like field of an exercise.
func muscleText(e catalog.Exercise) []string {
	fields := make([]string, 0, len(e.Tags.PrimaryMuscles)+len(e.Tags.SecondaryMuscles)+2)
	fields = append(fields, e.Tags.PrimaryMuscles...)
	fields = append(fields, e.Tags.SecondaryMuscles...)
	if target, ok := e.Target(); ok {
		fields = append(fields, target)
	}
	if part, ok := e.BodyPart(); ok {
		fields = append(fields, part)
	}
	return fields
}

func equipmentHintMatches(tokens []string, e catalog.Exercise) bool {
	label := e.EquipmentLabel()
	if label == "" {
		return false
	}
	for _, t := range tokens {
		if concepts.EquipmentHint(t) == label {
			return true
		}
	}
	return false
}

func bucketHintMatches(tokens []string, e catalog.Exercise) bool {
	buckets := e.Buckets()
	for _, t := range tokens {
		hint := concepts.BucketHint(t)
		if hint == "" {
			continue
		}
		for _, b := range buckets {
			if b == hint {
				return true
			}
		}
	}
	return false
}

func targetTokenMatches(tokens []string, e catalog.Exercise) bool {
	var words []string
	if target, ok := e.Target(); ok {
		words = append(words, text.Tokenize(target)...)
	}
	if part, ok := e.BodyPart(); ok {
		words = append(words, text.Tokenize(part)...)
	}
	for _, t := range tokens {
		for _, w := range words {
			if t == w {
				return true
			}
		}
	}
	return false
}
