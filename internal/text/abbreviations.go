package text

import "strings"

// Abbreviation pairs a full gym term with its short form.
type Abbreviation struct {
	Full  string
	Short string
}

// Abbreviations lists common gym shorthand, longest phrases first so
// multi-word terms are rewritten before their parts.
var Abbreviations = []Abbreviation{
	{Full: "romanian deadlift", Short: "rdl"},
	{Full: "stiff leg deadlift", Short: "sldl"},
	{Full: "overhead press", Short: "ohp"},
	{Full: "kettlebell", Short: "kb"},
	{Full: "dumbbell", Short: "db"},
	{Full: "barbell", Short: "bb"},
	{Full: "bodyweight", Short: "bw"},
	{Full: "extension", Short: "ext"},
	{Full: "lateral", Short: "lat"},
	{Full: "incline", Short: "incl"},
	{Full: "decline", Short: "decl"},
}

var shortToFull = func() map[string]string {
	m := make(map[string]string, len(Abbreviations))
	for _, a := range Abbreviations {
		m[a.Short] = a.Full
	}
	return m
}()

// ExpandToken returns the full form of an abbreviation, or "" when the
// token is not a known short form.
func ExpandToken(token string) string {
	return shortToFull[strings.ToLower(token)]
}

// ContainsWords reports whether phrase occurs in s on word boundaries.
// Both arguments are expected in normalized form.
func ContainsWords(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	padded := " " + s + " "
	return strings.Contains(padded, " "+phrase+" ")
}

// TokenIn reports whether a query token is present in a set of words.
//
// A token is present when it equals a word, when its expansion is a
// phrase of the words, or when it is at least 3 runes long and prefixes
// a word.
func TokenIn(token string, words []string) bool {
	for _, w := range words {
		if w == token {
			return true
		}
	}
	if full := ExpandToken(token); full != "" {
		if ContainsWords(strings.Join(words, " "), full) {
			return true
		}
	}
	if len([]rune(token)) >= 3 {
		for _, w := range words {
			if strings.HasPrefix(w, token) {
				return true
			}
		}
	}
	return false
}

// AllTokensIn reports whether every token is present in words.
func AllTokensIn(tokens, words []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !TokenIn(t, words) {
			return false
		}
	}
	return true
}
