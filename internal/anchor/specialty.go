package anchor

import (
	"strings"

	"github.com/khanglvm/liftsearch/internal/text"
)

// SpecialtyPenaltyScore is added to specialty variants the query does not
// ask for.
const SpecialtyPenaltyScore = -30

// specialtyTerms maps modifier phrases to the modifier they name. Longer
// phrases are matched first so "smith machine" is one modifier.
var specialtyTerms = []struct {
	phrase    string
	canonical string
}{
	{"safety squat bar", "safety bar"},
	{"smith machine", "smith"},
	{"resistance band", "band"},
	{"safety bar", "safety bar"},
	{"trap bar", "trap bar"},
	{"hex bar", "trap bar"},
	{"smith", "smith"},
	{"banded", "band"},
	{"bands", "band"},
	{"band", "band"},
	{"chains", "chain"},
	{"chain", "chain"},
	{"cable", "cable"},
	{"landmine", "landmine"},
	{"machine", "machine"},
	{"lever", "machine"},
	{"leverage", "machine"},
	{"ssb", "safety bar"},
}

// Modifiers returns the specialty modifiers named in s.
func Modifiers(s string) []string {
	n := " " + text.Normalize(strings.ReplaceAll(s, "-", " ")) + " "

	var out []string
	seen := make(map[string]bool)
	for _, term := range specialtyTerms {
		needle := " " + term.phrase + " "
		if !strings.Contains(n, needle) {
			continue
		}
		n = strings.ReplaceAll(n, needle, " ")
		if !seen[term.canonical] {
			seen[term.canonical] = true
			out = append(out, term.canonical)
		}
	}
	return out
}

// HasSpecialtyModifiers reports whether an exercise name carries a
// specialty modifier.
func HasSpecialtyModifiers(name string) bool {
	return len(Modifiers(name)) > 0
}

// QueryHasSpecialtyModifiers reports whether a query asks for a specialty
// modifier.
func QueryHasSpecialtyModifiers(query string) bool {
	return len(Modifiers(query)) > 0
}

// SpecialtyPenalty returns SpecialtyPenaltyScore when name carries a
// modifier the query does not name, otherwise 0.
func SpecialtyPenalty(name, query string) int {
	mods := Modifiers(name)
	if len(mods) == 0 {
		return 0
	}

	asked := make(map[string]bool)
	for _, m := range Modifiers(query) {
		asked[m] = true
	}
	for _, m := range mods {
		if !asked[m] {
			return SpecialtyPenaltyScore
		}
	}
	return 0
}
