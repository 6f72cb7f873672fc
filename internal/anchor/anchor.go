/*
Package anchor resolves generic queries to canonical exercises and detects
specialty variants.

An anchor is the exercise a generic term should land on: "squat" means the
plain barbell Squat, not Smith Machine Squat. Specialty variants carry an
equipment modifier (Smith, bands, chains, cable) and are penalized unless
the query asks for that modifier.
*/
package anchor

import (
	"strings"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/text"
)

// registry maps generic terms to canonical exercise names, most preferred
// first.
var registry = map[string][]string{
	"squat":             {"Squat", "Barbell Squat", "Back Squat", "Barbell Full Squat"},
	"back squat":        {"Squat", "Barbell Squat", "Back Squat"},
	"bench press":       {"Bench Press", "Barbell Bench Press", "Flat Bench Press"},
	"bench":             {"Bench Press", "Barbell Bench Press", "Flat Bench Press"},
	"deadlift":          {"Deadlift", "Barbell Deadlift", "Conventional Deadlift"},
	"overhead press":    {"Overhead Press", "Barbell Overhead Press", "Military Press", "Standing Military Press"},
	"ohp":               {"Overhead Press", "Barbell Overhead Press", "Military Press"},
	"military press":    {"Military Press", "Overhead Press", "Standing Military Press"},
	"shoulder press":    {"Overhead Press", "Shoulder Press", "Dumbbell Shoulder Press"},
	"row":               {"Barbell Row", "Bent Over Row", "Bent Over Barbell Row"},
	"bent over row":     {"Bent Over Row", "Barbell Row", "Bent Over Barbell Row"},
	"pull up":           {"Pull Up", "Pull-up", "Pullup"},
	"pullup":            {"Pull Up", "Pull-up", "Pullup"},
	"chin up":           {"Chin Up", "Chin-up", "Chinup"},
	"chinup":            {"Chin Up", "Chin-up", "Chinup"},
	"dip":               {"Dip", "Dips", "Chest Dip", "Triceps Dip"},
	"push up":           {"Push Up", "Push-up", "Pushup"},
	"pushup":            {"Push Up", "Push-up", "Pushup"},
	"curl":              {"Barbell Curl", "Bicep Curl", "Dumbbell Curl"},
	"bicep curl":        {"Barbell Curl", "Bicep Curl", "Dumbbell Curl"},
	"lunge":             {"Lunge", "Walking Lunge", "Dumbbell Lunge"},
	"rdl":               {"Romanian Deadlift", "Barbell Romanian Deadlift"},
	"romanian deadlift": {"Romanian Deadlift", "Barbell Romanian Deadlift"},
	"hip thrust":        {"Hip Thrust", "Barbell Hip Thrust"},
	"lat pulldown":      {"Lat Pulldown", "Cable Lat Pulldown", "Wide Grip Lat Pulldown"},
	"pulldown":          {"Lat Pulldown", "Cable Lat Pulldown", "Wide Grip Lat Pulldown"},
}

// registryNames is the set of every normalized canonical name.
var registryNames = func() map[string]bool {
	names := make(map[string]bool)
	for _, list := range registry {
		for _, n := range list {
			names[text.Normalize(n)] = true
		}
	}
	return names
}()

// strippedWords are removed from a name to find its base movement.
var strippedWords = map[string]bool{
	"barbell": true, "dumbbell": true, "kettlebell": true, "cable": true,
	"machine": true, "smith": true, "lever": true, "leverage": true,
	"band": true, "bands": true, "banded": true, "chain": true, "chains": true,
	"bb": true, "db": true, "kb": true, "ez": true, "weighted": true,
	"bodyweight": true, "standing": true, "seated": true, "flat": true,
	"conventional": true, "full": true, "alternating": true,
}

// canonicalKey normalizes a query for registry lookup, treating hyphens
// as spaces.
func canonicalKey(s string) string {
	return text.Normalize(strings.ReplaceAll(s, "-", " "))
}

// Candidates returns the canonical names registered for a generic term.
func Candidates(query string) []string {
	return registry[canonicalKey(query)]
}

// BaseName strips equipment and modifier words from a name.
func BaseName(name string) string {
	var kept []string
	for _, w := range text.Tokenize(strings.ReplaceAll(name, "-", " ")) {
		if !strippedWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// IsAnchor reports whether e is a canonical default: flagged by the
// catalog or named in the registry.
func IsAnchor(e catalog.Exercise) bool {
	return e.Anchor || registryNames[e.NormalizedName()]
}

// FindAnchor resolves query to its canonical exercise: the first registry
// name present in exercises, otherwise the first anchor whose base name
// equals the query.
func FindAnchor(query string, exercises []catalog.Exercise) (catalog.Exercise, bool) {
	q := canonicalKey(query)
	if q == "" {
		return catalog.Exercise{}, false
	}

	if names := registry[q]; len(names) > 0 {
		byName := make(map[string]int, len(exercises))
		for i, e := range exercises {
			if _, ok := byName[e.NormalizedName()]; !ok {
				byName[e.NormalizedName()] = i
			}
		}
		for _, name := range names {
			if i, ok := byName[text.Normalize(name)]; ok {
				return exercises[i], true
			}
		}
	}

	for _, e := range exercises {
		if IsAnchor(e) && BaseName(e.Name) == q {
			return e, true
		}
	}

	return catalog.Exercise{}, false
}

// IsAnchorForQuery reports whether e qualifies as an anchor for query,
// whether or not it is the one FindAnchor picks.
func IsAnchorForQuery(e catalog.Exercise, query string) bool {
	if !IsAnchor(e) {
		return false
	}

	q := canonicalKey(query)
	if q == "" {
		return false
	}

	name := e.NormalizedName()
	for _, candidate := range registry[q] {
		if text.Normalize(candidate) == name {
			return true
		}
	}
	return BaseName(e.Name) == q
}
