package learning

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/storage"
	"github.com/khanglvm/liftsearch/internal/text"
)

// ErrEmptyAlias is returned when an alias normalizes to nothing.
var ErrEmptyAlias = errors.New("alias text is empty")

// Source records how an alias came to exist.
type Source string

const (
	// SourceSystem aliases are derived from the abbreviation table.
	SourceSystem Source = "system"
	// SourceLearned aliases are inferred from selections.
	SourceLearned Source = "learned"
	// SourceManual aliases are entered by the user.
	SourceManual Source = "manual"
)

// Alias is one alternative name for an exercise. Text is normalized.
type Alias struct {
	ID         string    `json:"id"`
	ExerciseID string    `json:"exerciseId"`
	Text       string    `json:"text"`
	Source     Source    `json:"source"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MatchKind classifies how an alias matched a query.
type MatchKind string

const (
	MatchExact  MatchKind = "exact"
	MatchPrefix MatchKind = "prefix"
	MatchToken  MatchKind = "token"
)

// AliasHit is an unranked alias match.
type AliasHit struct {
	ExerciseID string    `json:"exerciseId"`
	Text       string    `json:"text"`
	Match      MatchKind `json:"match"`
}

// AliasStore persists aliases under storage.KeyAliases.
// At most one alias exists per (exercise id, normalized text).
type AliasStore struct {
	storage storage.Storage
	Now     func() time.Time
}

// NewAliasStore creates an alias store backed by s.
func NewAliasStore(s storage.Storage) *AliasStore {
	return &AliasStore{storage: s, Now: time.Now}
}

// All returns every stored alias.
func (a *AliasStore) All() []Alias {
	aliases := []Alias{}
	storage.LoadCollection(a.storage, storage.KeyAliases, &aliases)
	return aliases
}

func (a *AliasStore) save(aliases []Alias) {
	storage.SaveCollection(a.storage, storage.KeyAliases, aliases)
}

// Add stores an alias, or returns the existing record for the same
// exercise and normalized text.
func (a *AliasStore) Add(exerciseID, aliasText string, source Source) (Alias, error) {
	normalized := text.Normalize(aliasText)
	if normalized == "" {
		return Alias{}, ErrEmptyAlias
	}

	aliases := a.All()
	if existing, ok := find(aliases, exerciseID, normalized); ok {
		return existing, nil
	}

	alias := a.newAlias(exerciseID, normalized, source)
	a.save(append(aliases, alias))
	return alias, nil
}

func (a *AliasStore) newAlias(exerciseID, normalized string, source Source) Alias {
	return Alias{
		ID:         uuid.NewString(),
		ExerciseID: exerciseID,
		Text:       normalized,
		Source:     source,
		CreatedAt:  a.Now(),
	}
}

func find(aliases []Alias, exerciseID, normalized string) (Alias, bool) {
	for _, al := range aliases {
		if al.ExerciseID == exerciseID && al.Text == normalized {
			return al, true
		}
	}
	return Alias{}, false
}

// For returns the aliases of one exercise.
func (a *AliasStore) For(exerciseID string) []Alias {
	var out []Alias
	for _, al := range a.All() {
		if al.ExerciseID == exerciseID {
			out = append(out, al)
		}
	}
	return out
}

// ByExercise groups alias texts by exercise id.
func (a *AliasStore) ByExercise() map[string][]string {
	return groupAliases(a.All())
}

func groupAliases(aliases []Alias) map[string][]string {
	out := make(map[string][]string)
	for _, al := range aliases {
		out[al.ExerciseID] = append(out[al.ExerciseID], al.Text)
	}
	return out
}

// FindByQuery classifies every stored alias against query and returns the
// hits. Ranking is left to the caller.
func (a *AliasStore) FindByQuery(query string) []AliasHit {
	return findByQuery(a.All(), query)
}

func findByQuery(aliases []Alias, query string) []AliasHit {
	q := text.Normalize(query)
	if q == "" {
		return nil
	}
	tokens := text.Tokenize(q)

	var hits []AliasHit
	for _, al := range aliases {
		var kind MatchKind
		switch {
		case al.Text == q:
			kind = MatchExact
		case strings.HasPrefix(al.Text, q):
			kind = MatchPrefix
		case sharesToken(tokens, text.Tokenize(al.Text)):
			kind = MatchToken
		default:
			continue
		}
		hits = append(hits, AliasHit{ExerciseID: al.ExerciseID, Text: al.Text, Match: kind})
	}
	return hits
}

func sharesToken(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Learn adds query as a learned alias of exerciseID unless the exercise
// already has an alias with the same normalized text. It reports whether
// a new alias was stored.
func (a *AliasStore) Learn(query, exerciseID string) (Alias, bool) {
	normalized := text.Normalize(query)
	if normalized == "" {
		return Alias{}, false
	}

	aliases := a.All()
	if existing, ok := find(aliases, exerciseID, normalized); ok {
		return existing, false
	}

	alias := a.newAlias(exerciseID, normalized, SourceLearned)
	a.save(append(aliases, alias))
	return alias, true
}

// GenerateCommon derives shorthand aliases for an exercise name: each
// abbreviation applied alone, all of them applied together, and the name
// with whitespace removed. The normalized name itself is never returned.
func GenerateCommon(name string) []string {
	n := text.Normalize(name)
	if n == "" {
		return nil
	}

	var out []string
	seen := map[string]bool{n: true}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	all := n
	for _, abbr := range text.Abbreviations {
		if !text.ContainsWords(n, abbr.Full) {
			continue
		}
		add(replaceWords(n, abbr.Full, abbr.Short))
		all = replaceWords(all, abbr.Full, abbr.Short)
	}
	add(all)

	if strings.Contains(n, " ") {
		add(strings.ReplaceAll(n, " ", ""))
	}

	return out
}

func replaceWords(s, phrase, repl string) string {
	padded := strings.ReplaceAll(" "+s+" ", " "+phrase+" ", " "+repl+" ")
	return strings.TrimSpace(padded)
}

// SeedSystem stores the generated aliases of every exercise that has none
// of source system yet, in a single write. It returns how many aliases
// were added.
func (a *AliasStore) SeedSystem(exercises []catalog.Exercise) int {
	aliases := a.All()

	seeded := make(map[string]bool)
	for _, al := range aliases {
		if al.Source == SourceSystem {
			seeded[al.ExerciseID] = true
		}
	}

	added := 0
	for _, e := range exercises {
		if seeded[e.ID] {
			continue
		}
		for _, generated := range GenerateCommon(e.Name) {
			if _, ok := find(aliases, e.ID, generated); ok {
				continue
			}
			aliases = append(aliases, a.newAlias(e.ID, generated, SourceSystem))
			added++
		}
	}

	if added > 0 {
		a.save(aliases)
	}
	return added
}

// Cleanup removes aliases of exercises not in existing and returns how
// many were removed.
func (a *AliasStore) Cleanup(existing map[string]bool) int {
	aliases := a.All()
	kept := aliases[:0]
	for _, al := range aliases {
		if existing[al.ExerciseID] {
			kept = append(kept, al)
		}
	}

	removed := len(aliases) - len(kept)
	if removed > 0 {
		a.save(kept)
	}
	return removed
}
