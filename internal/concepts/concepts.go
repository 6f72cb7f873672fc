/*
Package concepts infers canonical muscle, equipment, force, mechanic and
category concepts from free-text exercise queries.

Inference is table driven and pure. Inferrer memoises results in an LRU
cache because the same handful of queries is typed over and over while a
user logs a workout.
*/
package concepts

import (
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/khanglvm/liftsearch/internal/text"
)

// defaultCacheSize bounds the number of memoised queries.
const defaultCacheSize = 512

// minPartialLength is the shortest term that may match as a substring of
// the other side. Shorter terms must match exactly.
const minPartialLength = 3

// Concepts is the result of inferring intent from a query.
type Concepts struct {
	Muscles   []string `json:"muscles,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
	Force     string   `json:"force,omitempty"`
	Mechanic  string   `json:"mechanic,omitempty"`
	Category  string   `json:"category,omitempty"`
}

// IsEmpty reports whether no concept was inferred.
func (c Concepts) IsEmpty() bool {
	return len(c.Muscles) == 0 && len(c.Equipment) == 0 &&
		c.Force == "" && c.Mechanic == "" && c.Category == ""
}

// Infer maps a free-text query to canonical concepts.
//
// Every token and the full normalized query are checked against the
// synonym tables. Muscles and equipment accumulate every hit; force,
// mechanic and category keep the first hit only.
func Infer(query string) Concepts {
	q := text.Normalize(query)
	if q == "" {
		return Concepts{}
	}

	candidates := append([]string{q}, text.Tokenize(q)...)

	return Concepts{
		Muscles:   collectAll(muscleSynonyms, candidates),
		Equipment: collectAll(equipmentSynonyms, candidates),
		Force:     firstHit(forceSynonyms, candidates),
		Mechanic:  firstHit(mechanicSynonyms, candidates),
		Category:  firstHit(categorySynonyms, candidates),
	}
}

// collectAll returns every canonical hit in table order, deduplicated.
func collectAll(table []synonym, candidates []string) []string {
	var hits []string
	seen := make(map[string]bool)
	for _, syn := range table {
		if seen[syn.canonical] {
			continue
		}
		for _, c := range candidates {
			if termMatches(c, syn.term) {
				seen[syn.canonical] = true
				hits = append(hits, syn.canonical)
				break
			}
		}
	}
	return hits
}

// firstHit returns the first canonical concept matched by any candidate.
func firstHit(table []synonym, candidates []string) string {
	for _, c := range candidates {
		for _, syn := range table {
			if termMatches(c, syn.term) {
				return syn.canonical
			}
		}
	}
	return ""
}

// termMatches matches in both directions so partial words still hit.
func termMatches(candidate, term string) bool {
	if candidate == term {
		return true
	}
	if len(candidate) >= minPartialLength && strings.Contains(term, candidate) {
		return true
	}
	if len(term) >= minPartialLength && strings.Contains(candidate, term) {
		return true
	}
	return false
}

// Inferrer memoises Infer.
type Inferrer struct {
	cache *lru.Cache[string, Concepts]
}

// NewInferrer creates an inferrer with the default cache size.
// If the cache cannot be created, inference runs uncached.
func NewInferrer() *Inferrer {
	cache, err := lru.New[string, Concepts](defaultCacheSize)
	if err != nil {
		log.Printf("Warning: concept cache disabled: %v", err)
		return &Inferrer{}
	}
	return &Inferrer{cache: cache}
}

// Infer returns the concepts for query, consulting the cache first.
func (i *Inferrer) Infer(query string) Concepts {
	key := text.Normalize(query)
	if i == nil || i.cache == nil {
		return Infer(key)
	}
	if c, ok := i.cache.Get(key); ok {
		return c
	}
	c := Infer(key)
	i.cache.Add(key, c)
	return c
}

// Len returns the number of memoised queries.
func (i *Inferrer) Len() int {
	if i == nil || i.cache == nil {
		return 0
	}
	return i.cache.Len()
}
