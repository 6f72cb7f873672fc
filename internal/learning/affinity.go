package learning

import (
	"time"

	"github.com/khanglvm/liftsearch/internal/storage"
	"github.com/khanglvm/liftsearch/internal/text"
)

const (
	// MaxAffinityScore caps a single query to exercise preference.
	MaxAffinityScore = 10

	// MaxAffinityEntries caps the preferences remembered per query.
	MaxAffinityEntries = 5
)

// AffinityEntry is a learned preference of a query for one exercise.
type AffinityEntry struct {
	ExerciseID   string    `json:"exerciseId"`
	Score        int       `json:"score"`
	LastChosenAt time.Time `json:"lastChosenAt"`
}

// AffinityStore persists per-query preferences under storage.KeyAffinity.
// Each list is ordered most recently reinforced first.
type AffinityStore struct {
	storage storage.Storage
}

// NewAffinityStore creates an affinity store backed by s.
func NewAffinityStore(s storage.Storage) *AffinityStore {
	return &AffinityStore{storage: s}
}

// All returns every affinity list keyed by normalized query.
func (a *AffinityStore) All() map[string][]AffinityEntry {
	lists := map[string][]AffinityEntry{}
	storage.LoadCollection(a.storage, storage.KeyAffinity, &lists)
	if lists == nil {
		lists = map[string][]AffinityEntry{}
	}
	return lists
}

// Record reinforces the choice of exerciseID for query. The entry moves to
// the front of the list; a new entry starts at 1 and the oldest entry is
// evicted when the list is full.
func (a *AffinityStore) Record(query, exerciseID string, at time.Time) AffinityEntry {
	key := text.Normalize(query)
	if key == "" {
		return AffinityEntry{}
	}

	lists := a.All()
	entries := lists[key]

	entry := AffinityEntry{ExerciseID: exerciseID}
	rest := make([]AffinityEntry, 0, len(entries))
	for _, e := range entries {
		if e.ExerciseID == exerciseID {
			entry = e
			continue
		}
		rest = append(rest, e)
	}

	entry.Score = min(entry.Score+1, MaxAffinityScore)
	entry.LastChosenAt = at

	updated := append([]AffinityEntry{entry}, rest...)
	if len(updated) > MaxAffinityEntries {
		updated = updated[:MaxAffinityEntries]
	}
	lists[key] = updated

	storage.SaveCollection(a.storage, storage.KeyAffinity, lists)
	return entry
}

// Lookup returns the preferences recorded for query.
func (a *AffinityStore) Lookup(query string) []AffinityEntry {
	return a.All()[text.Normalize(query)]
}

// Score returns the stored preference of query for exerciseID.
func (a *AffinityStore) Score(query, exerciseID string) int {
	return affinityScore(a.Lookup(query), exerciseID)
}

func affinityScore(entries []AffinityEntry, exerciseID string) int {
	for _, e := range entries {
		if e.ExerciseID == exerciseID {
			return e.Score
		}
	}
	return 0
}

// Cleanup drops entries of exercises not in existing and empty lists.
func (a *AffinityStore) Cleanup(existing map[string]bool) int {
	lists := a.All()
	removed := 0
	for query, entries := range lists {
		kept := entries[:0]
		for _, e := range entries {
			if existing[e.ExerciseID] {
				kept = append(kept, e)
			}
		}
		removed += len(entries) - len(kept)
		if len(kept) == 0 {
			delete(lists, query)
		} else {
			lists[query] = kept
		}
	}
	if removed > 0 {
		storage.SaveCollection(a.storage, storage.KeyAffinity, lists)
	}
	return removed
}
