package learning

import (
	"log"
	"sync"
	"time"

	"github.com/khanglvm/liftsearch/internal/storage"
)

// Tracker applies selection events to the learning stores.
//
// Tracking is synchronous: Track returns after every store has been
// rewritten, so the next search already sees the new signals. A disabled
// tracker ignores events and reports empty signals.
type Tracker struct {
	aliases  *AliasStore
	usage    *UsageStore
	affinity *AffinityStore
	enabled  bool
	mu       sync.RWMutex
}

// TrackResult reports what one event changed.
type TrackResult struct {
	Usage    UsageRecord   `json:"usage"`
	Affinity AffinityEntry `json:"affinity"`

	// Alias is the learned alias, or nil when none was stored.
	Alias *Alias `json:"alias,omitempty"`
}

// Stats summarises the learning state.
type Stats struct {
	Enabled          bool           `json:"enabled"`
	Aliases          int            `json:"aliases"`
	AliasesBySource  map[Source]int `json:"aliasesBySource"`
	TrackedExercises int            `json:"trackedExercises"`
	Selections       int            `json:"selections"`
	Queries          int            `json:"queries"`
}

// NewTracker creates a tracker over the three stores backed by s.
func NewTracker(s storage.Storage) *Tracker {
	t := &Tracker{
		aliases:  NewAliasStore(s),
		usage:    NewUsageStore(s),
		affinity: NewAffinityStore(s),
		enabled:  true,
	}

	if err := s.Init(); err != nil {
		log.Printf("Warning: learning storage initialization failed: %v", err)
		t.enabled = false
	}

	return t
}

// Aliases returns the alias store.
func (t *Tracker) Aliases() *AliasStore { return t.aliases }

// Usage returns the usage store.
func (t *Tracker) Usage() *UsageStore { return t.usage }

// Affinity returns the affinity store.
func (t *Tracker) Affinity() *AffinityStore { return t.affinity }

// Track records usage and affinity for the event and learns an alias when
// the event asks for it.
func (t *Tracker) Track(event SelectionEvent) TrackResult {
	if !t.IsEnabled() {
		return TrackResult{}
	}

	at := event.Timestamp
	if at.IsZero() {
		at = time.Now()
	}

	result := TrackResult{
		Usage:    t.usage.Record(event.ExerciseID, event.ContextID, at),
		Affinity: t.affinity.Record(event.Query, event.ExerciseID, at),
	}

	if event.shouldLearnAlias() {
		if alias, added := t.aliases.Learn(event.Query, event.ExerciseID); added {
			result.Alias = &alias
		}
	}

	return result
}

// Signals loads the current learning state for one scoring pass.
func (t *Tracker) Signals() Signals {
	if !t.IsEnabled() {
		return Signals{}
	}
	return LoadSignals(t.aliases, t.usage, t.affinity)
}

// Stats summarises the stored signals.
func (t *Tracker) Stats() Stats {
	stats := Stats{
		Enabled:         t.IsEnabled(),
		AliasesBySource: make(map[Source]int),
	}

	for _, al := range t.aliases.All() {
		stats.Aliases++
		stats.AliasesBySource[al.Source]++
	}

	usage := t.usage.All()
	stats.TrackedExercises = len(usage)
	for _, r := range usage {
		stats.Selections += r.Count
	}

	stats.Queries = len(t.affinity.All())
	return stats
}

// Export is the full learning state.
type Export struct {
	Aliases  []Alias                    `json:"aliases"`
	Usage    map[string]UsageRecord     `json:"usage"`
	Affinity map[string][]AffinityEntry `json:"affinity"`
}

// Export returns every stored record.
func (t *Tracker) Export() Export {
	aliases := t.aliases.All()
	if aliases == nil {
		aliases = []Alias{}
	}
	return Export{
		Aliases:  aliases,
		Usage:    t.usage.All(),
		Affinity: t.affinity.All(),
	}
}

// Cleanup removes every signal of exercises not in existing and returns
// how many records were removed.
func (t *Tracker) Cleanup(existing map[string]bool) int {
	return t.aliases.Cleanup(existing) +
		t.usage.Cleanup(existing) +
		t.affinity.Cleanup(existing)
}

// Disable disables tracking (events are ignored).
func (t *Tracker) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
}

// Enable enables tracking.
func (t *Tracker) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = true
}

// IsEnabled returns whether tracking is enabled.
func (t *Tracker) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
