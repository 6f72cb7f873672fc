/*
Package engine is the public query surface of liftsearch.

An Engine owns one session: the System catalog loaded once at startup, the
User exercises and learning signals persisted in storage, and an in-memory
instruction index. Every ranking call reads an immutable snapshot, so
searches never block on writes for longer than a pointer swap.
*/
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/concepts"
	"github.com/khanglvm/liftsearch/internal/learning"
	"github.com/khanglvm/liftsearch/internal/search"
	"github.com/khanglvm/liftsearch/internal/storage"
)

// ErrUnknownExercise is returned when an exercise id is not in the catalog.
var ErrUnknownExercise = errors.New("unknown exercise")

// ErrInstructionsUnavailable is returned when the instruction index could
// not be built.
var ErrInstructionsUnavailable = errors.New("instruction search unavailable")

// Options configures an Engine.
type Options struct {
	// CatalogSource is an http(s) URL, a .json/.yaml file or empty for the
	// built-in catalog.
	CatalogSource  string
	CatalogTimeout time.Duration

	// StorageBackend is sqlite, badger or memory. StoragePath empty
	// selects the default location.
	StorageBackend string
	StoragePath    string

	// Storage overrides StorageBackend when set.
	Storage storage.Storage

	// DisableLearning stops selections from being recorded and hides
	// stored signals from ranking.
	DisableLearning bool
}

// Tiers is the result of Search.
type Tiers struct {
	Tier1 []catalog.Exercise `json:"tier1"`
	Tier2 []catalog.Exercise `json:"tier2"`
}

// SelectionOptions qualifies a recorded selection.
type SelectionOptions struct {
	ContextID  string
	LearnAlias bool
}

// CleanupResult reports what Cleanup removed.
type CleanupResult struct {
	UserExercises int `json:"userExercises"`
	Signals       int `json:"signals"`
}

// Stats summarises the catalog and the learning state.
type Stats struct {
	SystemExercises int            `json:"systemExercises"`
	UserExercises   int            `json:"userExercises"`
	Indexed         uint64         `json:"indexed"`
	Learning        learning.Stats `json:"learning"`
}

// Engine ranks exercises for free-text queries and learns from selections.
type Engine struct {
	store    storage.Storage
	tracker  *learning.Tracker
	users    *catalog.UserStore
	indexer  *search.Indexer
	scorer   *learning.Scorer
	inferrer *concepts.Inferrer
	system   []catalog.Exercise

	mu       sync.RWMutex
	snapshot *catalog.Snapshot
}

// New loads the catalog, opens the stores and seeds system aliases.
//
// Catalog and storage faults are logged and degrade to the built-in
// catalog and to disabled learning respectively. Only an unknown storage
// backend is an error.
func New(ctx context.Context, opts Options) (*Engine, error) {
	store := opts.Storage
	if store == nil {
		s, err := storage.Open(opts.StorageBackend, opts.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		store = s
	}

	tracker := learning.NewTracker(store)
	if opts.DisableLearning {
		tracker.Disable()
	}

	system := catalog.NewLoader(opts.CatalogSource, opts.CatalogTimeout).Load(ctx)
	users := catalog.NewUserStore(store)
	userExercises := users.All()

	// User exercises stored before their aliases were seeded pick them up here.
	seed := make([]catalog.Exercise, 0, len(system)+len(userExercises))
	seed = append(append(seed, system...), userExercises...)
	tracker.Aliases().SeedSystem(seed)

	e := &Engine{
		store:    store,
		tracker:  tracker,
		users:    users,
		scorer:   learning.NewScorer(),
		inferrer: concepts.NewInferrer(),
		system:   system,
		snapshot: catalog.NewSnapshot(system, userExercises),
	}

	indexer, err := search.NewIndexer()
	if err != nil {
		log.Printf("Warning: %v", err)
	} else if err := indexer.IndexExercises(e.snapshot.Exercises()); err != nil {
		log.Printf("Warning: %v", err)
		indexer.Close()
	} else {
		e.indexer = indexer
	}

	return e, nil
}

func (e *Engine) current() *catalog.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Exercises returns the merged catalog.
func (e *Engine) Exercises() []catalog.Exercise {
	return e.current().Exercises()
}

// Exercise returns the exercise with id.
func (e *Engine) Exercise(id string) (catalog.Exercise, bool) {
	return e.current().ByID(id)
}

// Find resolves an exercise by id, then by display name.
func (e *Engine) Find(ref string) (catalog.Exercise, bool) {
	snap := e.current()
	if ex, ok := snap.ByID(ref); ok {
		return ex, true
	}
	return snap.FindByName(ref)
}

// SearchHits runs SmartSearch and keeps the per-hit scores.
func (e *Engine) SearchHits(query, contextID string) search.SmartResult {
	return search.SmartSearch(e.current().Exercises(), query, search.SmartOptions{
		ContextID: contextID,
		Signals:   e.tracker.Signals(),
		Scorer:    e.scorer,
		Inferrer:  e.inferrer,
	})
}

// Search returns text matches ranked by familiarity as Tier1 and, when
// matches are weak, semantically related exercises as Tier2.
func (e *Engine) Search(query, contextID string) Tiers {
	r := e.SearchHits(query, contextID)
	return Tiers{
		Tier1: search.HitExercises(r.Matches),
		Tier2: search.HitExercises(r.Related),
	}
}

// ExercisesWithAliases returns the merged catalog with stored aliases
// folded into each exercise.
func (e *Engine) ExercisesWithAliases() []catalog.Exercise {
	return e.current().WithAliases(e.tracker.Signals().Aliases).Exercises()
}

// Explore routes query to precision or discovery search. Stored aliases
// take part in matching.
func (e *Engine) Explore(query string) search.UnifiedResult {
	return search.Search(e.ExercisesWithAliases(), query)
}

// Refine filters an Explore result by equipment labels and buckets.
func (e *Engine) Refine(r search.UnifiedResult, equipment, buckets []string) search.UnifiedResult {
	return search.ApplyRefiners(r, equipment, buckets)
}

// AddExercise creates a User exercise. It is idempotent: an exercise with
// the same normalized name is returned as is.
func (e *Engine) AddExercise(name string) (catalog.Exercise, error) {
	return e.AddExerciseWithTags(name, catalog.Tags{})
}

// AddExerciseWithTags is AddExercise with tags for a new exercise. Tags
// are ignored when the exercise already exists.
func (e *Engine) AddExerciseWithTags(name string, tags catalog.Tags) (catalog.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Exercise{}, catalog.ErrEmptyName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if ex, ok := e.snapshot.FindByName(name); ok {
		return ex, nil
	}

	ex, err := e.users.Create(name, tags, e.snapshot)
	if errors.Is(err, catalog.ErrDuplicateName) {
		// Stored by another session since the snapshot was built.
		e.snapshot = catalog.NewSnapshot(e.system, e.users.All())
		if existing, ok := e.snapshot.FindByName(name); ok {
			return existing, nil
		}
	}
	if err != nil {
		return catalog.Exercise{}, err
	}

	e.tracker.Aliases().SeedSystem([]catalog.Exercise{ex})
	e.snapshot = e.snapshot.Add(ex)
	if e.indexer != nil {
		if err := e.indexer.IndexExercises([]catalog.Exercise{ex}); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	return ex, nil
}

// RecordSelection records that exerciseID was picked for query. Usage and
// affinity are always updated; an alias is learned when asked.
func (e *Engine) RecordSelection(query, exerciseID string, opts SelectionOptions) (learning.TrackResult, error) {
	ex, ok := e.Exercise(exerciseID)
	if !ok {
		return learning.TrackResult{}, fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID)
	}

	event := learning.NewSelectionEvent(query, ex.ID, ex.Name, opts.ContextID, opts.LearnAlias)
	return e.tracker.Track(event), nil
}

// Aliases returns the stored aliases of exerciseID.
func (e *Engine) Aliases(exerciseID string) []learning.Alias {
	return e.tracker.Aliases().For(exerciseID)
}

// AddAlias stores a manual alias.
func (e *Engine) AddAlias(exerciseID, aliasText string) (learning.Alias, error) {
	if _, ok := e.Exercise(exerciseID); !ok {
		return learning.Alias{}, fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID)
	}
	return e.tracker.Aliases().Add(exerciseID, aliasText, learning.SourceManual)
}

// Cleanup drops User exercises whose id is not in keepUserIDs, then every
// alias, usage and affinity record of an exercise no longer in the
// catalog.
func (e *Engine) Cleanup(keepUserIDs []string) CleanupResult {
	keep := make(map[string]bool, len(keepUserIDs))
	for _, id := range keepUserIDs {
		keep[id] = true
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var dropped []string
	for _, ex := range e.users.All() {
		if !keep[ex.ID] {
			dropped = append(dropped, ex.ID)
		}
	}

	result := CleanupResult{UserExercises: e.users.Cleanup(keep)}
	e.snapshot = catalog.NewSnapshot(e.system, e.users.All())
	result.Signals = e.tracker.Cleanup(e.snapshot.IDs())

	if e.indexer != nil && len(dropped) > 0 {
		if err := e.indexer.Remove(dropped...); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	return result
}

// ExportLearning returns every stored alias, usage and affinity record.
func (e *Engine) ExportLearning() learning.Export {
	return e.tracker.Export()
}

// UserIDs returns the ids of every stored User exercise.
func (e *Engine) UserIDs() []string {
	users := e.current().User()
	ids := make([]string, len(users))
	for i, ex := range users {
		ids[i] = ex.ID
	}
	return ids
}

// Instructions runs full-text search over exercise names and
// instructions, optionally scoped to one equipment label.
func (e *Engine) Instructions(query, equipment string, limit int) ([]search.InstructionHit, error) {
	if e.indexer == nil {
		return nil, ErrInstructionsUnavailable
	}
	return e.indexer.SearchInstructionsWithEquipment(query, equipment, limit)
}

// Stats summarises the session.
func (e *Engine) Stats() Stats {
	snap := e.current()
	stats := Stats{
		SystemExercises: len(snap.System()),
		UserExercises:   len(snap.User()),
		Learning:        e.tracker.Stats(),
	}
	if e.indexer != nil {
		if n, err := e.indexer.Count(); err == nil {
			stats.Indexed = n
		}
	}
	return stats
}

// LearningEnabled reports whether selections are recorded.
func (e *Engine) LearningEnabled() bool {
	return e.tracker.IsEnabled()
}

// Close releases the index and the storage backend.
func (e *Engine) Close() error {
	if e.indexer != nil {
		if err := e.indexer.Close(); err != nil {
			log.Printf("Warning: failed to close index: %v", err)
		}
	}
	return e.store.Close()
}
