package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/learning"
	"github.com/khanglvm/liftsearch/internal/search"
	"github.com/khanglvm/liftsearch/internal/storage"
)

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()

	if opts.Storage == nil && opts.StorageBackend == "" {
		opts.Storage = storage.NewMemoryStorage()
	}

	e, err := New(context.Background(), opts)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func names(exercises []catalog.Exercise) []string {
	out := make([]string, len(exercises))
	for i, ex := range exercises {
		out[i] = ex.Name
	}
	return out
}

func containsName(exercises []catalog.Exercise, name string) bool {
	for _, ex := range exercises {
		if ex.Name == name {
			return true
		}
	}
	return false
}

func TestNew_FallbackCatalog(t *testing.T) {
	e := newTestEngine(t, Options{})

	stats := e.Stats()
	if want := len(catalog.Fallback()); stats.SystemExercises != want {
		t.Errorf("expected %d system exercises, got %d", want, stats.SystemExercises)
	}
	if stats.Indexed != uint64(stats.SystemExercises) {
		t.Errorf("expected %d indexed exercises, got %d", stats.SystemExercises, stats.Indexed)
	}
	if stats.Learning.AliasesBySource["system"] == 0 {
		t.Error("expected system aliases to be seeded")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New(context.Background(), Options{StorageBackend: "postgres"}); err == nil {
		t.Error("expected error for unknown storage backend")
	}
}

func TestSearch_AnchorFirst(t *testing.T) {
	e := newTestEngine(t, Options{})

	tiers := e.Search("squat", "")

	if len(tiers.Tier1) == 0 || tiers.Tier1[0].Name != "Squat" {
		t.Fatalf("expected Squat first, got %v", names(tiers.Tier1))
	}
	if len(tiers.Tier2) != 0 {
		t.Errorf("expected no related tier for a strong query, got %v", names(tiers.Tier2))
	}
}

func TestSearch_WeakQueryFillsTier2(t *testing.T) {
	e := newTestEngine(t, Options{})

	tiers := e.Search("quads", "")

	if len(tiers.Tier1) != 0 {
		t.Errorf("expected no text matches, got %v", names(tiers.Tier1))
	}
	if len(tiers.Tier2) == 0 || tiers.Tier2[0].Name != "Squat" {
		t.Errorf("expected Squat to lead the related tier, got %v", names(tiers.Tier2))
	}
}

func TestAddExercise_Idempotent(t *testing.T) {
	e := newTestEngine(t, Options{})

	existing, err := e.AddExercise("  SQUAT ")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if existing.ID != "sys-squat" {
		t.Errorf("expected the system Squat, got %s", existing.ID)
	}

	first, err := e.AddExercise("Zercher Squat")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if first.Kind != catalog.KindUser || !strings.HasPrefix(first.ID, "user-") {
		t.Errorf("expected a user exercise, got %+v", first)
	}

	second, err := e.AddExercise("zercher   squat")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the same exercise, got %s and %s", first.ID, second.ID)
	}

	if got := e.Stats().UserExercises; got != 1 {
		t.Errorf("expected 1 user exercise, got %d", got)
	}
	if tiers := e.Search("zercher", ""); !containsName(tiers.Tier1, "Zercher Squat") {
		t.Errorf("expected the new exercise to be searchable, got %v", names(tiers.Tier1))
	}
}

func TestAddExercise_EmptyName(t *testing.T) {
	e := newTestEngine(t, Options{})

	if _, err := e.AddExercise("   "); !errors.Is(err, catalog.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestAddExercise_PersistsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	first := newTestEngine(t, Options{StorageBackend: storage.BackendSQLite, StoragePath: path})
	created, err := first.AddExercise("Belt Squat")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	first.Close()

	second := newTestEngine(t, Options{StorageBackend: storage.BackendSQLite, StoragePath: path})
	if _, ok := second.Exercise(created.ID); !ok {
		t.Errorf("expected %s to survive a restart", created.ID)
	}
}

func TestAddExercise_SeedsGeneratedAliases(t *testing.T) {
	store := storage.NewMemoryStorage()
	e := newTestEngine(t, Options{Storage: store})

	ex, err := e.AddExercise("Barbell Hack Squat")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}

	systemAliases := func(e *Engine) []string {
		var out []string
		for _, a := range e.Aliases(ex.ID) {
			if a.Source == learning.SourceSystem {
				out = append(out, a.Text)
			}
		}
		return out
	}

	for _, want := range []string{"bb hack squat", "barbellhacksquat"} {
		if got := systemAliases(e); !containsString(got, want) {
			t.Errorf("expected generated alias %q after add, got %v", want, got)
		}
	}

	reopened := newTestEngine(t, Options{Storage: store})
	if got := systemAliases(reopened); len(got) != 2 {
		t.Errorf("expected seeding to stay once per exercise, got %v", got)
	}
}

func TestNew_SeedsStoredUserExercises(t *testing.T) {
	store := storage.NewMemoryStorage()

	// Stored without going through the engine, so nothing is seeded yet.
	ex, err := catalog.NewUserStore(store).Create("Kettlebell Halo", catalog.Tags{}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	e := newTestEngine(t, Options{Storage: store})

	var texts []string
	for _, a := range e.Aliases(ex.ID) {
		texts = append(texts, a.Text)
	}
	if !containsString(texts, "kb halo") || !containsString(texts, "kettlebellhalo") {
		t.Errorf("expected generated aliases for stored user exercise, got %v", texts)
	}
}

func TestRecordSelection_ReordersMatches(t *testing.T) {
	e := newTestEngine(t, Options{})

	for i := 0; i < 3; i++ {
		if _, err := e.RecordSelection("squat", "sys-front-squat", SelectionOptions{ContextID: "leg-day"}); err != nil {
			t.Fatalf("RecordSelection failed: %v", err)
		}
	}

	tiers := e.Search("squat", "leg-day")
	if len(tiers.Tier1) == 0 || tiers.Tier1[0].Name != "Front Squat" {
		t.Errorf("expected Front Squat first after repeated selection, got %v", names(tiers.Tier1))
	}
}

func TestRecordSelection_LearnsAlias(t *testing.T) {
	e := newTestEngine(t, Options{})

	result, err := e.RecordSelection("quad killer", "sys-front-squat", SelectionOptions{LearnAlias: true})
	if err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}
	if result.Alias == nil || result.Alias.Text != "quad killer" {
		t.Fatalf("expected a learned alias, got %+v", result.Alias)
	}

	if tiers := e.Search("quad killer", ""); !containsName(tiers.Tier1, "Front Squat") {
		t.Errorf("expected the learned alias to match, got %v", names(tiers.Tier1))
	}
}

func TestRecordSelection_UnknownExercise(t *testing.T) {
	e := newTestEngine(t, Options{})

	if _, err := e.RecordSelection("squat", "nope", SelectionOptions{}); !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("expected ErrUnknownExercise, got %v", err)
	}
}

func TestRecordSelection_LearningDisabled(t *testing.T) {
	e := newTestEngine(t, Options{DisableLearning: true})

	result, err := e.RecordSelection("squat", "sys-front-squat", SelectionOptions{LearnAlias: true})
	if err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}
	if result.Alias != nil || result.Usage.Count != 0 {
		t.Errorf("expected nothing recorded, got %+v", result)
	}
	if tiers := e.Search("squat", ""); tiers.Tier1[0].Name != "Squat" {
		t.Errorf("expected ranking unaffected, got %v", names(tiers.Tier1))
	}
}

func TestAddAlias_Explore(t *testing.T) {
	e := newTestEngine(t, Options{})

	if _, err := e.AddAlias("sys-front-squat", "zercher-ish"); err != nil {
		t.Fatalf("AddAlias failed: %v", err)
	}
	if _, err := e.AddAlias("missing", "x"); !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("expected ErrUnknownExercise, got %v", err)
	}

	result := e.Explore("zercher-ish")
	if result.Intent != search.IntentDiscovery {
		t.Fatalf("expected discovery intent, got %s", result.Intent)
	}
	if len(result.Results) == 0 || result.Results[0].Exercise.Name != "Front Squat" {
		t.Errorf("expected Front Squat via manual alias, got %v", result.Results)
	}

	var manual int
	for _, a := range e.Aliases("sys-front-squat") {
		if a.Source == "manual" {
			manual++
		}
	}
	if manual != 1 {
		t.Errorf("expected 1 manual alias, got %d", manual)
	}
}

func TestExplore_Refine(t *testing.T) {
	e := newTestEngine(t, Options{})

	result := e.Explore("legs")
	if result.Intent != search.IntentDiscovery || len(result.Results) == 0 {
		t.Fatalf("expected discovery results, got %+v", result)
	}

	refined := e.Refine(result, []string{"machine"}, nil)
	if len(refined.Results) == 0 || len(refined.Results) >= len(result.Results) {
		t.Fatalf("expected a narrower result set, got %d of %d", len(refined.Results), len(result.Results))
	}
	for _, r := range refined.Results {
		if r.Exercise.EquipmentLabel() != "machine" {
			t.Errorf("unexpected equipment %q for %s", r.Exercise.EquipmentLabel(), r.Exercise.Name)
		}
	}
}

func TestCleanup(t *testing.T) {
	e := newTestEngine(t, Options{})

	kept, _ := e.AddExercise("Belt Squat")
	dropped, _ := e.AddExercise("Sissy Squat")
	if _, err := e.RecordSelection("sissy", dropped.ID, SelectionOptions{LearnAlias: true}); err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}

	result := e.Cleanup([]string{kept.ID})

	if result.UserExercises != 1 {
		t.Errorf("expected 1 user exercise removed, got %d", result.UserExercises)
	}
	if result.Signals < 3 {
		t.Errorf("expected alias, usage and affinity records removed, got %d", result.Signals)
	}
	if _, ok := e.Exercise(dropped.ID); ok {
		t.Error("expected dropped exercise to be gone")
	}
	if ids := e.UserIDs(); len(ids) != 1 || ids[0] != kept.ID {
		t.Errorf("expected only %s to remain, got %v", kept.ID, ids)
	}
}

func TestInstructions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `[
		{"name": "Deadlift", "equipment": "barbell", "instructions": ["Hinge at the hips", "Drive through the floor"]},
		{"name": "Goblet Squat", "equipment": "kettlebell", "instructions": ["Hold the bell at your chest"]}
	]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	e := newTestEngine(t, Options{CatalogSource: path})

	hits, err := e.Instructions("hinge", "", 5)
	if err != nil {
		t.Fatalf("Instructions failed: %v", err)
	}
	if len(hits) == 0 || hits[0].ExerciseID != "sys-deadlift" {
		t.Errorf("expected Deadlift, got %+v", hits)
	}

	hits, err = e.Instructions("chest", "barbell", 5)
	if err != nil {
		t.Fatalf("Instructions failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected equipment filter to exclude Goblet Squat, got %+v", hits)
	}
}

func TestExportLearning_ExercisesWithAliases(t *testing.T) {
	e := newTestEngine(t, Options{})

	if _, err := e.AddAlias("sys-squat", "back squat"); err != nil {
		t.Fatalf("AddAlias failed: %v", err)
	}
	if _, err := e.RecordSelection("squat", "sys-squat", SelectionOptions{}); err != nil {
		t.Fatalf("RecordSelection failed: %v", err)
	}

	export := e.ExportLearning()
	if export.Usage["sys-squat"].Count != 1 {
		t.Errorf("expected usage for sys-squat, got %+v", export.Usage)
	}

	var found bool
	for _, ex := range e.ExercisesWithAliases() {
		if ex.ID == "sys-squat" {
			for _, a := range ex.Aliases {
				if a == "back squat" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("expected stored alias folded into sys-squat")
	}
	if ex, _ := e.Exercise("sys-squat"); containsString(ex.Aliases, "back squat") {
		t.Error("plain catalog should not carry stored aliases")
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
