package learning

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/storage"
)

func TestAliasStore_AddDeduplicates(t *testing.T) {
	store := NewAliasStore(storage.NewMemoryStorage())

	first, err := store.Add("sys-bench-press", "Bench  Press", SourceManual)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := store.Add("sys-bench-press", "bench press", SourceManual)
	if err != nil {
		t.Fatalf("second Add failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same record, got %s and %s", first.ID, second.ID)
	}
	if first.Text != "bench press" {
		t.Errorf("expected normalized text, got %q", first.Text)
	}
	if n := len(store.All()); n != 1 {
		t.Errorf("expected 1 alias, got %d", n)
	}

	// Same text on another exercise is a different alias.
	other, _ := store.Add("sys-incline", "bench press", SourceManual)
	if other.ID == first.ID {
		t.Error("expected a new record for a different exercise")
	}
}

func TestAliasStore_AddEmpty(t *testing.T) {
	store := NewAliasStore(storage.NewMemoryStorage())

	if _, err := store.Add("x", "   ", SourceManual); !errors.Is(err, ErrEmptyAlias) {
		t.Errorf("expected ErrEmptyAlias, got %v", err)
	}
}

func TestAliasStore_FindByQuery(t *testing.T) {
	store := NewAliasStore(storage.NewMemoryStorage())
	store.Add("a", "flat bench", SourceManual)
	store.Add("b", "bench", SourceManual)
	store.Add("c", "military press", SourceManual)

	hits := store.FindByQuery("Bench")

	got := make(map[string]MatchKind)
	for _, h := range hits {
		got[h.ExerciseID] = h.Match
	}
	want := map[string]MatchKind{"a": MatchToken, "b": MatchExact}
	if len(got) != len(want) {
		t.Fatalf("unexpected hits: %+v", hits)
	}
	for id, kind := range want {
		if got[id] != kind {
			t.Errorf("hit %s: got %q, want %q", id, got[id], kind)
		}
	}

	prefix := store.FindByQuery("milit")
	if len(prefix) != 1 || prefix[0].Match != MatchPrefix {
		t.Errorf("expected one prefix hit, got %+v", prefix)
	}

	if store.FindByQuery("  ") != nil {
		t.Error("expected no hits for an empty query")
	}
}

func TestAliasStore_Learn(t *testing.T) {
	store := NewAliasStore(storage.NewMemoryStorage())
	store.Add("sys-ohp", "ohp", SourceSystem)

	if _, added := store.Learn("OHP", "sys-ohp"); added {
		t.Error("existing alias should not be learned again")
	}
	alias, added := store.Learn("military", "sys-ohp")
	if !added || alias.Source != SourceLearned {
		t.Errorf("expected learned alias, got %+v, %v", alias, added)
	}
	if _, added := store.Learn("military", "sys-ohp"); added {
		t.Error("learning must be idempotent")
	}
	if n := len(store.For("sys-ohp")); n != 2 {
		t.Errorf("expected 2 aliases, got %d", n)
	}
}

func TestGenerateCommon(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"Barbell Bench Press", []string{"bb bench press", "barbellbenchpress"}},
		{"Dumbbell Romanian Deadlift", []string{"dumbbell rdl", "db romanian deadlift", "db rdl", "dumbbellromaniandeadlift"}},
		{"Squat", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCommon(tt.name)
			if len(got) != len(tt.want) {
				t.Fatalf("GenerateCommon(%q) = %v, want %v", tt.name, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("GenerateCommon(%q)[%d] = %q, want %q", tt.name, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAliasStore_SeedSystemOnce(t *testing.T) {
	s := storage.NewMemoryStorage()
	store := NewAliasStore(s)
	exercises := catalog.Fallback()

	added := store.SeedSystem(exercises)
	if added == 0 {
		t.Fatal("expected system aliases to be seeded")
	}
	if again := store.SeedSystem(exercises); again != 0 {
		t.Errorf("expected seeding to run once, added %d more", again)
	}

	found := false
	for _, al := range store.For("sys-barbell-row") {
		if al.Text == "bb row" && al.Source == SourceSystem {
			found = true
		}
	}
	if !found {
		t.Error("expected bb row alias for Barbell Row")
	}
}

func TestUsageStore_Record(t *testing.T) {
	store := NewUsageStore(storage.NewMemoryStorage())
	t1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	store.Record("sys-squat", "leg-day", t1)
	r := store.Record("sys-squat", "", t1.Add(-time.Hour))

	if r.Count != 2 {
		t.Errorf("expected count 2, got %d", r.Count)
	}
	if !r.LastUsed.Equal(t1) {
		t.Errorf("last used must not move backwards, got %v", r.LastUsed)
	}
	if r.LastContextID != "leg-day" {
		t.Errorf("empty context must keep the last one, got %q", r.LastContextID)
	}

	got, ok := store.Get("sys-squat")
	if !ok || got.Count != 2 {
		t.Errorf("Get() = %+v, %v", got, ok)
	}
}

func TestAffinityStore_ScoreCap(t *testing.T) {
	store := NewAffinityStore(storage.NewMemoryStorage())
	at := time.Now()

	for i := 0; i < 20; i++ {
		store.Record("squat", "sys-squat", at)
	}

	if got := store.Score("squat", "sys-squat"); got != MaxAffinityScore {
		t.Errorf("expected score %d, got %d", MaxAffinityScore, got)
	}
}

func TestAffinityStore_ListCapAndOrder(t *testing.T) {
	store := NewAffinityStore(storage.NewMemoryStorage())
	at := time.Now()

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		store.Record("press", id, at)
	}
	store.Record("press", "a", at)
	store.Record("press", "f", at)

	entries := store.Lookup("PRESS")
	if len(entries) != MaxAffinityEntries {
		t.Fatalf("expected %d entries, got %d", MaxAffinityEntries, len(entries))
	}

	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.ExerciseID
	}
	want := []string{"f", "a", "e", "d", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", order, want)
		}
	}
	if entries[1].Score != 2 {
		t.Errorf("expected reinforced entry score 2, got %d", entries[1].Score)
	}
}

func TestStores_CorruptDataFallsBackToEmpty(t *testing.T) {
	s := storage.NewMemoryStorage()
	s.Put(storage.KeyAliases, []byte("not json"))
	s.Put(storage.KeyUsage, []byte("[1,2"))
	s.Put(storage.KeyAffinity, []byte("42"))

	if n := len(NewAliasStore(s).All()); n != 0 {
		t.Errorf("expected empty aliases, got %d", n)
	}
	if n := len(NewUsageStore(s).All()); n != 0 {
		t.Errorf("expected empty usage, got %d", n)
	}
	if n := len(NewAffinityStore(s).All()); n != 0 {
		t.Errorf("expected empty affinity, got %d", n)
	}

	// Writes replace the corrupt collection.
	NewUsageStore(s).Record("x", "", time.Now())
	if _, ok := NewUsageStore(s).Get("x"); !ok {
		t.Error("expected record after rewrite")
	}
}

func TestStores_TypeMismatchFallsBackToEmpty(t *testing.T) {
	s := storage.NewMemoryStorage()
	s.Put(storage.KeyUsage, []byte(`{"a":{"count":3},"b":{"count":"oops"}}`))
	s.Put(storage.KeyAliases, []byte(`[{"exerciseId":"x","text":"bb bench"},{"exerciseId":7}]`))
	s.Put(storage.KeyAffinity, []byte(`{"squat":[{"exerciseId":"x","score":"high"}]}`))

	if n := len(NewUsageStore(s).All()); n != 0 {
		t.Errorf("expected empty usage, got %d", n)
	}
	if n := len(NewAliasStore(s).All()); n != 0 {
		t.Errorf("expected empty aliases, got %d", n)
	}
	if n := len(NewAffinityStore(s).All()); n != 0 {
		t.Errorf("expected empty affinity, got %d", n)
	}

	// A write after the fallback must not carry half-decoded records.
	if _, err := NewAliasStore(s).Add("sys-squat", "back squat", SourceManual); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	for _, a := range NewAliasStore(s).All() {
		if a.ID == "" || a.ExerciseID == "" {
			t.Errorf("unexpected partial alias after rewrite: %+v", a)
		}
	}
}

func TestStores_SurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	first := storage.NewSQLiteStorage(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	NewAffinityStore(first).Record("squat", "sys-squat", time.Now())
	first.Close()

	second := storage.NewSQLiteStorage(path)
	if err := second.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer second.Close()

	if got := NewAffinityStore(second).Score("squat", "sys-squat"); got != 1 {
		t.Errorf("expected persisted score 1, got %d", got)
	}
}
