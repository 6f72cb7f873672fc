package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

func ex(id, name string, anchor bool) catalog.Exercise {
	return catalog.NewSystem(id, name, nil, catalog.Tags{}, anchor, catalog.SystemFields{})
}

func TestFindAnchor_Registry(t *testing.T) {
	exercises := []catalog.Exercise{
		ex("1", "Smith Machine Squat", false),
		ex("2", "Barbell Squat", false),
		ex("3", "Squat", false),
	}

	got, ok := FindAnchor("  SQUAT ", exercises)
	require.True(t, ok)
	assert.Equal(t, "3", got.ID, "first registry name present wins")

	got, ok = FindAnchor("squat", exercises[:2])
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)
}

func TestFindAnchor_Hyphenated(t *testing.T) {
	exercises := []catalog.Exercise{ex("1", "Pull-up", false)}

	got, ok := FindAnchor("pull-up", exercises)
	require.True(t, ok)
	assert.Equal(t, "1", got.ID)
}

func TestFindAnchor_FlaggedBaseName(t *testing.T) {
	exercises := []catalog.Exercise{
		ex("1", "Dumbbell Goblet Squat", false),
		ex("2", "Kettlebell Swing", true),
	}

	got, ok := FindAnchor("swing", exercises)
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)

	_, ok = FindAnchor("goblet squat", exercises)
	assert.False(t, ok, "unflagged exercises are never anchors")

	_, ok = FindAnchor("", exercises)
	assert.False(t, ok)
}

func TestIsAnchorForQuery(t *testing.T) {
	tests := []struct {
		name  string
		e     catalog.Exercise
		query string
		want  bool
	}{
		{"registry name", ex("1", "Barbell Squat", false), "squat", true},
		{"flagged base name", ex("2", "Barbell Hip Thrust", true), "hip thrust", true},
		{"specialty variant", ex("3", "Smith Machine Squat", false), "squat", false},
		{"anchor for another query", ex("4", "Deadlift", false), "squat", false},
		{"empty query", ex("5", "Squat", false), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAnchorForQuery(tt.e, tt.query))
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "squat", BaseName("Smith Machine Squat"))
	assert.Equal(t, "bench press", BaseName("Barbell Bench Press"))
	assert.Equal(t, "pull up", BaseName("Weighted Pull-up"))
}

func TestCandidates(t *testing.T) {
	assert.Equal(t, "Overhead Press", Candidates("OHP")[0])
	assert.Empty(t, Candidates("zercher"))
}
