package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

func scoredWith(n, barbell int) []Scored {
	results := make([]Scored, n)
	for i := range results {
		equipment := "dumbbell"
		if i < barbell {
			equipment = "barbell"
		}
		e := catalog.NewSystem(fmt.Sprintf("r%02d", i), fmt.Sprintf("Move %02d", i), nil,
			catalog.Tags{Equipment: equipment, PrimaryMuscles: []string{"chest"}}, false, catalog.SystemFields{})
		results[i] = Scored{Exercise: e, Score: 100}
	}
	return results
}

func TestBuildRefiners_BelowMinimum(t *testing.T) {
	assert.True(t, BuildRefiners(scoredWith(MinRefinerResults-1, 10)).IsEmpty())
}

func TestBuildRefiners_ShareThreshold(t *testing.T) {
	tests := []struct {
		name      string
		barbell   int
		wantLabel []string
	}{
		{"barbell at 30 percent", 6, []string{"dumbbell", "barbell"}},
		{"barbell below 30 percent", 5, []string{"dumbbell"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BuildRefiners(scoredWith(20, tt.barbell))

			var labels []string
			for _, f := range r.Equipment {
				labels = append(labels, f.Label)
			}
			assert.Equal(t, tt.wantLabel, labels)
			require.Len(t, r.Buckets, 1)
			assert.Equal(t, Facet{Label: "chest", Count: 20}, r.Buckets[0])
		})
	}
}

func TestBuildRefiners_CapPerKind(t *testing.T) {
	results := scoredWith(30, 0)
	for i := range results {
		e := results[i].Exercise
		e.Tags.Equipment = []string{"barbell", "cable", "kettlebell"}[i%3]
		results[i].Exercise = e
	}

	r := BuildRefiners(results)

	assert.Len(t, r.Equipment, maxRefinersPerKind)
	assert.Equal(t, "barbell", r.Equipment[0].Label, "equal counts fall back to label order")
}

func TestFilterResults(t *testing.T) {
	results := scoredWith(4, 2)

	assert.Len(t, FilterResults(results, nil, nil), 4)
	assert.Len(t, FilterResults(results, []string{"barbell"}, nil), 2)
	assert.Len(t, FilterResults(results, []string{"barbell"}, []string{"chest"}), 2)
	assert.Empty(t, FilterResults(results, []string{"barbell"}, []string{"legs"}))
	assert.Len(t, FilterResults(results, []string{"barbell", "dumbbell"}, nil), 4)
}

func TestApplyRefiners_PrecisionKeepsBest(t *testing.T) {
	exercises := []catalog.Exercise{
		catalog.NewSystem("1", "Cable Fly", nil, catalog.Tags{Equipment: "cable"}, false, catalog.SystemFields{}),
		catalog.NewSystem("2", "Dumbbell Fly Press", nil, catalog.Tags{Equipment: "dumbbell"}, false, catalog.SystemFields{}),
		catalog.NewSystem("3", "Incline Fly Raise", nil, catalog.Tags{Equipment: "cable"}, false, catalog.SystemFields{}),
	}

	result := Search(exercises, "cable fly")
	require.Equal(t, IntentPrecision, result.Intent)
	require.Len(t, result.Best, 1)
	require.Len(t, result.Related, 2)

	filtered := ApplyRefiners(result, []string{"dumbbell"}, nil)

	assert.Equal(t, result.Best, filtered.Best)
	assert.Equal(t, []string{"Dumbbell Fly Press"}, names(filtered.Related))
}

func TestSearch_DiscoveryCap(t *testing.T) {
	exercises := make([]catalog.Exercise, 100)
	for i := range exercises {
		exercises[i] = catalog.NewSystem(fmt.Sprintf("b%03d", i), fmt.Sprintf("Row %03d", i), nil,
			catalog.Tags{Equipment: "barbell"}, false, catalog.SystemFields{})
	}

	result := Search(exercises, "barbell")

	assert.Equal(t, IntentDiscovery, result.Intent)
	assert.Len(t, result.Results, DiscoveryLimit)
	assert.Equal(t, DiscoveryLimit, result.Total())
	require.Len(t, result.Refiners.Equipment, 1)
	assert.Equal(t, "barbell", result.Refiners.Equipment[0].Label)
}
