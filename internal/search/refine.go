package search

import (
	"sort"

	"github.com/khanglvm/liftsearch/internal/catalog"
)

const (
	// MinRefinerResults is the result count below which no refiners are
	// offered.
	MinRefinerResults = 20

	// A facet must retain refinerSharePercent of the results.
	refinerSharePercent = 30

	// maxRefinersPerKind caps equipment and bucket refiners separately.
	maxRefinersPerKind = 2
)

// Facet is a refiner label with the number of results carrying it.
type Facet struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Refiners are the facets offered to narrow a result set.
type Refiners struct {
	Equipment []Facet `json:"equipment,omitempty"`
	Buckets   []Facet `json:"buckets,omitempty"`
}

// IsEmpty reports whether no refiner is offered.
func (r Refiners) IsEmpty() bool {
	return len(r.Equipment) == 0 && len(r.Buckets) == 0
}

// BuildRefiners tallies equipment labels and muscle buckets across
// results. A facet is offered only if it covers at least 30% of the
// results, and nothing is offered below MinRefinerResults.
func BuildRefiners(results []Scored) Refiners {
	n := len(results)
	if n < MinRefinerResults {
		return Refiners{}
	}

	equipment := make(map[string]int)
	buckets := make(map[string]int)
	for _, r := range results {
		if label := r.Exercise.EquipmentLabel(); label != "" {
			equipment[label]++
		}
		for _, b := range r.Exercise.Buckets() {
			buckets[b]++
		}
	}

	minCount := (n*refinerSharePercent + 99) / 100
	return Refiners{
		Equipment: topFacets(equipment, minCount),
		Buckets:   topFacets(buckets, minCount),
	}
}

func topFacets(counts map[string]int, minCount int) []Facet {
	var facets []Facet
	for label, count := range counts {
		if count >= minCount {
			facets = append(facets, Facet{Label: label, Count: count})
		}
	}

	sort.Slice(facets, func(i, j int) bool {
		if facets[i].Count != facets[j].Count {
			return facets[i].Count > facets[j].Count
		}
		return facets[i].Label < facets[j].Label
	})

	if len(facets) > maxRefinersPerKind {
		facets = facets[:maxRefinersPerKind]
	}
	return facets
}

// FilterResults keeps results matching at least one active equipment label
// (if any) and at least one active bucket (if any).
func FilterResults(results []Scored, equipment, buckets []string) []Scored {
	if len(equipment) == 0 && len(buckets) == 0 {
		return results
	}

	out := make([]Scored, 0, len(results))
	for _, r := range results {
		if matchesRefiners(r.Exercise, equipment, buckets) {
			out = append(out, r)
		}
	}
	return out
}

func matchesRefiners(e catalog.Exercise, equipment, buckets []string) bool {
	if len(equipment) > 0 && !contains(equipment, e.EquipmentLabel()) {
		return false
	}
	if len(buckets) > 0 {
		found := false
		for _, b := range e.Buckets() {
			if contains(buckets, b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func contains(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
