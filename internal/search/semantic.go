package search

import (
	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/concepts"
	"github.com/khanglvm/liftsearch/internal/text"
)

// Semantic score weights.
const (
	primaryMuscleWeight   = 3
	secondaryMuscleWeight = 1
	equipmentWeight       = 2
	attributeWeight       = 1
)

// SemanticScore rates how well an exercise fits inferred concepts: +3 per
// primary-muscle hit, +1 per secondary hit, +2 for equipment and +1 each
// for force, mechanic and category.
func SemanticScore(e catalog.Exercise, c concepts.Concepts) int {
	if c.IsEmpty() {
		return 0
	}

	score := 0
	for _, m := range c.Muscles {
		if muscleIn(m, e.Tags.PrimaryMuscles) {
			score += primaryMuscleWeight
		}
		if muscleIn(m, e.Tags.SecondaryMuscles) {
			score += secondaryMuscleWeight
		}
	}

	if label := e.EquipmentLabel(); label != "" {
		for _, eq := range c.Equipment {
			if concepts.NormalizeEquipment(eq) == label {
				score += equipmentWeight
				break
			}
		}
	}

	if sameAttribute(c.Force, e.Tags.Force) {
		score += attributeWeight
	}
	if sameAttribute(c.Mechanic, e.Tags.Mechanic) {
		score += attributeWeight
	}
	if sameAttribute(c.Category, e.Tags.Category) {
		score += attributeWeight
	}

	return score
}

// muscleIn reports whether a canonical muscle matches one of the tags.
// Tags like "upper chest" still count as chest.
func muscleIn(muscle string, tags []string) bool {
	for _, tag := range tags {
		n := text.Normalize(tag)
		if n == muscle || text.ContainsWords(n, muscle) {
			return true
		}
	}
	return false
}

func sameAttribute(inferred, tag string) bool {
	return inferred != "" && inferred == text.Normalize(tag)
}
