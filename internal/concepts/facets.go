package concepts

import (
	"strings"

	"github.com/khanglvm/liftsearch/internal/text"
)

// NormalizeEquipment maps a raw catalog equipment string to a refiner label.
func NormalizeEquipment(raw string) string {
	n := text.Normalize(raw)
	if n == "" {
		return ""
	}
	if label, ok := equipmentLabels[n]; ok {
		return label
	}
	switch {
	case strings.Contains(n, "machine"):
		return "machine"
	case strings.Contains(n, "cable"):
		return "cable"
	case strings.Contains(n, "band"):
		return "band"
	case strings.Contains(n, "dumbbell"):
		return "dumbbell"
	case strings.Contains(n, "barbell"):
		return "barbell"
	}
	return n
}

// BucketFor returns the muscle bucket for a muscle or body part, or "".
func BucketFor(muscle string) string {
	return bucketOfMuscle[text.Normalize(muscle)]
}

// BucketHint returns the bucket a query token names, or "".
func BucketHint(token string) string {
	t := text.Normalize(token)
	if b, ok := bucketHints[t]; ok {
		return b
	}
	for _, syn := range muscleSynonyms {
		if syn.term == t {
			return BucketFor(syn.canonical)
		}
	}
	return ""
}

// EquipmentHint returns the equipment label a query token names, or "".
func EquipmentHint(token string) string {
	t := text.Normalize(token)
	for _, syn := range equipmentSynonyms {
		if syn.term == t {
			return NormalizeEquipment(syn.canonical)
		}
	}
	return ""
}

// IsBucketOrEquipmentTerm reports whether a single token names a muscle
// bucket, a muscle or a piece of equipment.
func IsBucketOrEquipmentTerm(token string) bool {
	return BucketHint(token) != "" || EquipmentHint(token) != ""
}
