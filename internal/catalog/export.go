package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
)

// Encode writes exercises in the document shape the Loader reads, so an
// export can be used as a catalog source. JSONL writes one object per
// line.
func Encode(w io.Writer, exercises []Exercise, format string) error {
	raws := make([]rawExercise, len(exercises))
	for i, e := range exercises {
		raws[i] = toRaw(e)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(raws); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, raw := range raws {
			if err := enc.Encode(raw); err != nil {
				return fmt.Errorf("failed to encode exercise %s: %w", raw.ID, err)
			}
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(raws); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format: %s (use json, jsonl or yaml)", format)
	}
	return nil
}

func toRaw(e Exercise) rawExercise {
	raw := rawExercise{
		ID:               e.ID,
		Name:             e.Name,
		PrimaryMuscles:   e.Tags.PrimaryMuscles,
		SecondaryMuscles: e.Tags.SecondaryMuscles,
		Equipment:        e.Tags.Equipment,
		Category:         e.Tags.Category,
		Aliases:          e.Aliases,
		Force:            e.Tags.Force,
		Mechanic:         e.Tags.Mechanic,
		Level:            e.Tags.Level,
		Anchor:           e.Anchor,
	}
	raw.Target, _ = e.Target()
	raw.BodyPart, _ = e.BodyPart()
	raw.Instructions, _ = e.Instructions()
	return raw
}
