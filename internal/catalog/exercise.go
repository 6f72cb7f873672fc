/*
Package catalog holds the exercise catalog: the entity being searched.

Exercises come in two variants. System exercises are shipped in an external
catalog and are immutable for the session; User exercises are created
locally and persisted immediately. A Snapshot is an immutable merged view
of both, rebuilt whenever a User exercise is added.
*/
package catalog

import (
	"encoding/json"
	"time"

	"github.com/khanglvm/liftsearch/internal/concepts"
	"github.com/khanglvm/liftsearch/internal/text"
)

// Kind distinguishes the exercise variants.
type Kind int

const (
	// KindSystem is a shipped, immutable catalog entry.
	KindSystem Kind = iota
	// KindUser is an exercise created locally by the user.
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindUser:
		return "user"
	}
	return "unknown"
}

// Tags are the optional descriptive attributes shared by both variants.
type Tags struct {
	PrimaryMuscles   []string `json:"primaryMuscles,omitempty"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Equipment        string   `json:"equipment,omitempty"`
	Force            string   `json:"force,omitempty"`
	Mechanic         string   `json:"mechanic,omitempty"`
	Category         string   `json:"category,omitempty"`
	Level            string   `json:"level,omitempty"`
}

// Exercise is the canonical searchable entity.
type Exercise struct {
	ID      string
	Name    string
	Aliases []string
	Tags    Tags

	// Anchor marks the exercise as the canonical default for its base name.
	Anchor bool

	Kind Kind

	system *systemDetails
	user   *userDetails
}

// systemDetails holds the fields only shipped catalog entries carry.
type systemDetails struct {
	Target       string
	BodyPart     string
	Instructions []string
}

// userDetails holds the fields only locally created exercises carry.
type userDetails struct {
	CreatedAt time.Time
}

// SystemFields are the variant-specific inputs of NewSystem.
type SystemFields struct {
	Target       string
	BodyPart     string
	Instructions []string
}

// NewSystem builds a System exercise.
func NewSystem(id, name string, aliases []string, tags Tags, anchor bool, fields SystemFields) Exercise {
	return Exercise{
		ID:      id,
		Name:    name,
		Aliases: aliases,
		Tags:    tags,
		Anchor:  anchor,
		Kind:    KindSystem,
		system: &systemDetails{
			Target:       fields.Target,
			BodyPart:     fields.BodyPart,
			Instructions: fields.Instructions,
		},
	}
}

// NewUser builds a User exercise.
func NewUser(id, name string, aliases []string, tags Tags, createdAt time.Time) Exercise {
	return Exercise{
		ID:      id,
		Name:    name,
		Aliases: aliases,
		Tags:    tags,
		Kind:    KindUser,
		user:    &userDetails{CreatedAt: createdAt},
	}
}

// Target returns the target muscle of a System exercise.
func (e Exercise) Target() (string, bool) {
	switch e.Kind {
	case KindSystem:
		if e.system != nil && e.system.Target != "" {
			return e.system.Target, true
		}
	case KindUser:
	}
	return "", false
}

// BodyPart returns the body part of a System exercise.
func (e Exercise) BodyPart() (string, bool) {
	switch e.Kind {
	case KindSystem:
		if e.system != nil && e.system.BodyPart != "" {
			return e.system.BodyPart, true
		}
	case KindUser:
	}
	return "", false
}

// Instructions returns the instruction steps of a System exercise.
func (e Exercise) Instructions() ([]string, bool) {
	switch e.Kind {
	case KindSystem:
		if e.system != nil && len(e.system.Instructions) > 0 {
			return e.system.Instructions, true
		}
	case KindUser:
	}
	return nil, false
}

// CreatedAt returns the creation time of a User exercise.
func (e Exercise) CreatedAt() (time.Time, bool) {
	switch e.Kind {
	case KindUser:
		if e.user != nil {
			return e.user.CreatedAt, true
		}
	case KindSystem:
	}
	return time.Time{}, false
}

// NormalizedName is the deduplication key for the exercise.
func (e Exercise) NormalizedName() string {
	return text.Normalize(e.Name)
}

// Words returns the tokens of the normalized name.
func (e Exercise) Words() []string {
	return text.Tokenize(e.Name)
}

// EquipmentLabel is the refiner label of the exercise equipment.
func (e Exercise) EquipmentLabel() string {
	return concepts.NormalizeEquipment(e.Tags.Equipment)
}

// Buckets returns the muscle buckets the exercise belongs to, derived from
// primary muscles, target and body part, in that order.
func (e Exercise) Buckets() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(muscle string) {
		b := concepts.BucketFor(muscle)
		if b != "" && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	for _, m := range e.Tags.PrimaryMuscles {
		add(m)
	}
	if target, ok := e.Target(); ok {
		add(target)
	}
	if part, ok := e.BodyPart(); ok {
		add(part)
	}
	return out
}

// withAliases returns a copy of e whose alias list is replaced.
func (e Exercise) withAliases(aliases []string) Exercise {
	e.Aliases = aliases
	return e
}

// exerciseJSON is the wire view of an exercise.
type exerciseJSON struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Aliases      []string  `json:"aliases,omitempty"`
	Tags         Tags      `json:"tags"`
	Anchor       bool      `json:"anchor,omitempty"`
	Target       string    `json:"target,omitempty"`
	BodyPart     string    `json:"bodyPart,omitempty"`
	Instructions []string  `json:"instructions,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}

// MarshalJSON renders the variant-specific fields only when present.
func (e Exercise) MarshalJSON() ([]byte, error) {
	out := exerciseJSON{
		ID:      e.ID,
		Name:    e.Name,
		Kind:    e.Kind.String(),
		Aliases: e.Aliases,
		Tags:    e.Tags,
		Anchor:  e.Anchor,
	}
	out.Target, _ = e.Target()
	out.BodyPart, _ = e.BodyPart()
	out.Instructions, _ = e.Instructions()
	out.CreatedAt, _ = e.CreatedAt()
	return json.Marshal(out)
}
