package catalog

import (
	"github.com/khanglvm/liftsearch/internal/text"
)

// Snapshot is an immutable merged view of the System and User catalogs.
// Mutations return a new snapshot; the receiver is never modified.
type Snapshot struct {
	system    []Exercise
	user      []Exercise
	exercises []Exercise
	byID      map[string]int
	byName    map[string]int
}

// NewSnapshot merges system and user exercises into a snapshot.
func NewSnapshot(system, user []Exercise) *Snapshot {
	s := &Snapshot{
		system: append([]Exercise(nil), system...),
		user:   append([]Exercise(nil), user...),
	}
	s.exercises = Merge(s.system, s.user)
	s.index()
	return s
}

func (s *Snapshot) index() {
	s.byID = make(map[string]int, len(s.exercises))
	s.byName = make(map[string]int, len(s.exercises))
	for i, e := range s.exercises {
		s.byID[e.ID] = i
		if _, ok := s.byName[e.NormalizedName()]; !ok {
			s.byName[e.NormalizedName()] = i
		}
	}
}

// Merge combines system and user exercises, deduplicated by normalized
// name. A User exercise replaces a System one only if it carries aliases.
func Merge(system, user []Exercise) []Exercise {
	merged := make([]Exercise, 0, len(system)+len(user))
	position := make(map[string]int, len(system)+len(user))

	for _, e := range system {
		key := e.NormalizedName()
		if _, dup := position[key]; dup {
			continue
		}
		position[key] = len(merged)
		merged = append(merged, e)
	}

	for _, e := range user {
		key := e.NormalizedName()
		idx, dup := position[key]
		if !dup {
			position[key] = len(merged)
			merged = append(merged, e)
			continue
		}
		if len(e.Aliases) > 0 {
			merged[idx] = e
		}
	}

	return merged
}

// Exercises returns the merged exercises. Callers must not modify the slice.
func (s *Snapshot) Exercises() []Exercise {
	return s.exercises
}

// System returns the System exercises the snapshot was built from.
func (s *Snapshot) System() []Exercise {
	return s.system
}

// User returns the User exercises the snapshot was built from.
func (s *Snapshot) User() []Exercise {
	return s.user
}

// Len returns the number of merged exercises.
func (s *Snapshot) Len() int {
	return len(s.exercises)
}

// ByID looks up an exercise by its stable id.
func (s *Snapshot) ByID(id string) (Exercise, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return s.exercises[i], true
}

// FindByName looks up an exercise by case- and space-insensitive name.
func (s *Snapshot) FindByName(name string) (Exercise, bool) {
	i, ok := s.byName[text.Normalize(name)]
	if !ok {
		return Exercise{}, false
	}
	return s.exercises[i], true
}

// IDs returns the set of ids in the snapshot, including System entries
// shadowed by a User exercise of the same name.
func (s *Snapshot) IDs() map[string]bool {
	ids := make(map[string]bool, len(s.system)+len(s.user))
	for _, e := range s.system {
		ids[e.ID] = true
	}
	for _, e := range s.user {
		ids[e.ID] = true
	}
	return ids
}

// Add returns a new snapshot that includes e as a User exercise.
func (s *Snapshot) Add(e Exercise) *Snapshot {
	user := append(append([]Exercise(nil), s.user...), e)
	return NewSnapshot(s.system, user)
}

// WithAliases returns a new snapshot where each exercise's alias list is
// the union of its declared aliases and extra[id], deduplicated by
// normalized text.
func (s *Snapshot) WithAliases(extra map[string][]string) *Snapshot {
	if len(extra) == 0 {
		return s
	}

	out := &Snapshot{
		system:    s.system,
		user:      s.user,
		exercises: make([]Exercise, len(s.exercises)),
	}
	for i, e := range s.exercises {
		more, ok := extra[e.ID]
		if !ok {
			out.exercises[i] = e
			continue
		}
		out.exercises[i] = e.withAliases(unionAliases(e.Aliases, more))
	}
	out.index()
	return out
}

func unionAliases(declared, more []string) []string {
	out := make([]string, 0, len(declared)+len(more))
	seen := make(map[string]bool, len(declared)+len(more))
	for _, list := range [][]string{declared, more} {
		for _, a := range list {
			key := text.Normalize(a)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a)
		}
	}
	return out
}
