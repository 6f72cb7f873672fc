package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khanglvm/liftsearch/internal/storage"
	"github.com/khanglvm/liftsearch/internal/text"
)

var (
	// ErrEmptyName is returned when creating an exercise with a blank name.
	ErrEmptyName = errors.New("exercise name is empty")
	// ErrDuplicateName is returned when the normalized name already exists.
	ErrDuplicateName = errors.New("exercise name already exists")
)

// userRecord is the persisted form of a User exercise.
type userRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Aliases   []string  `json:"aliases,omitempty"`
	Tags      Tags      `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStore persists User exercises under storage.KeyUserExercises.
type UserStore struct {
	storage storage.Storage

	// Now is the clock used for creation timestamps.
	Now func() time.Time
}

// NewUserStore creates a store backed by s.
func NewUserStore(s storage.Storage) *UserStore {
	return &UserStore{storage: s, Now: time.Now}
}

func (u *UserStore) load() []userRecord {
	records := []userRecord{}
	storage.LoadCollection(u.storage, storage.KeyUserExercises, &records)
	return records
}

// All returns every persisted User exercise in creation order.
func (u *UserStore) All() []Exercise {
	records := u.load()
	out := make([]Exercise, 0, len(records))
	for _, r := range records {
		out = append(out, NewUser(r.ID, r.Name, r.Aliases, r.Tags, r.CreatedAt))
	}
	return out
}

// Create persists a new User exercise. Names are checked against the
// snapshot and the stored User exercises; a blank or existing name is
// rejected.
func (u *UserStore) Create(name string, tags Tags, existing *Snapshot) (Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Exercise{}, ErrEmptyName
	}

	if existing != nil {
		if _, ok := existing.FindByName(name); ok {
			return Exercise{}, ErrDuplicateName
		}
	}

	records := u.load()
	key := text.Normalize(name)
	for _, r := range records {
		if text.Normalize(r.Name) == key {
			return Exercise{}, ErrDuplicateName
		}
	}

	record := userRecord{
		ID:        "user-" + uuid.NewString(),
		Name:      name,
		Tags:      tags,
		CreatedAt: u.Now(),
	}
	records = append(records, record)
	storage.SaveCollection(u.storage, storage.KeyUserExercises, records)

	return NewUser(record.ID, record.Name, record.Aliases, record.Tags, record.CreatedAt), nil
}

// Cleanup drops User exercises whose id is not in keep and returns how
// many were removed.
func (u *UserStore) Cleanup(keep map[string]bool) int {
	records := u.load()
	kept := records[:0]
	for _, r := range records {
		if keep[r.ID] {
			kept = append(kept, r)
		}
	}

	removed := len(records) - len(kept)
	if removed > 0 {
		storage.SaveCollection(u.storage, storage.KeyUserExercises, kept)
	}
	return removed
}
