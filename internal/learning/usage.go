package learning

import (
	"time"

	"github.com/khanglvm/liftsearch/internal/storage"
)

// UsageRecord is the recency and frequency signal of one exercise.
type UsageRecord struct {
	Count         int       `json:"count"`
	LastUsed      time.Time `json:"lastUsed"`
	LastContextID string    `json:"lastContextId,omitempty"`
}

// UsageStore persists usage records under storage.KeyUsage.
// Counts only ever grow.
type UsageStore struct {
	storage storage.Storage
}

// NewUsageStore creates a usage store backed by s.
func NewUsageStore(s storage.Storage) *UsageStore {
	return &UsageStore{storage: s}
}

// All returns every usage record keyed by exercise id.
func (u *UsageStore) All() map[string]UsageRecord {
	records := map[string]UsageRecord{}
	storage.LoadCollection(u.storage, storage.KeyUsage, &records)
	if records == nil {
		records = map[string]UsageRecord{}
	}
	return records
}

// Get returns the usage record of one exercise.
func (u *UsageStore) Get(exerciseID string) (UsageRecord, bool) {
	r, ok := u.All()[exerciseID]
	return r, ok
}

// Record counts one use of exerciseID at time at. A non-empty contextID
// becomes the last context.
func (u *UsageStore) Record(exerciseID, contextID string, at time.Time) UsageRecord {
	records := u.All()

	r := records[exerciseID]
	r.Count++
	if at.After(r.LastUsed) {
		r.LastUsed = at
	}
	if contextID != "" {
		r.LastContextID = contextID
	}
	records[exerciseID] = r

	storage.SaveCollection(u.storage, storage.KeyUsage, records)
	return r
}

// Cleanup removes records of exercises not in existing.
func (u *UsageStore) Cleanup(existing map[string]bool) int {
	records := u.All()
	removed := 0
	for id := range records {
		if !existing[id] {
			delete(records, id)
			removed++
		}
	}
	if removed > 0 {
		storage.SaveCollection(u.storage, storage.KeyUsage, records)
	}
	return removed
}
