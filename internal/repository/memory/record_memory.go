package memory

import (
	"context"
	"sync"
	"time"

	"filerelay/internal/model"
	"filerelay/internal/repository"
)

// RecordMemory is the in-process fallback implementation of
// repository.RecordRepository, used when no database is configured. Records live
// in a map keyed by short id; a colliding short id overwrites the earlier record
// (last write wins, same as the short ids themselves are collision-tolerant).
// Expired entries stay in the map until SweepExpired removes them, but Find never
// returns them.
type RecordMemory struct {
	mu      sync.Mutex
	records map[int]model.TransferRecord
	ttl     time.Duration
	now     func() time.Time
}

// NewRecordMemory creates an empty in-process store with the given retention window.
func NewRecordMemory(ttl time.Duration) *RecordMemory {
	return &RecordMemory{
		records: make(map[int]model.TransferRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ repository.RecordRepository = (*RecordMemory)(nil)

// Create stores a copy of the record with CreatedAt/ExpiresAt stamped.
func (m *RecordMemory) Create(_ context.Context, rec *model.TransferRecord) (*model.TransferRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *rec
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = m.now().UTC()
	}
	stored.ExpiresAt = stored.CreatedAt.Add(m.ttl)
	m.records[stored.ShortID] = stored
	out := stored
	return &out, nil
}

// Find returns the record iff the short id exists, the hash matches and the record
// has not expired. All three misses are the same ErrRecordNotFound.
func (m *RecordMemory) Find(_ context.Context, shortID int, hash string) (*model.TransferRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[shortID]
	if !ok || rec.Hash != hash || rec.Expired(m.now()) {
		return nil, repository.ErrRecordNotFound
	}
	out := rec
	return &out, nil
}

// SweepExpired physically removes expired entries and returns the removed count.
func (m *RecordMemory) SweepExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, rec := range m.records {
		if rec.Expired(now) {
			delete(m.records, id)
			removed++
		}
	}
	return removed, nil
}

// Stats returns the count and total size of every entry still in the map,
// including expired ones not yet swept.
func (m *RecordMemory) Stats(_ context.Context) (*model.RecordStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := &model.RecordStats{Count: len(m.records)}
	for _, rec := range m.records {
		st.TotalSize += rec.Size
	}
	return st, nil
}
