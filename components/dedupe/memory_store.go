package dedupe

import (
	"context"
	"sync"
)

// MemoryStore keeps records per owner in memory.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string][]Record{}}
}

// Add appends records for owner.
func (m *MemoryStore) Add(ownerID string, records ...Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[ownerID] = append(m.records[ownerID], records...)
}

// ListRecords returns the owner's records in insertion order.
func (m *MemoryStore) ListRecords(_ context.Context, ownerID string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records[ownerID]...), nil
}

// DeleteRecords removes ids from the owner's records. Unknown ids are ignored.
func (m *MemoryStore) DeleteRecords(_ context.Context, ownerID string, ids []string) error {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[ownerID][:0]
	for _, rec := range m.records[ownerID] {
		if _, ok := drop[rec.ID]; !ok {
			kept = append(kept, rec)
		}
	}
	m.records[ownerID] = kept
	return nil
}
