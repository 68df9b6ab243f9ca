package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// InMemorySettingsStore provides a concurrency-safe default store.
type InMemorySettingsStore struct {
	mu   sync.RWMutex
	data map[SettingsKey]SettingsBlob
}

// NewInMemorySettingsStore creates an empty settings store.
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		data: make(map[SettingsKey]SettingsBlob),
	}
}

// Get returns the stored blob for key.
func (s *InMemorySettingsStore) Get(_ context.Context, key SettingsKey) (SettingsBlob, bool, error) {
	if key.OwnerID == "" {
		return nil, false, fmt.Errorf("settings store requires owner id")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append(SettingsBlob(nil), blob...), true, nil
}

// Upsert stores blob for key, replacing any previous record.
func (s *InMemorySettingsStore) Upsert(_ context.Context, key SettingsKey, blob SettingsBlob) error {
	if key.OwnerID == "" {
		return fmt.Errorf("settings store requires owner id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append(SettingsBlob(nil), blob...)
	return nil
}

// Len returns the number of stored records.
func (s *InMemorySettingsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
