package vault

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store for tests and one-shot CLI runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore returns a MemoryStore, optionally pre-filled with seed.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	data := make(map[string]string, len(seed))
	maps.Copy(data, seed)
	return &MemoryStore{data: data}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Swap(_ context.Context, key, old, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.data[key]; !ok || cur != old {
		return false, nil
	}
	s.data[key] = value
	return true, nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.data)), nil
}
