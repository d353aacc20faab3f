package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
)

// Ensure PropertyStore implements the interface.
var _ driven.PropertyStore = (*PropertyStore)(nil)

// PropertyStore is an in-memory implementation of driven.PropertyStore.
type PropertyStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewPropertyStore creates a new in-memory property store.
func NewPropertyStore() *PropertyStore {
	return &PropertyStore{
		values: make(map[string]string),
	}
}

// SetProperty stores value under key.
func (s *PropertyStore) SetProperty(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// GetProperty returns the value stored under key.
func (s *PropertyStore) GetProperty(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok, nil
}

// DeleteProperty removes key.
func (s *PropertyStore) DeleteProperty(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Close is a no-op.
func (s *PropertyStore) Close() error {
	return nil
}
