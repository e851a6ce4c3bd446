// Package memory provides an in-process KeyValueStore used in dev mode
// and in tests.
package memory

import (
	"context"
	"encoding/json"
	"sync"
)

// Store is a thread-safe in-memory key/value store
type Store struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		values: make(map[string]json.RawMessage),
	}
}

// Get returns the stored values for the requested keys
func (s *Store) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		if value, ok := s.values[key]; ok {
			result[key] = value
		}
	}
	return result, nil
}

// Set stores all given key/value pairs
func (s *Store) Set(ctx context.Context, values map[string]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		copied := make(json.RawMessage, len(value))
		copy(copied, value)
		s.values[key] = copied
	}
	return nil
}

// Clear removes all stored values
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]json.RawMessage)
	return nil
}
