package kv

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation. It is safe for concurrent
// use and is the default backend in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	fault  error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fault != nil {
		return "", s.fault
	}

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fault != nil {
		return s.fault
	}

	s.values[key] = value
	return nil
}

// Remove deletes the value stored under key.
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fault != nil {
		return s.fault
	}

	delete(s.values, key)
	return nil
}

// SetFault makes every subsequent operation fail with the given error until
// cleared with SetFault(nil). Used by tests to simulate storage outages.
func (s *MemoryStore) SetFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = err
}

// Len reports the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
