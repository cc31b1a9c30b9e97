// Package mock provides an in-memory BlobStore for tests.
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"

	"homebase/app/storage"
)

// Store is a map-backed BlobStore. When FailWith is set, every operation
// returns it, which lets tests exercise storage-failure paths.
type Store struct {
	mu       sync.RWMutex
	blobs    map[string][]byte
	FailWith error
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := []string{}
	for k := range s.blobs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Read(_ context.Context, key string) ([]byte, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Store) Write(_ context.Context, key string, data []byte) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}

// Len reports how many blobs are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
