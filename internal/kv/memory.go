package kv

import (
	"context"
	"sync"
)

// memoryStore is a development-only in-memory document store.
// WARNING: not suitable for production — state is lost on restart.
type memoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns an in-memory Store. Exported because it doubles as
// the storage stub in tests.
func NewMemoryStore() Store {
	return &memoryStore{docs: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := make([]byte, len(value))
	copy(doc, value)
	s.docs[key] = doc
	return nil
}

func (s *memoryStore) Close() error { return nil }
