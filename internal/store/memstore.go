package store

import (
	"context"
	"sync"
)

// memStore is a map-backed Store for tests and ephemeral runs. Values are
// copied on the way in and out so callers cannot alias the stored blob.
type memStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() Store {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.blobs[key]
	if !ok {
		return nil, ErrNoValue
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (m *memStore) Save(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = cp
	return nil
}

func (m *memStore) Close(_ context.Context) error {
	return nil
}
