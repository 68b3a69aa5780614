package profilecache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type cacheKey struct {
	owner    uuid.UUID
	language string
}

// MemoryStore is an in-memory Store for tests and single-process setups.
// Entries are kept as JSON encodings so callers never share mutable state
// with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[cacheKey][]byte
}

// NewMemoryStore creates an empty in-memory profile cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[cacheKey][]byte)}
}

func (m *MemoryStore) Put(ctx context.Context, e *Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	m.mu.Lock()
	m.entries[cacheKey{owner: e.OwnerID, language: e.Language}] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, ownerID uuid.UUID, language string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	data, ok := m.entries[cacheKey{owner: ownerID, language: language}]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &e, nil
}
