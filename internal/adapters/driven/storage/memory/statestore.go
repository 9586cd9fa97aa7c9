package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
// Values are copied on the way in and out.
type StateStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStateStore creates a new in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		values: make(map[string][]byte),
	}
}

// Get returns the value stored under key.
func (s *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return bytes.Clone(v), nil
}

// Put overwrites the value stored under key.
func (s *StateStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = bytes.Clone(value)
	return nil
}

// Close is a no-op.
func (s *StateStore) Close() error {
	return nil
}
