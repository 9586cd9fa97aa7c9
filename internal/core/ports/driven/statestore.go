package driven

import "context"

// StateStore is a single-namespace key-value store for small persisted
// entries. The keyword collection is stored as one JSON entry.
type StateStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases resources.
	Close() error
}
