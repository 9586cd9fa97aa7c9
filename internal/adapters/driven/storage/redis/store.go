package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.StateStore = (*Store)(nil)

// DefaultPrefix is the key prefix used when Config.Prefix is empty.
const DefaultPrefix = "dealwatch:"

// ChangesChannel returns the notification channel for keys under prefix.
// Stores with different prefixes never see each other's changes.
func ChangesChannel(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "changes"
}

// Config holds connection parameters for a Redis store.
type Config struct {
	Addr     string
	Username string
	Password string
	DB       int

	// Prefix is prepended to every key. Empty uses DefaultPrefix.
	Prefix string
}

// Store implements driven.StateStore via rueidis.
type Store struct {
	client  rueidis.Client
	prefix  string
	channel string
}

// NewStore connects to Redis.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: redis address is required", domain.ErrInvalidInput)
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{cfg.Addr},
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to redis: %w", domain.ErrStoreUnavailable, err)
	}

	return newStore(client, cfg.Prefix), nil
}

func newStore(client rueidis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, channel: ChangesChannel(prefix)}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("%w: ping: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := s.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: timeout waiting for redis: %w", domain.ErrStoreUnavailable, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.B().Get().Key(s.prefix + key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrStoreUnavailable, key, err)
	}
	return data, nil
}

// Put stores a value and announces the change on the store's channel.
// A failed announcement is logged; the write itself has succeeded.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	cmd := s.client.B().Set().Key(s.prefix + key).Value(string(value)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrStoreUnavailable, key, err)
	}

	pub := s.client.B().Publish().Channel(s.channel).Message(key).Build()
	if err := s.client.Do(ctx, pub).Error(); err != nil {
		logger.Warn("Failed to publish change for %s: %v", key, err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() error {
	s.client.Close()
	return nil
}

// Watcher subscribes to change notifications for this store's keys.
func (s *Store) Watcher() *Watcher {
	return NewWatcher(s.client, s.channel)
}
