package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driving"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

// Ensure KeywordService implements the interface.
var _ driving.KeywordService = (*KeywordService)(nil)

// KeywordsKey is the state store key holding the JSON keyword collection.
const KeywordsKey = "keywordCategories"

// Keyword mutation names reported to the recorder.
const (
	opAddKeyword     = "add_keyword"
	opRemoveKeyword  = "remove_keyword"
	opAddCategory    = "add_category"
	opRemoveCategory = "remove_category"
	opReset          = "reset"
	opSave           = "save"
)

// KeywordService owns the current keyword collection and keeps it in sync
// with the state store. Every change is written in full before it becomes
// current.
type KeywordService struct {
	mu       sync.Mutex
	store    driven.StateStore
	recorder driven.SearchRecorder
	current  []domain.KeywordCategory
	newID    func() string

	// readErr holds the store failure from the last Load. While set,
	// mutations re-read the store first so the defaults never overwrite an
	// entry that could not be read.
	readErr error
}

// NewKeywordService creates a keyword service holding the default
// collection. Call Load to read the persisted one.
func NewKeywordService(store driven.StateStore) *KeywordService {
	return &KeywordService{
		store:   store,
		current: domain.DefaultCategories(),
		newID:   uuid.NewString,
	}
}

// SetRecorder sets the recorder for mutation metrics.
func (s *KeywordService) SetRecorder(recorder driven.SearchRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = recorder
}

// Load reads the persisted collection and makes it current.
// A missing entry yields the defaults. An unparseable or invalid entry is
// logged as a warning and also yields the defaults. A store read failure is
// returned and leaves the current collection unchanged.
func (s *KeywordService) Load(ctx context.Context) ([]domain.KeywordCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.read(ctx)
	s.readErr = err
	if err != nil {
		return nil, err
	}
	s.current = cats
	return domain.CloneCategories(s.current), nil
}

// read returns the stored collection or the defaults (caller must hold lock).
func (s *KeywordService) read(ctx context.Context) ([]domain.KeywordCategory, error) {
	data, err := s.fetch(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("No stored keywords, using defaults")
		return domain.DefaultCategories(), nil
	case err != nil:
		return nil, fmt.Errorf("read keywords: %w", err)
	}

	cats, err := parseCategories(data)
	if err != nil {
		logger.Warn("Stored keywords unusable, using defaults: %v", err)
		return domain.DefaultCategories(), nil
	}
	return cats, nil
}

// decode reads and validates the stored entry.
func (s *KeywordService) decode(ctx context.Context) ([]domain.KeywordCategory, error) {
	data, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return parseCategories(data)
}

func (s *KeywordService) fetch(ctx context.Context) ([]byte, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.Get(ctx, KeywordsKey)
}

// parseCategories decodes a stored JSON collection and validates it.
func parseCategories(data []byte) ([]domain.KeywordCategory, error) {
	var cats []domain.KeywordCategory
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("parse %s: %w", KeywordsKey, err)
	}
	if cats == nil {
		return nil, fmt.Errorf("%w: %s is not an array", domain.ErrInvalidInput, KeywordsKey)
	}
	for i := range cats {
		if cats[i].Keywords == nil {
			cats[i].Keywords = []string{}
		}
	}
	if err := domain.ValidateCategories(cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Save overwrites the persisted collection and makes it current.
func (s *KeywordService) Save(ctx context.Context, cats []domain.KeywordCategory) error {
	if err := domain.ValidateCategories(cats); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.CloneCategories(cats)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.current, s.readErr = next, nil
	s.record(opSave)
	return nil
}

// persist writes the full collection (caller must hold lock).
func (s *KeywordService) persist(ctx context.Context, cats []domain.KeywordCategory) error {
	if s.store == nil {
		return nil
	}
	if cats == nil {
		cats = []domain.KeywordCategory{}
	}
	data, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	if err := s.store.Put(ctx, KeywordsKey, data); err != nil {
		return fmt.Errorf("save keywords: %w", err)
	}
	return nil
}

// List returns a copy of the current collection.
func (s *KeywordService) List() []domain.KeywordCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneCategories(s.current)
}

// AddKeyword adds a keyword to a category.
func (s *KeywordService) AddKeyword(ctx context.Context, categoryID, keyword string) ([]domain.KeywordCategory, error) {
	return s.mutate(ctx, opAddKeyword, func(cats []domain.KeywordCategory) []domain.KeywordCategory {
		return domain.AddKeyword(cats, categoryID, keyword)
	})
}

// RemoveKeyword removes a keyword from a category.
func (s *KeywordService) RemoveKeyword(ctx context.Context, categoryID, keyword string) ([]domain.KeywordCategory, error) {
	return s.mutate(ctx, opRemoveKeyword, func(cats []domain.KeywordCategory) []domain.KeywordCategory {
		return domain.RemoveKeyword(cats, categoryID, keyword)
	})
}

// AddCategory appends a new empty category with a fresh ID.
func (s *KeywordService) AddCategory(ctx context.Context, name string) ([]domain.KeywordCategory, error) {
	return s.mutate(ctx, opAddCategory, func(cats []domain.KeywordCategory) []domain.KeywordCategory {
		return domain.AddCategory(cats, name, s.newID())
	})
}

// RemoveCategory deletes a category.
func (s *KeywordService) RemoveCategory(ctx context.Context, categoryID string) ([]domain.KeywordCategory, error) {
	return s.mutate(ctx, opRemoveCategory, func(cats []domain.KeywordCategory) []domain.KeywordCategory {
		return domain.RemoveCategory(cats, categoryID)
	})
}

// Reset restores the default collection.
func (s *KeywordService) Reset(ctx context.Context) ([]domain.KeywordCategory, error) {
	return s.mutate(ctx, opReset, func([]domain.KeywordCategory) []domain.KeywordCategory {
		return domain.DefaultCategories()
	})
}

// mutate applies fn to the current collection. An unchanged result is not
// written. A failed write leaves the current collection untouched.
func (s *KeywordService) mutate(
	ctx context.Context, op string, fn func([]domain.KeywordCategory) []domain.KeywordCategory,
) ([]domain.KeywordCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readErr != nil {
		cats, err := s.read(ctx)
		if err != nil {
			return domain.CloneCategories(s.current), err
		}
		s.current, s.readErr = cats, nil
	}

	next := fn(s.current)
	if domain.CategoriesEqual(next, s.current) {
		logger.Debug("Keyword %s changed nothing", op)
		return domain.CloneCategories(s.current), nil
	}

	if err := s.persist(ctx, next); err != nil {
		return domain.CloneCategories(s.current), err
	}

	s.current = next
	s.record(op)
	logger.Debug("Keyword %s persisted (%d categories)", op, len(next))
	return domain.CloneCategories(s.current), nil
}

func (s *KeywordService) record(op string) {
	if s.recorder != nil {
		s.recorder.RecordKeywordChange(op)
	}
}

// Watch reloads the collection whenever watcher reports an external change.
// It blocks until ctx is done or the watcher is closed.
func (s *KeywordService) Watch(ctx context.Context, watcher driven.ChangeWatcher) error {
	if watcher == nil {
		return nil
	}
	changes := watcher.Changes()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			s.reload(ctx)
		}
	}
}

// reload replaces the current collection with a valid stored one.
// Missing or invalid entries are ignored so a half-written file from another
// process does not wipe the in-memory state.
func (s *KeywordService) reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.decode(ctx)
	if err != nil {
		logger.Debug("Ignoring keyword change notification: %v", err)
		return
	}
	s.readErr = nil
	if domain.CategoriesEqual(cats, s.current) {
		return
	}
	s.current = cats
	logger.Info("Reloaded keywords after external change (%d categories)", len(cats))
}
