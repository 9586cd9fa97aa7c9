package driving

import (
	"context"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// KeywordService manages the keyword taxonomy.
//
// Mutators return the collection as it stands after the call. A mutation that
// changes nothing (blank input, unknown category, duplicate keyword) returns
// the current collection without writing.
type KeywordService interface {
	// Load reads the persisted collection, falling back to the defaults when
	// the entry is missing or invalid. A store read failure is returned.
	Load(ctx context.Context) ([]domain.KeywordCategory, error)

	// Save overwrites the persisted collection and makes it current.
	Save(ctx context.Context, cats []domain.KeywordCategory) error

	// List returns a copy of the current collection.
	List() []domain.KeywordCategory

	// AddKeyword adds a keyword to a category.
	AddKeyword(ctx context.Context, categoryID, keyword string) ([]domain.KeywordCategory, error)

	// RemoveKeyword removes a keyword from a category.
	RemoveKeyword(ctx context.Context, categoryID, keyword string) ([]domain.KeywordCategory, error)

	// AddCategory appends a new empty category with a fresh ID.
	AddCategory(ctx context.Context, name string) ([]domain.KeywordCategory, error)

	// RemoveCategory deletes a category.
	RemoveCategory(ctx context.Context, categoryID string) ([]domain.KeywordCategory, error)

	// Reset restores the default collection.
	Reset(ctx context.Context) ([]domain.KeywordCategory, error)
}
