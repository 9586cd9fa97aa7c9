package driving

import (
	"context"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// SearchService provides M&A news search to external actors.
type SearchService interface {
	// Search finds today's M&A news for a company.
	//
	// Returns domain.ErrEmptySubject for a blank subject,
	// domain.ErrNotConfigured when no provider is set up and
	// domain.ErrSearchSuperseded when a newer search on the same session
	// cancelled this one.
	// A provider failure is not returned as an error; it is reported in
	// the outcome's Err field with no results.
	Search(ctx context.Context, subject string) (*domain.SearchOutcome, error)

	// IsConfigured reports whether a provider is available.
	IsConfigured() bool
}

// SearchSessions is implemented by search services that hand out
// per-caller sessions. Within a session a new search cancels the previous
// one; searches on different sessions never cancel each other.
type SearchSessions interface {
	NewSession() SearchService
}
