package driven

import (
	"context"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// SearchProvider sends one query to an external web search API.
//
// Implementations make exactly one outbound request per call, with no retry
// and no pagination. Failures are returned as errors wrapping
// domain.ErrProviderFailed, and additionally domain.ErrRateLimited or
// domain.ErrUnauthorized where the cause is known.
type SearchProvider interface {
	Search(ctx context.Context, req domain.ProviderRequest) ([]domain.RawResult, error)
}
