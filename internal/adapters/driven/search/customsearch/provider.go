package customsearch

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.SearchProvider = (*Provider)(nil)

// Config holds provider credentials and throttling.
type Config struct {
	// APIKey is the Custom Search API key.
	APIKey string

	// SearchEngineID is the programmable search engine id (cx).
	SearchEngineID string

	// Endpoint overrides the API base URL. Empty uses Google's.
	Endpoint string

	// RequestsPerSecond and Burst configure the throttle.
	RequestsPerSecond float64
	Burst             int
}

// Provider queries Google Custom Search.
type Provider struct {
	svc     *customsearch.Service
	cx      string
	limiter *RateLimiter
}

// New creates a provider. Both secrets are required.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.APIKey == "" || cfg.SearchEngineID == "" {
		return nil, domain.ErrNotConfigured
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create custom search client: %w", err)
	}

	return &Provider{
		svc:     svc,
		cx:      cfg.SearchEngineID,
		limiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// Search sends one query and maps the returned items.
func (p *Provider) Search(ctx context.Context, req domain.ProviderRequest) ([]domain.RawResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := p.svc.Cse.List().Context(ctx).Cx(p.cx).Q(req.Query)
	if req.Sort != "" {
		call = call.Sort(req.Sort.String())
	}
	if req.MaxResults > 0 {
		call = call.Num(int64(req.MaxResults))
	}
	if req.Recency != "" {
		call = call.DateRestrict(req.Recency.String())
	}

	logger.Debug("Custom Search request: q=%q sort=%s num=%d dateRestrict=%s",
		req.Query, req.Sort, req.MaxResults, req.Recency)

	res, err := call.Do()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if IsRateLimited(err) {
			p.limiter.RecordRateLimitError(RetryAfter(err))
		}
		return nil, WrapError(err)
	}

	results := make([]domain.RawResult, 0, len(res.Items))
	for _, item := range res.Items {
		if item == nil {
			continue
		}
		results = append(results, toRawResult(item))
	}
	logger.Debug("Custom Search returned %d items", len(results))
	return results, nil
}

func toRawResult(item *customsearch.Result) domain.RawResult {
	pm := parsePagemap(item.Pagemap)
	return domain.RawResult{
		Title:         item.Title,
		Link:          item.Link,
		Snippet:       item.Snippet,
		SourceTitle:   pm.SiteName,
		CSEImage:      pm.CSEImage,
		OGImage:       pm.OGImage,
		PublishedTime: pm.PublishedTime,
	}
}
