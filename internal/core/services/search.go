package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driving"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

// Ensure SearchService implements the interface.
var (
	_ driving.SearchService  = (*SearchService)(nil)
	_ driving.SearchSessions = (*SearchService)(nil)
	_ driving.SearchService  = (*SearchSession)(nil)
)

// SearchService runs the search pipeline: build the query from the keyword
// taxonomy, call the provider, re-validate the results.
//
// Concurrent Search calls run independently. Callers that want a new search
// to cancel their previous one use a session from NewSession.
type SearchService struct {
	keywords driving.KeywordService
	now      func() time.Time

	mu       sync.Mutex
	provider driven.SearchProvider
	recorder driven.SearchRecorder
}

// NewSearchService creates a new search service.
// The provider may be nil; searches then fail with domain.ErrNotConfigured.
func NewSearchService(keywords driving.KeywordService, provider driven.SearchProvider) *SearchService {
	return &SearchService{
		keywords: keywords,
		provider: provider,
		now:      time.Now,
	}
}

// SetProvider replaces the search provider, e.g. after credentials change.
func (s *SearchService) SetProvider(provider driven.SearchProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = provider
}

// SetRecorder sets the recorder for search metrics.
func (s *SearchService) SetRecorder(recorder driven.SearchRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = recorder
}

// IsConfigured reports whether a provider is available.
func (s *SearchService) IsConfigured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider != nil
}

// NewSession returns a search handle with its own in-flight slot.
func (s *SearchService) NewSession() driving.SearchService {
	return &SearchSession{svc: s}
}

// Search finds today's M&A news for a company.
func (s *SearchService) Search(ctx context.Context, subject string) (*domain.SearchOutcome, error) {
	return s.search(ctx, subject, nil)
}

func (s *SearchService) search(
	ctx context.Context, subject string, session *SearchSession,
) (*domain.SearchOutcome, error) {
	logger.Section("Search Execution")

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, domain.ErrEmptySubject
	}

	s.mu.Lock()
	provider, recorder := s.provider, s.recorder
	s.mu.Unlock()
	if provider == nil {
		return nil, domain.ErrNotConfigured
	}

	var sets [][]string
	if s.keywords != nil {
		sets = domain.KeywordSets(s.keywords.List())
	}
	query, err := domain.BuildQuery(subject, sets, s.now())
	if err != nil {
		return nil, err
	}
	logger.Debug("Query: %s", query)

	searchCtx := ctx
	if session != nil {
		var done func()
		searchCtx, done = session.begin(ctx)
		defer done()
	}

	start := time.Now()
	raw, err := provider.Search(searchCtx, domain.NewProviderRequest(query))

	if errors.Is(context.Cause(searchCtx), domain.ErrSearchSuperseded) {
		logger.Debug("Search for %q superseded", subject)
		return nil, domain.ErrSearchSuperseded
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	outcome := &domain.SearchOutcome{Query: query}
	if err != nil {
		if !errors.Is(err, domain.ErrProviderFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrProviderFailed, err)
		}
		logger.Warn("Search for %q failed: %v", subject, err)
		outcome.Err = err
		outcome.Results = []domain.SearchResult{}
	} else {
		outcome.Candidates = len(raw)
		outcome.Results = domain.FilterResults(raw, query.Keywords)
		logger.Debug("Provider returned %d candidates, %d passed the keyword filter",
			outcome.Candidates, len(outcome.Results))
	}
	outcome.Duration = time.Since(start)

	if recorder != nil {
		recorder.RecordSearch(outcome.Status(), outcome.Candidates, len(outcome.Results), outcome.Duration)
	}

	return outcome, nil
}

// SearchSession is one caller's view of a SearchService. Starting a search
// on a session cancels that session's previous search, which then returns
// domain.ErrSearchSuperseded. Other sessions and plain SearchService.Search
// calls are unaffected.
type SearchSession struct {
	svc *SearchService

	mu       sync.Mutex
	inflight context.CancelCauseFunc
	seq      uint64
}

// Search finds today's M&A news for a company, superseding the session's
// in-flight search.
func (s *SearchSession) Search(ctx context.Context, subject string) (*domain.SearchOutcome, error) {
	return s.svc.search(ctx, subject, s)
}

// IsConfigured reports whether a provider is available.
func (s *SearchSession) IsConfigured() bool {
	return s.svc.IsConfigured()
}

// begin cancels the in-flight search and registers a new one.
// The returned func releases the registration.
func (s *SearchSession) begin(ctx context.Context) (context.Context, func()) {
	searchCtx, cancel := context.WithCancelCause(ctx)

	s.mu.Lock()
	if s.inflight != nil {
		s.inflight(domain.ErrSearchSuperseded)
	}
	s.seq++
	id := s.seq
	s.inflight = cancel
	s.mu.Unlock()

	return searchCtx, func() {
		s.mu.Lock()
		if s.seq == id {
			s.inflight = nil
		}
		s.mu.Unlock()
		cancel(nil)
	}
}
