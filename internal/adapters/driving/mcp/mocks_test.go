package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dealwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/services"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	outcome *domain.SearchOutcome
	err     error
	subject string
}

func (m *mockSearchService) Search(_ context.Context, subject string) (*domain.SearchOutcome, error) {
	m.subject = subject
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome == nil {
		return &domain.SearchOutcome{Results: []domain.SearchResult{}}, nil
	}
	return m.outcome, nil
}

func (m *mockSearchService) IsConfigured() bool {
	return true
}

// newKeywordService returns a loaded keyword service on a memory store.
func newKeywordService(t *testing.T) *services.KeywordService {
	t.Helper()
	svc := services.NewKeywordService(memory.NewStateStore())
	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	return svc
}
