package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dealwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/services"
)

// mockSearchService implements driving.SearchService for CLI tests.
type mockSearchService struct {
	outcome    *domain.SearchOutcome
	err        error
	configured bool
	subjects   []string
}

func (m *mockSearchService) Search(_ context.Context, subject string) (*domain.SearchOutcome, error) {
	m.subjects = append(m.subjects, subject)
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome != nil {
		return m.outcome, nil
	}
	return &domain.SearchOutcome{Results: []domain.SearchResult{}}, nil
}

func (m *mockSearchService) IsConfigured() bool {
	return m.configured
}

// testEnv holds the services installed by setupTestServices.
type testEnv struct {
	search   *mockSearchService
	keywords *services.KeywordService
	settings *services.SettingsService
	config   *memory.ConfigStore
}

// setupTestServices installs a mock search service plus real keyword and
// settings services on memory stores, and resets command state afterwards.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv(services.EnvAPIKey, "")
	t.Setenv(services.EnvSearchEngineID, "")

	keywords := services.NewKeywordService(memory.NewStateStore())
	_, err := keywords.Load(context.Background())
	require.NoError(t, err)

	config := memory.NewConfigStore()
	env := &testEnv{
		search:   &mockSearchService{configured: true},
		keywords: keywords,
		settings: services.NewSettingsService(config),
		config:   config,
	}

	SetServices(&Services{
		Search:   env.search,
		Keywords: env.keywords,
		Settings: env.settings,
	})
	t.Cleanup(resetCommandState)

	return env
}

// resetCommandState clears services and flag values shared across tests.
func resetCommandState() {
	SetServices(nil)
	searchJSON = false
	searchTimeout = 30 * time.Second
	keywordsJSON = false
	_ = settingsProviderCmd.Flags().Set("api-key", "")
	_ = settingsProviderCmd.Flags().Set("search-engine-id", "")
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}
