// Package cli provides the cobra command tree for dealwatch.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dealwatch/internal/core/ports/driving"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

var (
	version = "dev"
	verbose bool
)

// Services set by SetServices or the bootstrap.
var (
	searchService   driving.SearchService
	keywordService  driving.KeywordService
	settingsService driving.SettingsService
	hooks           = &Runtime{}
)

// Services holds what the commands need.
type Services struct {
	Search   driving.SearchService
	Keywords driving.KeywordService
	Settings driving.SettingsService
	Runtime  Runtime
}

// Runtime holds optional hooks for long-running commands.
type Runtime struct {
	// Watch follows external keyword changes until ctx is done.
	Watch func(ctx context.Context) error

	// Metrics serves the Prometheus exposition for `serve`.
	Metrics http.Handler

	// Middleware wraps the HTTP API, e.g. to record request metrics.
	Middleware func(http.Handler) http.Handler
}

// Bootstrap opens stores and builds services once flags are parsed.
// The returned cleanup runs when the command finishes.
type Bootstrap func(ctx context.Context) (*Services, func(), error)

var (
	bootstrap Bootstrap
	cleanup   func()
)

// annotationNoServices marks commands that run without the bootstrap.
const annotationNoServices = "noServices"

var rootCmd = &cobra.Command{
	Use:   "dealwatch",
	Short: "Find today's M&A news for a company",
	Long: `dealwatch searches the last day of news for merger and acquisition
coverage of a company.

The query is built from the company name plus a user-editable keyword
taxonomy, sent to Google Custom Search and re-checked against the keywords
before results are shown.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetVersion sets the version reported by `dealwatch version`.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// SetBootstrap registers the function that builds services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly. Tests use this instead of a
// bootstrap.
func SetServices(s *Services) {
	if s == nil {
		searchService, keywordService, settingsService = nil, nil, nil
		hooks = &Runtime{}
		return
	}
	searchService = s.Search
	keywordService = s.Keywords
	settingsService = s.Settings
	rt := s.Runtime
	hooks = &rt
}

// Execute runs the root command.
func Execute() error {
	defer runCleanup()
	return rootCmd.Execute()
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[annotationNoServices] != "" {
		return nil
	}

	services, done, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = done
	return nil
}

func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// Errors reported when a command runs without its service.
var (
	errSearchUnavailable   = errors.New("search service not configured")
	errKeywordsUnavailable = errors.New("keyword service not configured")
	errSettingsUnavailable = errors.New("settings service not configured")
)
