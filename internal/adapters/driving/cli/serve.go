package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dealwatch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	Long: `Serve search and keyword management over HTTP for browser front-ends.

Routes:
  GET    /api/search?q=company
  GET    /api/categories
  POST   /api/categories                      {"name": "..."}
  POST   /api/categories/reset
  DELETE /api/categories/{id}
  POST   /api/categories/{id}/keywords        {"keyword": "..."}
  DELETE /api/categories/{id}/keywords/{keyword}
  GET    /healthz
  GET    /metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from settings, :8080)")
	serveCmd.Flags().String("allow-origin", "", "value for Access-Control-Allow-Origin (empty disables CORS)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil || keywordService == nil {
		return errSearchUnavailable
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	if addr == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			addr = settings.Server.Addr
		}
	}
	if addr == "" {
		addr = ":8080"
	}
	origin, err := cmd.Flags().GetString("allow-origin")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWatch(ctx)

	server := httpapi.NewServer(
		httpapi.Ports{Search: searchService, Keywords: keywordService},
		httpapi.Options{
			Logger:      logger.L(),
			Metrics:     hooks.Metrics,
			Middleware:  hooks.Middleware,
			AllowOrigin: origin,
		},
	)

	cmd.Printf("dealwatch API listening on %s\n", addr)
	return server.ListenAndServe(ctx, addr)
}

// startWatch follows external keyword changes until ctx is done.
func startWatch(ctx context.Context) {
	if hooks.Watch == nil {
		return
	}
	go func() {
		if err := hooks.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Keyword watcher stopped: %v", err)
		}
	}()
}
