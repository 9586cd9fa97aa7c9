// Command dealwatch searches today's M&A news for a company.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/dealwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dealwatch/internal/adapters/driven/metrics"
	"github.com/custodia-labs/dealwatch/internal/adapters/driven/search/customsearch"
	"github.com/custodia-labs/dealwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dealwatch/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/dealwatch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dealwatch/internal/adapters/driven/watch/fswatch"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/cli"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
	"github.com/custodia-labs/dealwatch/internal/core/services"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// redisReadyTimeout bounds the wait for a configured Redis backend.
const redisReadyTimeout = 5 * time.Second

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap is the composition root: settings, keyword store, provider,
// metrics and services.
func bootstrap(ctx context.Context) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("read settings: %w", err)
	}

	store, watcher, closeStore, err := openStateStore(ctx, settings.Storage)
	if err != nil {
		return nil, nil, err
	}

	keywordService := services.NewKeywordService(store)
	if _, err := keywordService.Load(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("load keywords: %w", err)
	}

	provider, err := customsearch.New(ctx, customsearch.Config{
		APIKey:            settings.Provider.APIKey,
		SearchEngineID:    settings.Provider.SearchEngineID,
		Endpoint:          settings.Provider.Endpoint,
		RequestsPerSecond: settings.Provider.RequestsPerSecond,
	})
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		logger.Debug("Search provider not configured")
	case err != nil:
		closeStore()
		return nil, nil, err
	}

	searchService := services.NewSearchService(keywordService, nil)
	if provider != nil {
		searchService.SetProvider(provider)
	}

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	searchService.SetRecorder(recorder)
	keywordService.SetRecorder(recorder)

	return &cli.Services{
		Search:   searchService,
		Keywords: keywordService,
		Settings: settingsService,
		Runtime: cli.Runtime{
			Watch: func(ctx context.Context) error {
				if watcher == nil {
					return nil
				}
				return keywordService.Watch(ctx, watcher)
			},
			Metrics:    promhttp.Handler(),
			Middleware: recorder.Middleware(),
		},
	}, closeStore, nil
}

// openStateStore opens the configured backend and, where the backend
// supports it, a watcher for changes made by other processes.
func openStateStore(
	ctx context.Context, cfg domain.StorageSettings,
) (driven.StateStore, driven.ChangeWatcher, func(), error) {
	switch cfg.Backend {
	case domain.StorageBackendRedis:
		store, err := redis.NewStore(redis.Config{Addr: cfg.RedisAddr})
		if err != nil {
			return nil, nil, nil, err
		}
		if err := store.WaitForReady(ctx, redisReadyTimeout); err != nil {
			store.Close()
			return nil, nil, nil, err
		}
		watcher := store.Watcher()
		return store, watcher, func() {
			watcher.Close()
			store.Close()
		}, nil

	case domain.StorageBackendMemory:
		store := memory.NewStateStore()
		return store, nil, func() { store.Close() }, nil

	default:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open keyword store: %w", err)
		}
		watcher, err := fswatch.New(store.Path(), 0)
		if err != nil {
			logger.Warn("Keyword changes from other processes will not be picked up: %v", err)
			return store.StateStore(), nil, func() { store.Close() }, nil
		}
		return store.StateStore(), watcher, func() {
			watcher.Close()
			store.Close()
		}, nil
	}
}
