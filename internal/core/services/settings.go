package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyProviderAPIKey   = "provider.api_key"
	keyProviderEngineID = "provider.search_engine_id"
	keyProviderEndpoint = "provider.endpoint"
	keyProviderRPS      = "provider.requests_per_second"
	keyStorageBackend   = "storage.backend"
	keyStorageDataDir   = "storage.data_dir"
	keyStorageRedisAddr = "storage.redis_addr"
	keyServerAddr       = "server.addr"
)

// Environment variables that override the provider secrets in the file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvAPIKey         = "DEALWATCH_API_KEY"
	EnvSearchEngineID = "DEALWATCH_SEARCH_ENGINE_ID"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Provider: domain.ProviderSettings{
			APIKey:            s.secret(EnvAPIKey, keyProviderAPIKey),
			SearchEngineID:    s.secret(EnvSearchEngineID, keyProviderEngineID),
			Endpoint:          s.configStore.GetString(keyProviderEndpoint),
			RequestsPerSecond: s.getFloat(keyProviderRPS, defaults.Provider.RequestsPerSecond),
		},
		Storage: domain.StorageSettings{
			Backend:   s.getBackend(defaults.Storage.Backend),
			DataDir:   s.configStore.GetString(keyStorageDataDir), // Empty means ~/.dealwatch/data
			RedisAddr: s.getString(keyStorageRedisAddr, defaults.Storage.RedisAddr),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
	}

	return settings, nil
}

// Save persists application settings.
// Secrets are only written when non-empty so that values supplied through
// the environment are not copied into the file by accident.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings.Provider.APIKey != "" && s.getenv(EnvAPIKey) == "" {
		if err := s.configStore.Set(keyProviderAPIKey, settings.Provider.APIKey); err != nil {
			return fmt.Errorf("save provider api_key: %w", err)
		}
	}
	if settings.Provider.SearchEngineID != "" && s.getenv(EnvSearchEngineID) == "" {
		if err := s.configStore.Set(keyProviderEngineID, settings.Provider.SearchEngineID); err != nil {
			return fmt.Errorf("save provider search_engine_id: %w", err)
		}
	}
	if err := s.configStore.Set(keyProviderEndpoint, settings.Provider.Endpoint); err != nil {
		return fmt.Errorf("save provider endpoint: %w", err)
	}
	if err := s.configStore.Set(keyProviderRPS, settings.Provider.RequestsPerSecond); err != nil {
		return fmt.Errorf("save provider requests_per_second: %w", err)
	}

	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(keyStorageDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save storage data_dir: %w", err)
	}
	if err := s.configStore.Set(keyStorageRedisAddr, settings.Storage.RedisAddr); err != nil {
		return fmt.Errorf("save storage redis_addr: %w", err)
	}

	if err := s.configStore.Set(keyServerAddr, settings.Server.Addr); err != nil {
		return fmt.Errorf("save server addr: %w", err)
	}

	return nil
}

// SetProvider stores the search provider credentials.
func (s *SettingsService) SetProvider(apiKey, searchEngineID string) error {
	apiKey = strings.TrimSpace(apiKey)
	searchEngineID = strings.TrimSpace(searchEngineID)
	if apiKey == "" {
		return fmt.Errorf("%w: API key is required", domain.ErrInvalidInput)
	}
	if searchEngineID == "" {
		return fmt.Errorf("%w: search engine ID is required", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyProviderAPIKey, apiKey); err != nil {
		return fmt.Errorf("save provider api_key: %w", err)
	}
	if err := s.configStore.Set(keyProviderEngineID, searchEngineID); err != nil {
		return fmt.Errorf("save provider search_engine_id: %w", err)
	}
	return nil
}

// SetStorageBackend selects the keyword store backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, backend)
	}
	if err := s.configStore.Set(keyStorageBackend, backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	return nil
}

// Validate checks that the provider is configured and the backend is valid.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Provider.IsConfigured() {
		return fmt.Errorf("%w: run 'dealwatch settings provider' or set %s and %s",
			domain.ErrNotConfigured, EnvAPIKey, EnvSearchEngineID)
	}
	if settings.Provider.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests_per_second must be positive", domain.ErrInvalidInput)
	}
	if raw := s.configStore.GetString(keyStorageBackend); raw != "" && !domain.StorageBackend(raw).IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, raw)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// secret returns the environment value, falling back to the config file.
func (s *SettingsService) secret(env, key string) string {
	if v := strings.TrimSpace(s.getenv(env)); v != "" {
		return v
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	b := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if b.IsValid() {
		return b
	}
	return defaultVal
}
