package driving

import "github.com/custodia-labs/dealwatch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	// Provider secrets from the environment take precedence over the file.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetProvider stores the search provider credentials.
	SetProvider(apiKey, searchEngineID string) error

	// SetStorageBackend selects the keyword store backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// Validate checks that the provider is configured and the backend is valid.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
