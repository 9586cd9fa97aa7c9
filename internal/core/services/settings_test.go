package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dealwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// newTestSettingsService isolates the service from the process environment.
func newTestSettingsService(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	service.getenv = func(key string) string { return env[key] }
	return service, store
}

func TestNewSettingsService(t *testing.T) {
	service, _ := newTestSettingsService(nil)
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults, *settings)
	assert.False(t, settings.Provider.IsConfigured())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set("provider.api_key", "file-key")
	_ = store.Set("provider.search_engine_id", "file-cx")
	_ = store.Set("provider.endpoint", "http://localhost:9999/")
	_ = store.Set("provider.requests_per_second", int64(3))
	_ = store.Set("storage.backend", "redis")
	_ = store.Set("storage.data_dir", "/tmp/dw")
	_ = store.Set("storage.redis_addr", "redis:6379")
	_ = store.Set("server.addr", ":9090")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "file-key", settings.Provider.APIKey)
	assert.Equal(t, "file-cx", settings.Provider.SearchEngineID)
	assert.Equal(t, "http://localhost:9999/", settings.Provider.Endpoint)
	assert.InDelta(t, 3.0, settings.Provider.RequestsPerSecond, 0)
	assert.Equal(t, domain.StorageBackendRedis, settings.Storage.Backend)
	assert.Equal(t, "/tmp/dw", settings.Storage.DataDir)
	assert.Equal(t, "redis:6379", settings.Storage.RedisAddr)
	assert.Equal(t, ":9090", settings.Server.Addr)
}

func TestSettingsService_Get_EnvironmentOverridesFile(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{
		EnvAPIKey:         "env-key",
		EnvSearchEngineID: " env-cx ",
	})
	_ = store.Set("provider.api_key", "file-key")
	_ = store.Set("provider.search_engine_id", "file-cx")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "env-key", settings.Provider.APIKey)
	assert.Equal(t, "env-cx", settings.Provider.SearchEngineID)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set("storage.backend", "postgres")
	_ = store.Set("provider.requests_per_second", -1.0)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendSQLite, settings.Storage.Backend)
	assert.InDelta(t, domain.DefaultRequestsPerSecond, settings.Provider.RequestsPerSecond, 0)
}

func TestSettingsService_Save(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	settings := &domain.AppSettings{
		Provider: domain.ProviderSettings{
			APIKey:            "key",
			SearchEngineID:    "cx",
			RequestsPerSecond: 2,
		},
		Storage: domain.StorageSettings{
			Backend:   domain.StorageBackendMemory,
			RedisAddr: "localhost:6380",
		},
		Server: domain.ServerSettings{Addr: "127.0.0.1:8081"},
	}

	require.NoError(t, service.Save(settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, *settings, *retrieved)
}

func TestSettingsService_Save_DoesNotCopyEnvSecrets(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{EnvAPIKey: "env-key"})

	settings, err := service.Get()
	require.NoError(t, err)
	require.NoError(t, service.Save(settings))

	_, ok := store.Get("provider.api_key")
	assert.False(t, ok)
}

func TestSettingsService_SetProvider(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		engineID string
		wantErr  bool
	}{
		{name: "valid", apiKey: "key", engineID: "cx"},
		{name: "trimmed", apiKey: " key ", engineID: " cx "},
		{name: "missing key", apiKey: " ", engineID: "cx", wantErr: true},
		{name: "missing engine id", apiKey: "key", engineID: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestSettingsService(nil)

			err := service.SetProvider(tt.apiKey, tt.engineID)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			settings, _ := service.Get()
			assert.Equal(t, "key", settings.Provider.APIKey)
			assert.Equal(t, "cx", settings.Provider.SearchEngineID)
		})
	}
}

func TestSettingsService_SetStorageBackend(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	require.NoError(t, service.SetStorageBackend(domain.StorageBackendRedis))
	settings, _ := service.Get()
	assert.Equal(t, domain.StorageBackendRedis, settings.Storage.Backend)

	err := service.SetStorageBackend("postgres")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		service, _ := newTestSettingsService(nil)
		err := service.Validate()
		assert.ErrorIs(t, err, domain.ErrNotConfigured)
		assert.Contains(t, err.Error(), "dealwatch settings provider")
	})

	t.Run("configured", func(t *testing.T) {
		service, _ := newTestSettingsService(nil)
		require.NoError(t, service.SetProvider("key", "cx"))
		assert.NoError(t, service.Validate())
	})

	t.Run("configured from env", func(t *testing.T) {
		service, _ := newTestSettingsService(map[string]string{
			EnvAPIKey:         "key",
			EnvSearchEngineID: "cx",
		})
		assert.NoError(t, service.Validate())
	})

	t.Run("bad backend", func(t *testing.T) {
		service, store := newTestSettingsService(nil)
		require.NoError(t, service.SetProvider("key", "cx"))
		_ = store.Set("storage.backend", "postgres")
		assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)
	})
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
