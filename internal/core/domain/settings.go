package domain

const unknownDescription = "Unknown"

// StorageBackend selects where the keyword collection is persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite stores the entry in a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendRedis stores the entry in a shared Redis instance.
	StorageBackendRedis StorageBackend = "redis"

	// StorageBackendMemory keeps the entry in process memory only.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendRedis, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// IsPersistent returns true if the backend survives a process restart.
func (b StorageBackend) IsPersistent() bool {
	return b == StorageBackendSQLite || b == StorageBackendRedis
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (local file)"
	case StorageBackendRedis:
		return "Redis (shared)"
	case StorageBackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		StorageBackendSQLite,
		StorageBackendRedis,
		StorageBackendMemory,
	}
}

// ProviderSettings holds search provider credentials and throttling.
type ProviderSettings struct {
	// APIKey is the Custom Search API key.
	APIKey string

	// SearchEngineID is the programmable search engine id (cx).
	SearchEngineID string

	// Endpoint overrides the API base URL. Empty uses the default.
	Endpoint string

	// RequestsPerSecond throttles outbound calls.
	RequestsPerSecond float64
}

// IsConfigured returns true if both secrets are present.
func (p ProviderSettings) IsConfigured() bool {
	return p.APIKey != "" && p.SearchEngineID != ""
}

// StorageSettings holds keyword persistence configuration.
type StorageSettings struct {
	// Backend is the store implementation.
	Backend StorageBackend

	// DataDir is the SQLite directory.
	DataDir string

	// RedisAddr is the Redis address for the redis backend.
	RedisAddr string
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Provider ProviderSettings
	Storage  StorageSettings
	Server   ServerSettings
}

// Default setting values.
const (
	DefaultRequestsPerSecond = 1.0
	DefaultRedisAddr         = "localhost:6379"
	DefaultServerAddr        = ":8080"
)

// DefaultAppSettings returns settings with sensible defaults.
// Provider credentials are left empty; they come from the config file or
// the environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Provider: ProviderSettings{
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Storage: StorageSettings{
			Backend:   StorageBackendSQLite,
			RedisAddr: DefaultRedisAddr,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
	}
}
