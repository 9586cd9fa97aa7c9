package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// withInput replaces the prompt input for one test.
func withInput(t *testing.T, input string) {
	t.Helper()
	old := settingsInput
	settingsInput = strings.NewReader(input)
	t.Cleanup(func() { settingsInput = old })
}

func TestSettingsCmd_ShowUnconfigured(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Provider]")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "Requests/second: 1")
	assert.Contains(t, out, "[Storage]")
	assert.Contains(t, out, "Backend: SQLite (local file)")
	assert.Contains(t, out, "Data dir: ~/.dealwatch/data")
	assert.Contains(t, out, "[Server]")
	assert.Contains(t, out, "Address: :8080")
	assert.Contains(t, out, "Warning: search provider not configured")
}

func TestSettingsCmd_ShowConfigured(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.SetProvider("AIzaSyExampleKey1234", "engine-1"))
	require.NoError(t, env.settings.SetStorageBackend(domain.StorageBackendRedis))

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "API Key: AIza...1234")
	assert.NotContains(t, out, "AIzaSyExampleKey1234")
	assert.Contains(t, out, "Search Engine ID: engine-1")
	assert.Contains(t, out, "Redis: localhost:6379")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_ProviderFromFlags(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "settings", "provider",
		"--api-key", "AIzaSyExampleKey1234", "--search-engine-id", "engine-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Provider configured (API key AIza...1234).")
	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "AIzaSyExampleKey1234", settings.Provider.APIKey)
	assert.Equal(t, "engine-1", settings.Provider.SearchEngineID)
}

func TestSettingsCmd_ProviderPrompts(t *testing.T) {
	env := setupTestServices(t)
	withInput(t, "prompted-key-5678\nprompted-cx\n")

	out, err := execute(t, "settings", "provider")

	require.NoError(t, err)
	assert.Contains(t, out, "Enter API key: ")
	assert.Contains(t, out, "Enter search engine ID (cx): ")
	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "prompted-key-5678", settings.Provider.APIKey)
	assert.Equal(t, "prompted-cx", settings.Provider.SearchEngineID)
}

func TestSettingsCmd_ProviderRequiresValues(t *testing.T) {
	setupTestServices(t)
	withInput(t, "\n\n")

	_, err := execute(t, "settings", "provider")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_StorageArgument(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "settings", "storage", "Redis")

	require.NoError(t, err)
	assert.Contains(t, out, "Storage backend set to: Redis (shared)")
	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendRedis, settings.Storage.Backend)
}

func TestSettingsCmd_StoragePrompt(t *testing.T) {
	env := setupTestServices(t)
	withInput(t, "3\n")

	out, err := execute(t, "settings", "storage")

	require.NoError(t, err)
	assert.Contains(t, out, "1. SQLite (local file)")
	assert.Contains(t, out, "Storage backend set to: Memory (not persisted)")
	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendMemory, settings.Storage.Backend)
}

func TestSettingsCmd_StorageUnknown(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "storage", "postgres")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_ServiceNotConfigured(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	_, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.ErrorIs(t, err, errSettingsUnavailable)
}

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}
