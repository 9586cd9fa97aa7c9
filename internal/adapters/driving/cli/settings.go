package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the search provider, keyword storage and HTTP server.

Settings live in ~/.dealwatch/config.toml. The provider secrets can also be
supplied through DEALWATCH_API_KEY and DEALWATCH_SEARCH_ENGINE_ID, which take
precedence over the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsProviderCmd = &cobra.Command{
	Use:   "provider",
	Short: "Configure Google Custom Search credentials",
	Long: `Store the Custom Search API key and search engine ID (cx).

Without flags the values are prompted for; the API key is read without echo.`,
	RunE: runSettingsProvider,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage [backend]",
	Short: "Select where keywords are stored",
	Long: `Select the keyword storage backend.

Available backends:
  sqlite - local database under the data directory (default)
  redis  - shared Redis instance; edits propagate to every process
  memory - not persisted`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsStorage,
}

// settingsInput is where prompts read from. Tests replace it.
var settingsInput io.Reader = os.Stdin

func init() {
	settingsProviderCmd.Flags().String("api-key", "", "Custom Search API key")
	settingsProviderCmd.Flags().String("search-engine-id", "", "programmable search engine ID (cx)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsProviderCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsUnavailable
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  API Key: %s\n", maskOrUnset(settings.Provider.APIKey))
	cmd.Printf("  Search Engine ID: %s\n", orUnset(settings.Provider.SearchEngineID))
	if settings.Provider.Endpoint != "" {
		cmd.Printf("  Endpoint: %s\n", settings.Provider.Endpoint)
	}
	cmd.Printf("  Requests/second: %s\n", strconv.FormatFloat(settings.Provider.RequestsPerSecond, 'f', -1, 64))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	switch settings.Storage.Backend {
	case domain.StorageBackendSQLite:
		cmd.Printf("  Data dir: %s\n", orDefault(settings.Storage.DataDir, "~/.dealwatch/data"))
	case domain.StorageBackendRedis:
		cmd.Printf("  Redis: %s\n", settings.Storage.RedisAddr)
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsProvider(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsUnavailable
	}

	apiKey, err := cmd.Flags().GetString("api-key")
	if err != nil {
		return fmt.Errorf("getting api-key flag: %w", err)
	}
	engineID, err := cmd.Flags().GetString("search-engine-id")
	if err != nil {
		return fmt.Errorf("getting search-engine-id flag: %w", err)
	}

	reader := bufio.NewReader(settingsInput)
	if apiKey == "" {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
	}
	if engineID == "" {
		cmd.Print("Enter search engine ID (cx): ")
		engineID = readLine(reader)
	}

	if err := settingsService.SetProvider(apiKey, engineID); err != nil {
		return fmt.Errorf("failed to configure provider: %w", err)
	}

	cmd.Printf("Provider configured (API key %s).\n", maskAPIKey(strings.TrimSpace(apiKey)))
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsUnavailable
	}

	backends := domain.AllStorageBackends()
	var selected domain.StorageBackend

	if len(args) == 1 {
		selected = domain.StorageBackend(strings.ToLower(strings.TrimSpace(args[0])))
	} else {
		cmd.Println("Select Storage Backend")
		cmd.Println("----------------------")
		for i, b := range backends {
			cmd.Printf("  %d. %s\n", i+1, b.Description())
		}
		cmd.Print("\nEnter choice [1]: ")
		idx := parseChoice(readLine(bufio.NewReader(settingsInput)), len(backends), 1)
		selected = backends[idx-1]
	}

	if err := settingsService.SetStorageBackend(selected); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}

	cmd.Printf("Storage backend set to: %s\n", selected.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(reader *bufio.Reader) string {
	if f, ok := settingsInput.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func maskOrUnset(key string) string {
	if key == "" {
		return "(not set)"
	}
	return maskAPIKey(key)
}

func orUnset(s string) string {
	return orDefault(s, "(not set)")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
