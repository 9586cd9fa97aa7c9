package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for dealwatch.

Search today's M&A news for a company and edit the keyword categories
with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Select
  Esc      - Back / Cancel
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runApp runs the program; tests replace it to avoid taking the terminal.
var runApp = func(app *tui.App) error {
	return app.Run()
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if searchService == nil {
		return errSearchUnavailable
	}
	if keywordService == nil {
		return errKeywordsUnavailable
	}

	app, err := tui.NewApp(tui.NewPorts(searchService, keywordService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Keyword edits from other processes show up the next time the
	// keywords view opens.
	startWatch(ctx)

	if err := runApp(app.WithContext(ctx)); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
