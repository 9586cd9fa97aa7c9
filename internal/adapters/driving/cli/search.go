package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

var (
	searchJSON    bool
	searchTimeout time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search [company]",
	Short: "Search today's M&A news for a company",
	Long: `Searches the last day of news for the company combined with the keyword
taxonomy, then keeps only results whose title or snippet mentions a keyword.

Multiple arguments are joined with spaces, so quoting is optional:
  dealwatch search ソフトバンク
  dealwatch search Nippon Steel

Example companies: ` + strings.Join(domain.ExampleCompanies(), ", "),
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the outcome as JSON")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 30*time.Second, "give up after this long")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the JSON form of an outcome.
type searchOutput struct {
	Subject    string                `json:"subject"`
	Query      string                `json:"query"`
	Status     domain.OutcomeStatus  `json:"status"`
	Candidates int                   `json:"candidates"`
	Results    []domain.SearchResult `json:"results"`
	Error      string                `json:"error,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	subject := strings.TrimSpace(strings.Join(args, " "))

	if searchService == nil {
		return errSearchUnavailable
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), searchTimeout)
	defer cancel()

	outcome, err := searchService.Search(ctx, subject)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, outcome)
	}
	return outputSearchTable(cmd, outcome)
}

func outputSearchJSON(cmd *cobra.Command, outcome *domain.SearchOutcome) error {
	out := searchOutput{
		Subject:    outcome.Query.Subject,
		Query:      outcome.Query.String(),
		Status:     outcome.Status(),
		Candidates: outcome.Candidates,
		Results:    outcome.Results,
		Error:      outcome.ErrorMessage(),
	}
	if out.Results == nil {
		out.Results = []domain.SearchResult{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

var highlightStyle = lipgloss.NewStyle().Bold(true).Underline(true)

func outputSearchTable(cmd *cobra.Command, outcome *domain.SearchOutcome) error {
	if outcome.Query.Subject != "" {
		cmd.Printf("Query: %s\n\n", outcome.Query)
	}

	switch outcome.Status() {
	case domain.OutcomeFailed:
		return fmt.Errorf("search failed: %w", outcome.Err)
	case domain.OutcomeEmpty:
		cmd.Println(domain.OutcomeEmpty.Description())
		return nil
	}

	terms := domain.DefaultHighlightTerms()
	for i := range outcome.Results {
		r := &outcome.Results[i]

		cmd.Printf("  [%d] %s\n", i+1, renderSpans(domain.Highlight(r.Title, terms)))

		meta := r.DisplaySource()
		if r.PublishedAt != nil {
			if meta != "" {
				meta += " · "
			}
			meta += r.PublishedAt.Local().Format("2006-01-02 15:04")
		}
		if meta != "" {
			cmd.Printf("      %s\n", meta)
		}
		if r.Snippet != "" {
			cmd.Printf("      %s\n", renderSpans(domain.Highlight(oneLine(r.Snippet), terms)))
		}
		cmd.Printf("      %s\n", r.Link)
		cmd.Println()
	}

	cmd.Printf("%d of %d results matched the keywords.\n", len(outcome.Results), outcome.Candidates)
	return nil
}

// renderSpans styles highlighted spans. Styles are dropped when the output
// is not a terminal.
func renderSpans(spans []domain.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Highlighted {
			b.WriteString(highlightStyle.Render(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
