// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// linesPerResult is the height of one rendered result.
const linesPerResult = 4

// ResultList displays news results in a navigable list with deal terms
// highlighted.
type ResultList struct {
	results  []domain.SearchResult
	terms    []string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		terms:  domain.DefaultHighlightTerms(),
		styles: s,
		width:  80,
		height: 12,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)*linesPerResult+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	visibleCount := (r.height - 2) / linesPerResult
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single result: title, source and time, snippet,
// and the link for the selected row.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	selected := index == r.selected

	indicator := "  "
	base := r.styles.Normal
	if selected {
		indicator = r.styles.Title.Render("> ")
		base = r.styles.Normal.Bold(true)
	}

	title := truncate(result.Title, r.width-4)
	if title == "" {
		title = "(Untitled)"
	}
	titleLine := indicator + r.styles.RenderSpans(domain.Highlight(title, r.terms), base)

	meta := result.DisplaySource()
	if result.PublishedAt != nil {
		if meta != "" {
			meta += " · "
		}
		meta += result.PublishedAt.Local().Format("2006-01-02 15:04")
	}
	metaLine := "    " + r.styles.Subtitle.Render(meta)

	snippet := truncate(oneLine(result.Snippet), r.width-6)
	snippetLine := "    " + r.styles.RenderSpans(domain.Highlight(snippet, r.terms), r.styles.Muted)

	lines := []string{titleLine, metaLine, snippetLine}
	if selected {
		lines = append(lines, "    "+r.styles.Link.Render(result.Link))
	} else {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if n < 10 {
		n = 10
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SetResults replaces the results and resets the selection.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

// SetHighlightTerms replaces the emphasised terms.
func (r *ResultList) SetHighlightTerms(terms []string) {
	r.terms = terms
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
