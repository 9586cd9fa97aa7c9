// Package search provides the company news search view for the TUI.
package search

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driving"
)

// View is the search screen: a company input, the result list and a
// status bar. It moves through idle, searching and a terminal state of
// results, empty or error.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	outcome    *domain.SearchOutcome
	subject    string
	searching  bool
	focusInput bool // true = typing a company, false = navigating results
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewCompanyInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.searching = false
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.submit()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "up", "k":
		v.list.MoveUp()
	case "down", "j":
		v.list.MoveDown()
	case "n":
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case "enter":
		if result := v.list.SelectedResult(); result != nil {
			v.statusbar.SetMessage(result.Link)
		}
	}
	return v, nil
}

// submit starts a search for the typed company. Blank input is ignored.
func (v *View) submit() tea.Cmd {
	subject := strings.TrimSpace(v.input.Value())
	if subject == "" {
		return nil
	}

	v.subject = subject
	v.searching = true
	v.err = nil
	v.outcome = nil
	v.list.SetResults(nil)
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage("Searching " + subject + "...")
	v.focusInput = false
	v.input.Blur()
	return v.performSearch(subject)
}

// performSearch runs the search off the UI loop.
func (v *View) performSearch(subject string) tea.Cmd {
	svc, ctx := v.searchService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		outcome, err := svc.Search(ctx, subject)
		return messages.SearchCompleted{Subject: subject, Outcome: outcome, Err: err}
	}
}

// handleSearchCompleted applies a finished search. Completions for an
// earlier subject are dropped.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Subject != v.subject {
		return
	}
	if errors.Is(msg.Err, domain.ErrSearchSuperseded) {
		return
	}

	v.searching = false
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	if msg.Outcome == nil {
		v.setError(domain.ErrProviderFailed)
		return
	}

	v.outcome = msg.Outcome
	v.statusbar.SetMessage("")
	v.statusbar.SetCounts(len(msg.Outcome.Results), msg.Outcome.Candidates)

	switch msg.Outcome.Status() {
	case domain.OutcomeFailed:
		v.setError(errors.New(msg.Outcome.ErrorMessage()))
	case domain.OutcomeEmpty:
		v.err = nil
		v.statusbar.SetState(status.StateEmpty)
	case domain.OutcomeFound:
		v.err = nil
		v.list.SetResults(msg.Outcome.Results)
		v.statusbar.SetState(status.StateResults)
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("dealwatch")+"  "+v.styles.Muted.Render("Today's M&A news"),
		"",
		v.input.View(),
		"",
	)

	if v.outcome != nil && v.outcome.Query.Subject != "" {
		sections = append(sections, v.styles.Muted.Render("Query: "+v.outcome.Query.String()), "")
	}

	switch {
	case v.searching:
		sections = append(sections, v.styles.Muted.Render("Searching..."))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.outcome != nil && v.outcome.Status() == domain.OutcomeEmpty:
		sections = append(sections, v.styles.Warning.Render(domain.OutcomeEmpty.Description()))
	case v.outcome != nil:
		sections = append(sections, v.list.View())
	default:
		sections = append(sections, v.styles.Muted.Render("Enter a company name to search today's M&A news."))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // header, input, query line, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the typed company name.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the typed company name.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Subject returns the company of the last submitted search.
func (v *View) Subject() string {
	return v.subject
}

// Outcome returns the last completed outcome, or nil.
func (v *View) Outcome() *domain.SearchOutcome {
	return v.outcome
}

// Results returns the displayed results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Searching reports whether a search is in flight.
func (v *View) Searching() bool {
	return v.searching
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// State returns the status bar state.
func (v *View) State() status.State {
	return v.statusbar.State()
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset returns the view to an empty input.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.outcome = nil
	v.subject = ""
	v.searching = false
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
