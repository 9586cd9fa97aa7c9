package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/views/keywords"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView     *menu.View
	searchView   *search.View
	keywordsView *keywords.View

	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	menuView := menu.NewView(s)
	menuView.SetConfigured(ports.Search.IsConfigured())

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menuView,
		searchView:   search.NewView(s, km, ports.Search),
		keywordsView: keywords.NewView(s, km, ports.Keywords),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for searches and keyword changes.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.keywordsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("dealwatch - M&A news"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			a.err = a.searchView.Err()
		case messages.ViewKeywords:
			a.keywordsView, cmd = a.keywordsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.KeywordsLoaded, messages.KeywordsChanged:
		a.keywordsView, cmd = a.keywordsView.Update(msg)
		a.err = a.keywordsView.Err()
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewKeywords:
			a.keywordsView.Reset()
			return a, a.keywordsView.Init()
		case messages.ViewMenu:
			a.menuView.SetConfigured(a.ports.Search.IsConfigured())
		case messages.ViewHelp:
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewKeywords:
			a.keywordsView, cmd = a.keywordsView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink etc.) to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewKeywords:
		a.keywordsView, cmd = a.keywordsView.Update(msg)
	case messages.ViewHelp:
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewKeywords:
		return a.keywordsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
		return a.menuView.View()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Search:
  (type)      Company name
  tab         Complete an example company (ソフトバンク, 楽天, KDDI, NTT, トヨタ)
  enter       Search today's M&A news
  j/k, ↑/↓    Navigate results
  enter       Show the selected link
  n           New search

Keywords:
  j/k, ↑/↓    Select category
  h/l, ←/→    Select keyword
  a / d       Add / delete keyword
  c / x       Add / delete category
  R           Reset to defaults

Results always include the built-in terms 買収, 合併, M&A, 資本提携, TOB.

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the typed company name.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// Categories returns the keyword collection shown in the editor.
func (a *App) Categories() []domain.KeywordCategory {
	return a.keywordsView.Categories()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.keywordsView.SetDimensions(width, height)
}
