// Package keywords provides the keyword taxonomy editor for the TUI.
package keywords

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driving"
)

// ErrNoKeywordService indicates that no keyword service was provided.
var ErrNoKeywordService = errors.New("keyword service is required")

// Mutation names carried in messages.KeywordsChanged.
const (
	OpAddKeyword     = "add_keyword"
	OpRemoveKeyword  = "remove_keyword"
	OpAddCategory    = "add_category"
	OpRemoveCategory = "remove_category"
	OpReset          = "reset"
)

type mode int

type categories = []domain.KeywordCategory

// mutation is one keyword service call returning the resulting collection.
type mutation func(context.Context, driving.KeywordService) (categories, error)

const (
	modeBrowse mode = iota
	modeAddKeyword
	modeAddCategory
	modeConfirm
)

// View lists keyword categories and edits them in place.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	statusbar *status.Bar

	keywordService driving.KeywordService
	ctx            context.Context

	categories []domain.KeywordCategory
	catIdx     int
	kwIdx      int
	mode       mode
	confirm    string
	pending    tea.Cmd
	busy       bool
	err        error
	width      int
	height     int
	ready      bool
}

// NewView creates a new keywords view.
func NewView(s *styles.Styles, km *keymap.KeyMap, keywordService driving.KeywordService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	in := input.NewTextInput(s, "Keyword: ", "")
	in.Blur()

	bar := status.NewBar(s, km)
	bar.SetHints(km.KeywordsHelp())

	return &View{
		styles:         s,
		keymap:         km,
		input:          in,
		statusbar:      bar,
		keywordService: keywordService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current collection.
func (v *View) Init() tea.Cmd {
	svc := v.keywordService
	return func() tea.Msg {
		if svc == nil {
			return messages.KeywordsLoaded{Err: ErrNoKeywordService}
		}
		return messages.KeywordsLoaded{Categories: svc.List()}
	}
}

// Update handles messages for the keywords view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.KeywordsLoaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.setCategories(msg.Categories)
		return v, nil

	case messages.KeywordsChanged:
		v.handleChanged(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	if v.mode == modeAddKeyword || v.mode == modeAddCategory {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg dispatches on the current mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case modeAddKeyword, modeAddCategory:
		return v.handleInputKey(msg)
	case modeConfirm:
		return v.handleConfirmKey(msg)
	case modeBrowse:
	}

	if v.busy {
		return v, nil
	}

	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.moveCategory(-1)
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.moveCategory(1)
	case keymap.Matches(msg.String(), v.keymap.Left):
		v.moveKeyword(-1)
	case keymap.Matches(msg.String(), v.keymap.Right):
		v.moveKeyword(1)
	case keymap.Matches(msg.String(), v.keymap.AddKeyword):
		if cat := v.SelectedCategory(); cat != nil {
			return v, v.startInput(modeAddKeyword, "Keyword: ", "add to "+cat.Name)
		}
	case keymap.Matches(msg.String(), v.keymap.AddCategory):
		return v, v.startInput(modeAddCategory, "Category: ", "new category name")
	case keymap.Matches(msg.String(), v.keymap.RemoveKeyword):
		cat, kw := v.SelectedCategory(), v.SelectedKeyword()
		if cat != nil && kw != "" {
			return v, v.run(OpRemoveKeyword, func(ctx context.Context, svc driving.KeywordService) (categories, error) {
				return svc.RemoveKeyword(ctx, cat.ID, kw)
			})
		}
	case keymap.Matches(msg.String(), v.keymap.RemoveCategory):
		if cat := v.SelectedCategory(); cat != nil {
			id := cat.ID
			v.askConfirm(fmt.Sprintf("Delete category %q and its %d keywords?", cat.Name, len(cat.Keywords)),
				v.mutate(OpRemoveCategory, func(ctx context.Context, svc driving.KeywordService) (categories, error) {
					return svc.RemoveCategory(ctx, id)
				}))
		}
	case keymap.Matches(msg.String(), v.keymap.Reset):
		v.askConfirm("Reset all keywords to the defaults?",
			v.mutate(OpReset, func(ctx context.Context, svc driving.KeywordService) (categories, error) {
				return svc.Reset(ctx)
			}))
	}
	return v, nil
}

// handleInputKey handles keys while the prompt is open.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.closeInput()
		return v, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(v.input.Value())
		current := v.mode
		v.closeInput()
		if value == "" {
			return v, nil
		}
		if current == modeAddCategory {
			return v, v.run(OpAddCategory, func(ctx context.Context, svc driving.KeywordService) (categories, error) {
				return svc.AddCategory(ctx, value)
			})
		}
		cat := v.SelectedCategory()
		if cat == nil {
			return v, nil
		}
		id := cat.ID
		return v, v.run(OpAddKeyword, func(ctx context.Context, svc driving.KeywordService) (categories, error) {
			return svc.AddKeyword(ctx, id, value)
		})
	default:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
}

// handleConfirmKey accepts y to run the pending mutation.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	cmd := v.pending
	v.mode = modeBrowse
	v.confirm = ""
	v.pending = nil

	if msg.String() == "y" || msg.String() == "Y" {
		v.busy = true
		return v, cmd
	}
	v.statusbar.SetMessage("Cancelled")
	return v, nil
}

func (v *View) startInput(m mode, label, placeholder string) tea.Cmd {
	v.mode = m
	v.input.SetPrompt(label, placeholder)
	v.input.SetValue("")
	return v.input.Focus()
}

func (v *View) closeInput() {
	v.mode = modeBrowse
	v.input.Blur()
	v.input.SetValue("")
}

func (v *View) askConfirm(prompt string, cmd tea.Cmd) {
	v.mode = modeConfirm
	v.confirm = prompt
	v.pending = cmd
}

// run marks the view busy and returns the mutation command.
func (v *View) run(op string, fn mutation) tea.Cmd {
	v.busy = true
	return v.mutate(op, fn)
}

// mutate runs fn against the service off the UI loop and reports the
// collection before and after.
func (v *View) mutate(op string, fn mutation) tea.Cmd {
	svc, ctx := v.keywordService, v.ctx
	before := domain.CloneCategories(v.categories)
	return func() tea.Msg {
		if svc == nil {
			return messages.KeywordsChanged{Op: op, Categories: before, Err: ErrNoKeywordService}
		}
		after, err := fn(ctx, svc)
		return messages.KeywordsChanged{
			Op:         op,
			Categories: after,
			Changed:    err == nil && !domain.CategoriesEqual(before, after),
			Err:        err,
		}
	}
}

// handleChanged applies a finished mutation.
func (v *View) handleChanged(msg messages.KeywordsChanged) {
	v.busy = false
	if msg.Categories != nil {
		v.setCategories(msg.Categories)
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.statusbar.SetState(status.StateReady)
	if !msg.Changed {
		v.statusbar.SetMessage("No change.")
		return
	}

	switch msg.Op {
	case OpAddCategory:
		v.catIdx = len(v.categories) - 1
		v.kwIdx = 0
		v.statusbar.SetMessage("Category added")
	case OpAddKeyword:
		if cat := v.SelectedCategory(); cat != nil {
			v.kwIdx = max(len(cat.Keywords)-1, 0)
		}
		v.statusbar.SetMessage("Keyword added")
	case OpRemoveKeyword:
		v.statusbar.SetMessage("Keyword removed")
	case OpRemoveCategory:
		v.statusbar.SetMessage("Category removed")
	case OpReset:
		v.catIdx, v.kwIdx = 0, 0
		v.statusbar.SetMessage("Keywords reset to defaults")
	default:
		v.statusbar.SetMessage("Saved")
	}
}

// setCategories replaces the collection and keeps the selection in range.
func (v *View) setCategories(cats []domain.KeywordCategory) {
	v.categories = cats
	if v.catIdx >= len(cats) {
		v.catIdx = max(len(cats)-1, 0)
	}
	v.clampKeyword()
}

func (v *View) setError(err error) {
	v.busy = false
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) moveCategory(delta int) {
	next := v.catIdx + delta
	if next < 0 || next >= len(v.categories) {
		return
	}
	v.catIdx = next
	v.kwIdx = 0
}

func (v *View) moveKeyword(delta int) {
	v.kwIdx += delta
	v.clampKeyword()
}

func (v *View) clampKeyword() {
	cat := v.SelectedCategory()
	if cat == nil || len(cat.Keywords) == 0 || v.kwIdx < 0 {
		v.kwIdx = 0
		return
	}
	if v.kwIdx >= len(cat.Keywords) {
		v.kwIdx = len(cat.Keywords) - 1
	}
}

// View renders the keywords view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Keywords"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Every search also includes the built-in M&A terms."))
	b.WriteString("\n\n")

	if len(v.categories) == 0 {
		b.WriteString(v.styles.Muted.Render("No categories. The default keywords are still used."))
		b.WriteString("\n")
	}

	for i := range v.categories {
		b.WriteString(v.renderCategory(i, &v.categories[i]))
		b.WriteString("\n")
	}

	switch v.mode {
	case modeAddKeyword, modeAddCategory:
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
		b.WriteString("\n")
	case modeConfirm:
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(v.confirm))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[y] confirm  [any other key] cancel"))
		b.WriteString("\n")
	case modeBrowse:
	}

	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// renderCategory renders a category header and its keywords.
func (v *View) renderCategory(index int, cat *domain.KeywordCategory) string {
	selected := index == v.catIdx

	indicator := "  "
	name := v.styles.Subtitle.Render(cat.Name)
	if selected {
		indicator = "> "
		name = v.styles.Selected.Render(cat.Name)
	}
	header := indicator + name + " " + v.styles.Muted.Render("("+cat.ID+")")

	if len(cat.Keywords) == 0 {
		return header + "\n    " + v.styles.Muted.Render("(no keywords)")
	}

	words := make([]string, len(cat.Keywords))
	for i, kw := range cat.Keywords {
		if selected && i == v.kwIdx {
			words[i] = v.styles.Highlight.Render("[" + kw + "]")
		} else {
			words[i] = v.styles.Normal.Render(kw)
		}
	}
	return header + "\n    " + strings.Join(words, v.styles.Muted.Render(", "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view has dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Categories returns the displayed collection.
func (v *View) Categories() []domain.KeywordCategory {
	return v.categories
}

// SelectedCategory returns the focused category, or nil when there is none.
func (v *View) SelectedCategory() *domain.KeywordCategory {
	if v.catIdx < 0 || v.catIdx >= len(v.categories) {
		return nil
	}
	return &v.categories[v.catIdx]
}

// SelectedKeyword returns the focused keyword, or empty.
func (v *View) SelectedKeyword() string {
	cat := v.SelectedCategory()
	if cat == nil || v.kwIdx >= len(cat.Keywords) {
		return ""
	}
	return cat.Keywords[v.kwIdx]
}

// Editing reports whether a prompt or confirmation is open.
func (v *View) Editing() bool {
	return v.mode != modeBrowse
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Message returns the status message.
func (v *View) Message() string {
	return v.statusbar.Message()
}

// Reset returns the view to browsing with the selection at the top.
func (v *View) Reset() {
	v.closeInput()
	v.confirm = ""
	v.pending = nil
	v.busy = false
	v.catIdx, v.kwIdx = 0, 0
	v.err = nil
	v.statusbar.Clear()
}
