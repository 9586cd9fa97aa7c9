// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Search submits the company name.
	Search key.Binding

	// Up and Down move through a list.
	Up   key.Binding
	Down key.Binding

	// Left and Right move between keywords of a category.
	Left  key.Binding
	Right key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Cancel abandons the current input.
	Cancel key.Binding

	// NewSearch starts a new search from results view.
	NewSearch key.Binding

	// AddKeyword prompts for a keyword in the selected category.
	AddKeyword key.Binding

	// RemoveKeyword deletes the selected keyword.
	RemoveKeyword key.Binding

	// AddCategory prompts for a new category name.
	AddCategory key.Binding

	// RemoveCategory deletes the selected category.
	RemoveCategory key.Binding

	// Reset restores the default keywords.
	Reset key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev keyword"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next keyword"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		AddKeyword: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add keyword"),
		),
		RemoveKeyword: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete keyword"),
		),
		AddCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new category"),
		),
		RemoveCategory: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete category"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Back}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Down, k.Back}
}

// KeywordsHelp returns keybindings for the keyword editor.
func (k *KeyMap) KeywordsHelp() []key.Binding {
	return []key.Binding{k.AddKeyword, k.RemoveKeyword, k.AddCategory, k.RemoveCategory, k.Reset, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.Search, k.NewSearch, k.Back, k.Cancel},
		{k.AddKeyword, k.RemoveKeyword, k.AddCategory, k.RemoveCategory, k.Reset},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
