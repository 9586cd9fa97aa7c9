// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// SearchRequested is a command to search news for a company.
type SearchRequested struct {
	Subject string
}

// SearchCompleted carries a finished search back to the model.
// Err is set when the search could not run at all; a provider failure
// arrives as an outcome with OutcomeFailed status.
type SearchCompleted struct {
	Subject string
	Outcome *domain.SearchOutcome
	Err     error
}

// ResultSelected is sent when a search result is selected.
type ResultSelected struct {
	Index int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the company search view.
	ViewSearch
	// ViewKeywords is the keyword taxonomy editor.
	ViewKeywords
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewKeywords:
		return "keywords"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// KeywordsLoaded carries the current keyword collection.
type KeywordsLoaded struct {
	Categories []domain.KeywordCategory
	Err        error
}

// KeywordsChanged signals a keyword mutation finished.
// Categories is the collection after the call, even on error.
type KeywordsChanged struct {
	Op         string
	Categories []domain.KeywordCategory
	Changed    bool
	Err        error
}
