// Package tui provides an interactive terminal user interface for dealwatch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/dealwatch/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Search runs company searches.
	Search driving.SearchService

	// Keywords manages the keyword taxonomy.
	Keywords driving.KeywordService
}

// NewPorts creates a new Ports aggregate with the given services.
// When search hands out sessions the TUI searches on its own session, so a
// new search cancels the one still running.
func NewPorts(search driving.SearchService, keywords driving.KeywordService) *Ports {
	if sessions, ok := search.(driving.SearchSessions); ok {
		search = sessions.NewSession()
	}
	return &Ports{
		Search:   search,
		Keywords: keywords,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Keywords == nil {
		return ErrMissingKeywordService
	}
	return nil
}
