package mcp

import (
	"github.com/custodia-labs/dealwatch/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search provides news search.
	Search driving.SearchService

	// Keywords manages the keyword taxonomy. Optional; the keyword tools
	// and resource are only registered when set.
	Keywords driving.KeywordService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
