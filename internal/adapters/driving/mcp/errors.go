// Package mcp provides an MCP (Model Context Protocol) server adapter for dealwatch.
// It lets AI assistants search M&A news and edit the keyword taxonomy.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
