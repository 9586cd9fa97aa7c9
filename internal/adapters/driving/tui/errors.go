package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingKeywordService is returned when the keyword service is not provided.
var ErrMissingKeywordService = errors.New("tui: keyword service is required")

// ErrInvalidPorts is returned when no ports are given at all.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
