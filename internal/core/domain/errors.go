package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptySubject indicates a search was requested without a company name.
	// Presentation layers must not submit such searches.
	ErrEmptySubject = errors.New("search subject is empty")

	// Search Errors.

	// ErrNotConfigured indicates the search provider credentials are missing.
	// This is a configuration error, not an empty result.
	ErrNotConfigured = errors.New("search provider not configured")

	// ErrProviderFailed indicates the search provider request failed
	// (network failure, rate limit, malformed response).
	ErrProviderFailed = errors.New("search provider failed")

	// ErrRateLimited indicates the provider's rate limit or quota was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthorized indicates the provider rejected the API key or engine id.
	ErrUnauthorized = errors.New("provider rejected credentials")

	// ErrSearchSuperseded indicates a search was cancelled because a newer
	// search was started. Its results must be discarded.
	ErrSearchSuperseded = errors.New("search superseded by a newer search")

	// Storage Errors.

	// ErrStoreUnavailable indicates the keyword state store cannot be reached.
	ErrStoreUnavailable = errors.New("state store unavailable")
)
