package domain

import (
	"net/url"
	"strings"
	"time"
)

// DefaultPreviewImageURL is shown for results without a preview image.
const DefaultPreviewImageURL = "https://images.unsplash.com/photo-1554244933-d876deb6b2ff?q=80&w=800&auto=format&fit=crop"

// SearchResult is a candidate that passed keyword re-validation.
// Immutable once constructed and never persisted.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`

	// SourceTitle is the publisher name; empty when unknown.
	SourceTitle string `json:"source_title,omitempty"`

	// PublishedAt is nil when the provider gave no usable timestamp.
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// ImageURL is empty when no preview image was found.
	ImageURL string `json:"image_url,omitempty"`
}

// DisplaySource returns the source title, falling back to the link's host.
func (r SearchResult) DisplaySource() string {
	if r.SourceTitle != "" {
		return r.SourceTitle
	}
	u, err := url.Parse(r.Link)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// PreviewImage returns the image URL or the default placeholder.
func (r SearchResult) PreviewImage() string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return DefaultPreviewImageURL
}

// OutcomeStatus classifies a finished search.
type OutcomeStatus string

// Outcome statuses.
const (
	// OutcomeFound means at least one result survived filtering.
	OutcomeFound OutcomeStatus = "found"

	// OutcomeEmpty means the search succeeded but nothing matched.
	OutcomeEmpty OutcomeStatus = "empty"

	// OutcomeFailed means the provider call failed.
	OutcomeFailed OutcomeStatus = "failed"
)

// String returns the string representation.
func (s OutcomeStatus) String() string {
	return string(s)
}

// Description returns the user-facing message for the status.
func (s OutcomeStatus) Description() string {
	switch s {
	case OutcomeFound:
		return "M&A news found"
	case OutcomeEmpty:
		return "No M&A news found for today."
	case OutcomeFailed:
		return "Search failed"
	default:
		return unknownDescription
	}
}

// SearchOutcome is the tagged result of one search: either results (possibly
// none) or a provider failure. A failed outcome carries no results.
type SearchOutcome struct {
	// Query is the query that was sent.
	Query Query

	// Results are the filtered results in provider order.
	Results []SearchResult

	// Candidates is how many raw results the provider returned.
	Candidates int

	// Err is set when the provider call failed.
	Err error

	// Duration is how long the provider call and filtering took.
	Duration time.Duration
}

// Status classifies the outcome.
func (o *SearchOutcome) Status() OutcomeStatus {
	switch {
	case o.Err != nil:
		return OutcomeFailed
	case len(o.Results) == 0:
		return OutcomeEmpty
	default:
		return OutcomeFound
	}
}

// ErrorMessage returns the failure text, or empty for a successful outcome.
func (o *SearchOutcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return strings.TrimSpace(o.Err.Error())
}
