package domain

// DefaultMaxResults is the fixed provider page size.
const DefaultMaxResults = 10

// SortOrder is the provider-side ordering of results.
type SortOrder string

// SortByDate orders results newest first.
const SortByDate SortOrder = "date"

// String returns the provider syntax for the order.
func (s SortOrder) String() string {
	return string(s)
}

// ProviderRequest is a single outbound search call.
type ProviderRequest struct {
	// Query is the rendered query expression.
	Query string

	// Recency restricts how old results may be.
	Recency RecencyWindow

	// MaxResults is the page size.
	MaxResults int

	// Sort is the provider-side ordering.
	Sort SortOrder
}

// NewProviderRequest returns the request for q with the fixed recency,
// page size and sort order.
func NewProviderRequest(q Query) ProviderRequest {
	recency := q.Recency
	if recency == "" {
		recency = RecencyOneDay
	}
	return ProviderRequest{
		Query:      q.String(),
		Recency:    recency,
		MaxResults: DefaultMaxResults,
		Sort:       SortByDate,
	}
}

// RawResult is a candidate record as returned by the search provider,
// before keyword re-validation.
type RawResult struct {
	Title   string
	Link    string
	Snippet string

	// SourceTitle is the publisher name, if the provider supplied one.
	SourceTitle string

	// CSEImage is the first cse_image source.
	CSEImage string

	// OGImage is the og:image meta tag.
	OGImage string

	// PublishedTime is the raw article:published_time meta tag.
	PublishedTime string
}
