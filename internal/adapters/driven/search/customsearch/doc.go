// Package customsearch implements driven.SearchProvider on the Google
// Custom Search JSON API (google.golang.org/api/customsearch/v1).
//
// Each Search call makes one request for a single page of results sorted by
// date and restricted to the request's recency window. Calls are throttled
// by a token bucket, and a 429 response opens a back-off window during
// which further calls wait.
package customsearch
