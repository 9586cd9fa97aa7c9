package domain

import (
	"strings"
	"time"
)

// publishedTimeLayouts are tried in order; the zone-less forms are read as UTC.
var publishedTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FilterResults keeps the raw results whose title or snippet contains at
// least one keyword, compared case-insensitively. Empty keywords never match.
// Input order is preserved and there is no cap.
func FilterResults(raw []RawResult, keywords []string) []SearchResult {
	needles := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		needles = append(needles, strings.ToLower(k))
	}

	results := make([]SearchResult, 0, len(raw))
	for _, r := range raw {
		if !matchesAny(r, needles) {
			continue
		}
		results = append(results, r.ToSearchResult())
	}
	return results
}

func matchesAny(r RawResult, needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	title := strings.ToLower(r.Title)
	snippet := strings.ToLower(r.Snippet)
	for _, n := range needles {
		if strings.Contains(title, n) || strings.Contains(snippet, n) {
			return true
		}
	}
	return false
}

// ToSearchResult converts the raw record, picking the preview image
// (cse_image before og:image) and parsing the published time.
func (r RawResult) ToSearchResult() SearchResult {
	image := strings.TrimSpace(r.CSEImage)
	if image == "" {
		image = strings.TrimSpace(r.OGImage)
	}
	return SearchResult{
		Title:       r.Title,
		Link:        r.Link,
		Snippet:     r.Snippet,
		SourceTitle: strings.TrimSpace(r.SourceTitle),
		PublishedAt: ParsePublishedTime(r.PublishedTime),
		ImageURL:    image,
	}
}

// ParsePublishedTime parses an article:published_time value. It returns nil
// when the value is empty or unparseable.
func ParsePublishedTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range publishedTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
