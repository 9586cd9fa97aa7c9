package domain

import (
	"strings"
	"time"
)

// RecencyWindow is the provider-side restriction on how old results may be.
// Values use the provider's dateRestrict syntax.
type RecencyWindow string

// RecencyOneDay restricts results to the trailing day.
const RecencyOneDay RecencyWindow = "d1"

// String returns the provider syntax for the window.
func (r RecencyWindow) String() string {
	return string(r)
}

// Description returns a human-readable description of the window.
func (r RecencyWindow) Description() string {
	switch r {
	case RecencyOneDay:
		return "last 1 day"
	default:
		return unknownDescription
	}
}

// queryDateLayout is the layout of the same-day hint appended to queries.
const queryDateLayout = "2006-01-02"

// ExampleCompanies returns the companies offered as search suggestions.
func ExampleCompanies() []string {
	return []string{"ソフトバンク", "楽天", "KDDI", "NTT", "トヨタ"}
}

// DefaultKeywords returns the built-in M&A terms that every query carries,
// independent of the user's stored taxonomy.
func DefaultKeywords() []string {
	return []string{
		"買収", "合併", "M&A", "資本提携",
		"TOB", "株式取得", "子会社化",
		"経営統合", "事業譲渡", "出資",
	}
}

// Query is an ephemeral search request: a subject plus the merged keyword
// set and a recency constraint. It is rebuilt for every search.
type Query struct {
	// Subject is the company name, trimmed.
	Subject string

	// Keywords is the deduplicated keyword set, defaults first.
	Keywords []string

	// Date is the calendar date used for the textual relevance hint.
	Date time.Time

	// Recency is the provider-side recency restriction.
	Recency RecencyWindow
}

// BuildQuery merges the built-in defaults with every supplied keyword set and
// combines them with the subject. Duplicates are dropped by exact match,
// first occurrence wins. now supplies the date hint and should be local time.
func BuildQuery(subject string, keywordSets [][]string, now time.Time) (Query, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Query{}, ErrEmptySubject
	}

	defaults := DefaultKeywords()
	seen := make(map[string]struct{}, len(defaults))
	keywords := make([]string, 0, len(defaults))
	add := func(k string) {
		if strings.TrimSpace(k) == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keywords = append(keywords, k)
	}

	for _, k := range defaults {
		add(k)
	}
	for _, set := range keywordSets {
		for _, k := range set {
			add(k)
		}
	}

	return Query{
		Subject:  subject,
		Keywords: keywords,
		Date:     now,
		Recency:  RecencyOneDay,
	}, nil
}

// KeywordClause renders the boolean-OR keyword clause without parentheses.
func (q Query) KeywordClause() string {
	return strings.Join(q.Keywords, " OR ")
}

// DateHint returns the YYYY-MM-DD token appended to the expression.
func (q Query) DateHint() string {
	return q.Date.Format(queryDateLayout)
}

// String renders the provider query expression:
// "(subject) (kw1 OR kw2 OR ... OR kwN) YYYY-MM-DD".
func (q Query) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(q.Subject)
	b.WriteString(") (")
	b.WriteString(q.KeywordClause())
	b.WriteString(") ")
	b.WriteString(q.DateHint())
	return b.String()
}
