package domain

import "strings"

// Span is a run of text that is either a highlighted term match or plain.
type Span struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// DefaultHighlightTerms returns the terms emphasised in rendered results.
func DefaultHighlightTerms() []string {
	return []string{
		"買収", "合併", "M&A", "資本提携",
		"TOB", "株式取得", "子会社化", "経営統合",
	}
}

// Highlight splits text into spans, marking case-insensitive matches of any
// term. Matching is leftmost-longest and non-overlapping. Concatenating the
// span texts reproduces text exactly.
func Highlight(text string, terms []string) []Span {
	if text == "" {
		return nil
	}

	needles := make([][]rune, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			needles = append(needles, []rune(t))
		}
	}

	runes := []rune(text)
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(runes); {
		n := longestMatchAt(runes, i, needles)
		if n == 0 {
			plain.WriteRune(runes[i])
			i++
			continue
		}
		flush()
		spans = append(spans, Span{Text: string(runes[i : i+n]), Highlighted: true})
		i += n
	}
	flush()

	return spans
}

// longestMatchAt returns the rune length of the longest needle matching at
// position i, or 0.
func longestMatchAt(runes []rune, i int, needles [][]rune) int {
	best := 0
	for _, needle := range needles {
		n := len(needle)
		if n <= best || i+n > len(runes) {
			continue
		}
		if strings.EqualFold(string(runes[i:i+n]), string(needle)) {
			best = n
		}
	}
	return best
}
