package list

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dealwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

func sampleResults() []domain.SearchResult {
	published := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	return []domain.SearchResult{
		{
			Title:       "A社、B社を買収へ",
			Link:        "https://news.example.jp/a",
			Snippet:     "A社は18日、B社の全株式を取得すると発表した。",
			SourceTitle: "日経",
			PublishedAt: &published,
		},
		{
			Title:   "C社とD社が経営統合",
			Link:    "https://www.example.com/c",
			Snippet: "両社は経営統合に向けた基本合意書を締結。",
		},
		{
			Title:   "E社がTOBを開始",
			Link:    "https://e.example.org/tob",
			Snippet: "E社はF社株式に対する公開買付けを開始する。",
		},
	}
}

func TestNewResultList(t *testing.T) {
	list := NewResultList(styles.DefaultStyles())

	require.NotNil(t, list)
	assert.Equal(t, 0, list.Selected())
	assert.True(t, list.IsEmpty())
	assert.Equal(t, domain.DefaultHighlightTerms(), list.terms)
}

func TestNewResultList_NilStyles(t *testing.T) {
	list := NewResultList(nil)

	require.NotNil(t, list)
	assert.NotNil(t, list.styles)
}

func TestResultList_Init(t *testing.T) {
	assert.Nil(t, NewResultList(nil).Init())
}

func TestResultList_SetResults_ResetsSelection(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())
	list.MoveDown()

	list.SetResults(sampleResults()[:2])

	assert.Equal(t, 2, list.Count())
	assert.Equal(t, 0, list.Selected())
}

func TestResultList_Navigation(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())

	list.MoveUp()
	assert.Equal(t, 0, list.Selected())

	list.MoveDown()
	list.MoveDown()
	list.MoveDown()
	assert.Equal(t, 2, list.Selected())

	list.MoveUp()
	assert.Equal(t, 1, list.Selected())
}

func TestResultList_Update_Keys(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, list.Selected())
}

func TestResultList_SetSelected(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())

	list.SetSelected(2)
	assert.Equal(t, 2, list.Selected())

	list.SetSelected(10)
	assert.Equal(t, 2, list.Selected())

	list.SetSelected(-1)
	assert.Equal(t, 2, list.Selected())
}

func TestResultList_SelectedResult(t *testing.T) {
	list := NewResultList(nil)
	assert.Nil(t, list.SelectedResult())

	list.SetResults(sampleResults())
	list.MoveDown()

	result := list.SelectedResult()
	require.NotNil(t, result)
	assert.Equal(t, "C社とD社が経営統合", result.Title)
}

func TestResultList_View_Empty(t *testing.T) {
	assert.Contains(t, NewResultList(nil).View(), "No results")
}

func TestResultList_View_RendersFields(t *testing.T) {
	list := NewResultList(nil)
	list.SetDimensions(100, 40)
	list.SetResults(sampleResults())

	view := list.View()

	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, view, "A社、B社を")
	assert.Contains(t, view, "日経")
	assert.Contains(t, view, "www.example.com")
	assert.Contains(t, view, "全株式を取得すると発表した。")
	// Only the selected row shows its link.
	assert.Contains(t, view, "https://news.example.jp/a")
	assert.NotContains(t, view, "https://www.example.com/c")
}

func TestResultList_View_ScrollsToSelection(t *testing.T) {
	list := NewResultList(nil)
	list.SetDimensions(100, 6)
	list.SetResults(sampleResults())

	list.SetSelected(2)
	view := list.View()

	assert.Contains(t, view, "TOB")
	assert.NotContains(t, view, "B社を")
}

func TestResultList_View_UntitledResult(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults([]domain.SearchResult{{Link: "https://x.example.com/"}})

	assert.Contains(t, list.View(), "(Untitled)")
}

func TestResultList_SetHighlightTerms(t *testing.T) {
	list := NewResultList(nil)

	list.SetHighlightTerms([]string{"提携"})

	assert.Equal(t, []string{"提携"}, list.terms)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "買収", 20, "買収"},
		{"cut by runes", strings.Repeat("株", 30), 12, strings.Repeat("株", 9) + "..."},
		{"minimum width", "abcdefghijklmnop", 3, "abcdefg..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.n))
		})
	}
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("a\n b\t\tc "))
}
