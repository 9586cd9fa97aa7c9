package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterResults(t *testing.T) {
	raw := []RawResult{
		{Title: "Company announces merger", Snippet: "..."},
		{Title: "Unrelated news", Snippet: "nothing here"},
	}

	got := FilterResults(raw, []string{"merger"})

	require.Len(t, got, 1)
	assert.Equal(t, "Company announces merger", got[0].Title)
}

func TestFilterResults_Matching(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawResult
		keywords []string
		keep     bool
	}{
		{
			name:     "title match",
			raw:      RawResult{Title: "ソフトバンクが買収を発表"},
			keywords: []string{"買収"},
			keep:     true,
		},
		{
			name:     "snippet match",
			raw:      RawResult{Title: "速報", Snippet: "TOBを実施"},
			keywords: []string{"TOB"},
			keep:     true,
		},
		{
			name:     "case-insensitive",
			raw:      RawResult{Title: "Big m&a deal"},
			keywords: []string{"M&A"},
			keep:     true,
		},
		{
			name:     "no match",
			raw:      RawResult{Title: "決算発表", Snippet: "増収増益"},
			keywords: []string{"買収", "合併"},
			keep:     false,
		},
		{
			name:     "empty keyword never matches",
			raw:      RawResult{Title: "anything"},
			keywords: []string{""},
			keep:     false,
		},
		{
			name:     "no keywords",
			raw:      RawResult{Title: "anything"},
			keywords: nil,
			keep:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterResults([]RawResult{tt.raw}, tt.keywords)
			if tt.keep {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestFilterResults_PreservesOrder(t *testing.T) {
	raw := []RawResult{
		{Title: "c merger", Link: "https://c.example"},
		{Title: "b other", Link: "https://b.example"},
		{Title: "a merger", Link: "https://a.example"},
		{Title: "d", Snippet: "MERGER", Link: "https://d.example"},
	}

	got := FilterResults(raw, []string{"merger"})

	require.Len(t, got, 3)
	assert.Equal(t, "https://c.example", got[0].Link)
	assert.Equal(t, "https://a.example", got[1].Link)
	assert.Equal(t, "https://d.example", got[2].Link)
}

func TestFilterResults_Empty(t *testing.T) {
	got := FilterResults(nil, []string{"merger"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRawResult_ToSearchResult(t *testing.T) {
	t.Run("cse image preferred", func(t *testing.T) {
		r := RawResult{CSEImage: "https://img/cse.jpg", OGImage: "https://img/og.jpg"}
		assert.Equal(t, "https://img/cse.jpg", r.ToSearchResult().ImageURL)
	})

	t.Run("og image fallback", func(t *testing.T) {
		r := RawResult{OGImage: "https://img/og.jpg"}
		assert.Equal(t, "https://img/og.jpg", r.ToSearchResult().ImageURL)
	})

	t.Run("no image", func(t *testing.T) {
		res := RawResult{}.ToSearchResult()
		assert.Empty(t, res.ImageURL)
		assert.Equal(t, DefaultPreviewImageURL, res.PreviewImage())
	})

	t.Run("published time parsed", func(t *testing.T) {
		res := RawResult{PublishedTime: "2026-03-14T09:30:00+09:00"}.ToSearchResult()
		require.NotNil(t, res.PublishedAt)
		assert.Equal(t, 2026, res.PublishedAt.Year())
		assert.Equal(t, time.March, res.PublishedAt.Month())
	})

	t.Run("bad published time", func(t *testing.T) {
		res := RawResult{PublishedTime: "yesterday"}.ToSearchResult()
		assert.Nil(t, res.PublishedAt)
	})
}

func TestParsePublishedTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *time.Time
	}{
		{name: "empty", value: ""},
		{name: "garbage", value: "not a date"},
		{
			name:  "rfc3339",
			value: "2026-03-14T09:30:00Z",
			want:  ptrTime(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:  "fractional seconds",
			value: "2026-03-14T09:30:00.123Z",
			want:  ptrTime(time.Date(2026, 3, 14, 9, 30, 0, 123000000, time.UTC)),
		},
		{
			name:  "missing zone",
			value: "2026-03-14T09:30:00",
			want:  ptrTime(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:  "date only",
			value: " 2026-03-14 ",
			want:  ptrTime(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePublishedTime(tt.value)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v", got)
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
