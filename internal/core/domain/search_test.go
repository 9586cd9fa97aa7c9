package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchResult_DisplaySource(t *testing.T) {
	tests := []struct {
		name   string
		result SearchResult
		want   string
	}{
		{
			name:   "source title",
			result: SearchResult{SourceTitle: "日本経済新聞", Link: "https://www.nikkei.com/a"},
			want:   "日本経済新聞",
		},
		{
			name:   "host fallback",
			result: SearchResult{Link: "https://www.nikkei.com:443/article/1"},
			want:   "www.nikkei.com",
		},
		{
			name:   "bad link",
			result: SearchResult{Link: "://bad"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.DisplaySource())
		})
	}
}

func TestSearchResult_PreviewImage(t *testing.T) {
	assert.Equal(t, "https://img/x.jpg", SearchResult{ImageURL: "https://img/x.jpg"}.PreviewImage())
	assert.Equal(t, DefaultPreviewImageURL, SearchResult{}.PreviewImage())
}

func TestSearchOutcome_Status(t *testing.T) {
	tests := []struct {
		name    string
		outcome SearchOutcome
		want    OutcomeStatus
	}{
		{
			name:    "found",
			outcome: SearchOutcome{Results: []SearchResult{{Title: "x"}}},
			want:    OutcomeFound,
		},
		{
			name:    "empty",
			outcome: SearchOutcome{Candidates: 3},
			want:    OutcomeEmpty,
		},
		{
			name:    "failed",
			outcome: SearchOutcome{Err: errors.New("boom")},
			want:    OutcomeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Status())
		})
	}
}

func TestOutcomeStatus_Description(t *testing.T) {
	assert.Equal(t, "No M&A news found for today.", OutcomeEmpty.Description())
	assert.Equal(t, "Search failed", OutcomeFailed.Description())
	assert.Equal(t, unknownDescription, OutcomeStatus("x").Description())
}

func TestSearchOutcome_ErrorMessage(t *testing.T) {
	ok := SearchOutcome{}
	assert.Empty(t, ok.ErrorMessage())

	failed := SearchOutcome{Err: errors.New(" provider down ")}
	assert.Equal(t, "provider down", failed.ErrorMessage())
}
