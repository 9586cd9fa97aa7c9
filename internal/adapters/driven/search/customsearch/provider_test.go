package customsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

const searchResponse = `{
  "kind": "customsearch#search",
  "items": [
    {
      "title": "ソフトバンク、英社を買収",
      "link": "https://news.example.jp/a/1",
      "snippet": "ソフトバンクグループは...買収すると発表した。",
      "pagemap": {
        "cse_image": [{"src": "https://img.example.jp/cse.jpg"}],
        "metatags": [{
          "og:image": "https://img.example.jp/og.jpg",
          "og:site_name": "Example News",
          "article:published_time": "2026-03-14T09:30:00+09:00"
        }]
      }
    },
    {
      "title": "No pagemap",
      "link": "https://other.example.com/b",
      "snippet": "plain"
    },
    {
      "title": "OG only",
      "link": "https://third.example.com/c",
      "snippet": "TOB",
      "pagemap": {"metatags": [{"og:image": "https://img.example.com/og.png", "og:image:width": 1200}]}
    }
  ]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(context.Background(), Config{
		APIKey:            "test-key",
		SearchEngineID:    "test-cx",
		Endpoint:          srv.URL + "/",
		RequestsPerSecond: 1000,
		Burst:             100,
	})
	require.NoError(t, err)
	return p
}

func testRequest() domain.ProviderRequest {
	return domain.ProviderRequest{
		Query:      "(SoftBank) (買収 OR TOB) 2026-03-14",
		Recency:    domain.RecencyOneDay,
		MaxResults: 10,
		Sort:       domain.SortByDate,
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no key", cfg: Config{SearchEngineID: "cx"}},
		{name: "no engine", cfg: Config{APIKey: "key"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, domain.ErrNotConfigured)
			assert.Nil(t, p)
		})
	}
}

func TestProvider_Search_RequestParameters(t *testing.T) {
	requests := make(chan *http.Request, 1)
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		requests <- r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	})

	_, err := p.Search(context.Background(), testRequest())
	require.NoError(t, err)

	got := <-requests
	assert.Equal(t, http.MethodGet, got.Method)
	assert.True(t, strings.HasSuffix(got.URL.Path, "customsearch/v1"), got.URL.Path)
	q := got.URL.Query()
	key := q.Get("key")
	if key == "" {
		key = got.Header.Get("X-Goog-Api-Key")
	}
	assert.Equal(t, "test-key", key)
	assert.Equal(t, "test-cx", q.Get("cx"))
	assert.Equal(t, "(SoftBank) (買収 OR TOB) 2026-03-14", q.Get("q"))
	assert.Equal(t, "date", q.Get("sort"))
	assert.Equal(t, "10", q.Get("num"))
	assert.Equal(t, "d1", q.Get("dateRestrict"))
}

func TestProvider_Search_MapsItems(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponse))
	})

	results, err := p.Search(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, results, 3)

	first := results[0]
	assert.Equal(t, "ソフトバンク、英社を買収", first.Title)
	assert.Equal(t, "https://news.example.jp/a/1", first.Link)
	assert.Equal(t, "https://img.example.jp/cse.jpg", first.CSEImage)
	assert.Equal(t, "https://img.example.jp/og.jpg", first.OGImage)
	assert.Equal(t, "Example News", first.SourceTitle)
	assert.Equal(t, "2026-03-14T09:30:00+09:00", first.PublishedTime)

	second := results[1]
	assert.Equal(t, "No pagemap", second.Title)
	assert.Empty(t, second.CSEImage)
	assert.Empty(t, second.OGImage)
	assert.Empty(t, second.PublishedTime)

	third := results[2]
	assert.Empty(t, third.CSEImage)
	assert.Equal(t, "https://img.example.com/og.png", third.OGImage)
}

func TestProvider_Search_NoItems(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind": "customsearch#search"}`))
	})

	results, err := p.Search(context.Background(), testRequest())

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestProvider_Search_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		is     []error
		isNot  []error
	}{
		{
			name:   "invalid key",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"API key not valid.","errors":[{"reason":"badRequest"}]}}`,
			is:     []error{domain.ErrProviderFailed, domain.ErrUnauthorized},
			isNot:  []error{domain.ErrRateLimited},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"The caller does not have permission","errors":[{"reason":"forbidden"}]}}`,
			is:     []error{domain.ErrProviderFailed, domain.ErrUnauthorized},
		},
		{
			name:   "daily quota as 403",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"Daily Limit Exceeded","errors":[{"reason":"dailyLimitExceeded"}]}}`,
			is:     []error{domain.ErrProviderFailed, domain.ErrRateLimited},
			isNot:  []error{domain.ErrUnauthorized},
		},
		{
			name:   "too many requests",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"code":429,"message":"Quota exceeded"}}`,
			is:     []error{domain.ErrProviderFailed, domain.ErrRateLimited},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":{"code":500,"message":"backend"}}`,
			is:     []error{domain.ErrProviderFailed},
			isNot:  []error{domain.ErrRateLimited, domain.ErrUnauthorized},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			results, err := p.Search(context.Background(), testRequest())

			require.Error(t, err)
			assert.Nil(t, results)
			for _, target := range tt.is {
				assert.ErrorIs(t, err, target)
			}
			for _, target := range tt.isNot {
				assert.NotErrorIs(t, err, target)
			}
		})
	}
}

func TestProvider_Search_RateLimitOpensBackoff(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"slow down"}}`))
	})

	_, err := p.Search(context.Background(), testRequest())
	require.ErrorIs(t, err, domain.ErrRateLimited)

	until := p.limiter.backoffUntil()
	assert.WithinDuration(t, time.Now().Add(30*time.Second), until, 5*time.Second)

	// A second call waits for the back-off and gives up with the context.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.Search(ctx, testRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProvider_Search_CancelledContext(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Search(ctx, testRequest())

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrProviderFailed)
}
