// Package metrics records search and keyword activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.SearchRecorder = (*Recorder)(nil)

const namespace = "dealwatch"

// Recorder implements driven.SearchRecorder with Prometheus collectors.
type Recorder struct {
	searchesTotal   *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	candidatesTotal prometheus.Counter
	resultsTotal    prometheus.Counter
	keywordChanges  *prometheus.CounterVec

	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them through promhttp.Handler.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of searches by outcome",
			},
			[]string{"status"},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Search provider round trip in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		candidatesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_candidates_total",
				Help:      "Items returned by the provider before filtering",
			},
		),
		resultsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_results_total",
				Help:      "Items that passed the keyword filter",
			},
		),
		keywordChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "keyword_changes_total",
				Help:      "Persisted keyword taxonomy changes by operation",
			},
			[]string{"op"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(
		r.searchesTotal,
		r.searchDuration,
		r.candidatesTotal,
		r.resultsTotal,
		r.keywordChanges,
		r.httpRequestDuration,
		r.httpRequestsTotal,
	)
	return r
}

// RecordSearch records a finished search.
func (r *Recorder) RecordSearch(status domain.OutcomeStatus, candidates, results int, elapsed time.Duration) {
	r.searchesTotal.WithLabelValues(status.String()).Inc()
	r.searchDuration.Observe(elapsed.Seconds())
	r.candidatesTotal.Add(float64(candidates))
	r.resultsTotal.Add(float64(results))
}

// RecordKeywordChange records a persisted taxonomy mutation.
func (r *Recorder) RecordKeywordChange(op string) {
	r.keywordChanges.WithLabelValues(op).Inc()
}
