// Package metrics exposes Prometheus counters for API traffic, search and
// highlighting. A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Metrics struct {
	registry *prometheus.Registry

	APIRequestsTotal     *prometheus.CounterVec
	CacheLookupsTotal    *prometheus.CounterVec
	SearchesTotal        prometheus.Counter
	SearchDuration       prometheus.Histogram
	SearchSourceFailures *prometheus.CounterVec
	HighlightsTotal      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetflow_api_requests_total",
				Help: "AssetFlow API requests by method and status code",
			},
			[]string{"method", "status"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetflow_cache_lookups_total",
				Help: "Response cache lookups by result",
			},
			[]string{"result"},
		),
		SearchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "assetflow_searches_total",
				Help: "Global searches executed",
			},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetflow_search_duration_seconds",
				Help:    "Wall-clock duration of a global search fan-out",
				Buckets: prometheus.DefBuckets,
			},
		),
		SearchSourceFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetflow_search_source_failures_total",
				Help: "Collection fetches that failed during a search",
			},
			[]string{"entity"},
		),
		HighlightsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetflow_highlights_total",
				Help: "Row highlight attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(
		m.APIRequestsTotal,
		m.CacheLookupsTotal,
		m.SearchesTotal,
		m.SearchDuration,
		m.SearchSourceFailures,
		m.HighlightsTotal,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordAPIRequest(method string, status int) {
	if m == nil {
		return
	}
	m.APIRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordSearch(d time.Duration) {
	if m == nil {
		return
	}
	m.SearchesTotal.Inc()
	m.SearchDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordSourceFailure(entity string) {
	if m == nil {
		return
	}
	m.SearchSourceFailures.WithLabelValues(entity).Inc()
}

// RecordHighlight counts a finished highlight: "found" or "exhausted".
func (m *Metrics) RecordHighlight(outcome string) {
	if m == nil {
		return
	}
	m.HighlightsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr in the background. The returned server
// should be closed on exit.
func (m *Metrics) Serve(addr string, log logrus.FieldLogger) *http.Server {
	r := mux.NewRouter()
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).WithField("addr", addr).Error("metrics server stopped")
		}
	}()
	return srv
}
