package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordAPIRequest("GET", 200)
	m.RecordCacheLookup(true)
	m.RecordSearch(time.Second)
	m.RecordSourceFailure("asset")
	m.RecordHighlight("found")
	assert.Nil(t, m.Registry())
}

func TestCounters(t *testing.T) {
	m := New()
	m.RecordAPIRequest("GET", 200)
	m.RecordAPIRequest("GET", 200)
	m.RecordAPIRequest("GET", 500)
	m.RecordCacheLookup(true)
	m.RecordCacheLookup(false)
	m.RecordSearch(10 * time.Millisecond)
	m.RecordSourceFailure("vendor")
	m.RecordHighlight("exhausted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("GET", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchSourceFailures.WithLabelValues("vendor")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HighlightsTotal.WithLabelValues("exhausted")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordSearch(time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "assetflow_searches_total 1"))
}
