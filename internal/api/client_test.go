package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/assetflow-tui/internal/cache"
	"github.com/altinukshini/assetflow-tui/internal/metrics"
	"github.com/altinukshini/assetflow-tui/internal/model"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestServer(t *testing.T, router *mux.Router) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestListAssetsSendsTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	router := mux.NewRouter()
	router.HandleFunc("/api/atms", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		writeJSON(w, []model.Asset{{ID: 1, Name: "ATM-001"}, {ID: 2, Name: "ATM-002"}})
	}).Methods(http.MethodGet)
	srv := newTestServer(t, router)

	c := NewClient(srv.URL+"/api/", WithToken("tok"), WithLogger(quietLogger()))
	assets, err := c.ListAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "ATM-002", assets[1].Name)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, srv.URL+"/api", c.BaseURL())
}

func TestListEndpoints(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/movements", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.Movement{{ID: 7, FromLocation: "Pune"}})
	})
	router.HandleFunc("/vendors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.Vendor{{ID: 3, Name: "Acme"}})
	})
	router.HandleFunc("/costings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.Costing{{ID: 9, BillingStatus: "Pending"}})
	})
	srv := newTestServer(t, router)
	c := NewClient(srv.URL, WithLogger(quietLogger()))
	ctx := context.Background()

	movements, err := c.ListMovements(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), movements[0].ID)

	vendors, err := c.ListVendors(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme", vendors[0].Name)

	costings, err := c.ListCostings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pending", costings[0].BillingStatus)
}

func TestStatusErrors(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/atms", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})
	router.HandleFunc("/vendors", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := newTestServer(t, router)
	c := NewClient(srv.URL, WithLogger(quietLogger()))

	_, err := c.ListAssets(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = c.ListVendors(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "/vendors", se.Path)
	assert.Contains(t, err.Error(), "boom")
}

func TestGetUsesResponseCache(t *testing.T) {
	var hits atomic.Int32
	router := mux.NewRouter()
	router.HandleFunc("/vendors", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, []model.Vendor{{ID: 1, Name: "Acme"}})
	})
	srv := newTestServer(t, router)
	m := metrics.New()
	c := NewClient(srv.URL,
		WithCache(cache.NewResponseCache(8, time.Minute)),
		WithMetrics(m),
		WithLogger(quietLogger()),
	)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.ListVendors(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("GET", "200")))

	c.PurgeCache()
	_, err := c.ListVendors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestSetTokenDropsCache(t *testing.T) {
	var hits atomic.Int32
	router := mux.NewRouter()
	router.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, model.User{ID: 1, Email: r.Header.Get("Authorization")})
	})
	srv := newTestServer(t, router)
	c := NewClient(srv.URL,
		WithToken("a"),
		WithCache(cache.NewResponseCache(8, time.Minute)),
		WithLogger(quietLogger()),
	)

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer a", u.Email)

	c.SetToken("b")
	u, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer b", u.Email)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLogin(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Password != "secret" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		writeJSON(w, model.AuthResponse{
			Token: "jwt",
			Type:  "Bearer",
			User:  model.User{ID: 5, Email: req.Email, Name: "Priya"},
		})
	}).Methods(http.MethodPost)
	srv := newTestServer(t, router)
	c := NewClient(srv.URL, WithLogger(quietLogger()))

	resp, err := c.Login(context.Background(), "priya@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, "priya@example.com", resp.User.Email)
	assert.Empty(t, c.Token(), "login does not apply the token itself")

	_, err = c.Login(context.Background(), "priya@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func dashboardRouter(t *testing.T) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/dashboard/kpis", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.DashboardKPIs{TotalAssets: 40, ActiveVendors: 3})
	})
	router.HandleFunc("/dashboard/charts/distribution", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"name":"Active","value":30,"color":"#22c55e"},{"name":"Idle","value":"10"}]`)
	})
	router.HandleFunc("/dashboard/charts/vendor-allocation", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.ChartPoint{{Name: "Acme", Value: 12}})
	})
	router.HandleFunc("/dashboard/recent-movements", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		writeJSON(w, []model.Movement{{ID: 1}, {ID: 2}})
	})
	router.HandleFunc("/movements", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.Movement{{ID: 1}, {ID: 2}, {ID: 3}})
	})
	router.HandleFunc("/costings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.Costing{
			{ID: 1, FinalAmount: 1000.5, VendorCost: 800},
			{ID: 2, FinalAmount: 250, VendorCost: 200.25},
		})
	})
	return router
}

func TestLoadDashboard(t *testing.T) {
	srv := newTestServer(t, dashboardRouter(t))
	c := NewClient(srv.URL, WithLogger(quietLogger()))

	d, err := c.LoadDashboard(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, d.Unavailable)
	assert.Equal(t, int64(40), d.KPIs.TotalAssets)
	require.Len(t, d.Distribution, 2)
	assert.Equal(t, model.ChartValue(10), d.Distribution[1].Value)
	assert.Len(t, d.VendorAllocation, 1)
	assert.Len(t, d.RecentMovements, 2)
	assert.Equal(t, 3, d.Totals.Movements)
	assert.InDelta(t, 1250.5, d.Totals.FinalCostings, 0.001)
	assert.InDelta(t, 1000.25, d.Totals.VendorCosts, 0.001)
}

func TestLoadDashboardKeepsOtherSectionsWhenOneFails(t *testing.T) {
	router := dashboardRouter(t)
	// Anything but kpis falls through to the healthy routes.
	failing := mux.NewRouter()
	failing.HandleFunc("/dashboard/kpis", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	failing.NotFoundHandler = router
	srv := newTestServer(t, failing)
	c := NewClient(srv.URL, WithLogger(quietLogger()))

	d, err := c.LoadDashboard(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{SectionKPIs}, d.Unavailable)
	assert.Zero(t, d.KPIs.TotalAssets)
	assert.Len(t, d.Distribution, 2)
	assert.Len(t, d.VendorAllocation, 1)
	assert.Len(t, d.RecentMovements, 2)
	assert.Equal(t, 3, d.Totals.Movements)
}

func TestLoadDashboardFailsWhenEverySectionFails(t *testing.T) {
	router := mux.NewRouter()
	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	})
	srv := newTestServer(t, router)
	c := NewClient(srv.URL, WithLogger(quietLogger()))

	_, err := c.LoadDashboard(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
