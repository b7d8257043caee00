package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.ObserveRPC("/travelsplit.v1.TripService/GetTrip", "ok", 20*time.Millisecond)
	c.ObserveRPC("/travelsplit.v1.TripService/GetTrip", "ok", 10*time.Millisecond)
	c.ObserveRPC("/travelsplit.v1.TripService/GetTrip", "not_found", time.Millisecond)
	c.ObserveBalance("active", 4)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RPCRequests.WithLabelValues("/travelsplit.v1.TripService/GetTrip", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RPCRequests.WithLabelValues("/travelsplit.v1.TripService/GetTrip", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BalanceComputations.WithLabelValues("active")))

	// Two collectors never collide.
	other := NewCollector()
	assert.Equal(t, 0.0, testutil.ToFloat64(other.BalanceComputations.WithLabelValues("active")))
}

func TestHandler(t *testing.T) {
	c := NewCollector()
	c.ObserveBalance("full", 2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `travelsplit_balance_computations_total{policy="full"} 1`)
	assert.Contains(t, rec.Body.String(), "travelsplit_balance_expenses_considered_count 1")
}
