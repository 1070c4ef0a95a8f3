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

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics()

	m.RecordRoundTrip(OutcomeSuccess, 200*time.Millisecond)
	m.RecordRoundTrip(OutcomeSuccess, time.Second)
	m.RecordRoundTrip(OutcomeSuperseded, time.Second)
	m.RecordHistoryFetch(OutcomeError)
	m.RecordRedirect("/login")
	m.SetViewsActive(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RoundTripsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundTripsTotal.WithLabelValues(OutcomeSuperseded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryFetchesTotal.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RedirectsTotal.WithLabelValues("/login")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ViewsActive))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRoundTrip(OutcomeError, time.Second)
		m.RecordHistoryFetch(OutcomeSuccess)
		m.RecordRedirect("/login")
		m.SetViewsActive(1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordRedirect("/dashboard")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `askai_redirects_total{target="/dashboard"} 1`)
}
