package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTurn(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)

	m.ObserveTurn("product_search", 120*time.Millisecond)
	m.ObserveTurn("product_search", 80*time.Millisecond)
	m.ObserveTurn("general", 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Turns.WithLabelValues("product_search")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Turns.WithLabelValues("general")))
}

func TestIsolatedRegistries(t *testing.T) {
	first, err := New(nil)
	require.NoError(t, err)

	second, err := New(nil)
	require.NoError(t, err)

	first.GenerationFailures.Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(first.GenerationFailures))
	assert.Equal(t, float64(0), testutil.ToFloat64(second.GenerationFailures))
}

func TestHandlerExposesInstruments(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)

	m.ActiveSessions.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "shopassist_active_sessions 3")
}
