package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do"
)

// Metrics groups all Prometheus instruments used by the service. Each
// instance carries its own registry so repeated construction never trips
// duplicate registration.
type Metrics struct {
	Turns              *prometheus.CounterVec
	GenerationFailures prometheus.Counter
	ActiveSessions     prometheus.Gauge
	TurnDuration       prometheus.Histogram

	registry *prometheus.Registry
}

func New(_ *do.Injector) (*Metrics, error) {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopassist",
			Name:      "turns_total",
			Help:      "Completed conversation turns by classified intent.",
		}, []string{"intent"}),
		GenerationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shopassist",
			Name:      "generation_failures_total",
			Help:      "Generation service calls that degraded to the fallback apology.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "shopassist",
			Name:      "active_sessions",
			Help:      "Conversation contexts currently held in memory.",
		}),
		TurnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shopassist",
			Name:      "turn_duration_seconds",
			Help:      "Wall time of a full conversation turn.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		registry: registry,
	}, nil
}

func (m *Metrics) ObserveTurn(intent string, d time.Duration) {
	m.Turns.WithLabelValues(intent).Inc()
	m.TurnDuration.Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
