package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// planning service.
type Metrics struct {
	PlanRequests    *prometheus.CounterVec   // labels: action, outcome={success,validation_error,unsupported_action,internal_error}
	RequestDuration *prometheus.HistogramVec // labels: action

	WeatherLookups *prometheus.CounterVec // labels: outcome={success,failure,unavailable}

	TyponymRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	MapReferences   *prometheus.CounterVec // labels: outcome={success,failure}
	Summaries       *prometheus.CounterVec // labels: outcome={success,failure}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}

	PlannerReady prometheus.Gauge
}

// NewMetrics creates and registers all planner metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.PlanRequests,
		m.RequestDuration,
		m.WeatherLookups,
		m.TyponymRequests,
		m.MapReferences,
		m.Summaries,
		m.GeocodeCache,
		m.PlannerReady,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registration to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PlanRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sar_planner",
			Name:      "plan_requests_total",
			Help:      "Planning requests by action and outcome.",
		}, []string{"action", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sar_planner",
			Name:      "request_duration_seconds",
			Help:      "End-to-end planning request duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"action"}),
		WeatherLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sar_planner",
			Name:      "weather_lookups_total",
			Help:      "Weather candidate lookups by outcome.",
		}, []string{"outcome"}),
		TyponymRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sar_planner",
			Name:      "typonym_requests_total",
			Help:      "Typonym collaborator calls by outcome.",
		}, []string{"outcome"}),
		MapReferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sar_planner",
			Name:      "map_references_total",
			Help:      "Static map reference builds by outcome.",
		}, []string{"outcome"}),
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sar_planner",
			Name:      "summaries_total",
			Help:      "Summarization collaborator calls by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sar_planner",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache lookups by result.",
		}, []string{"result"}),
		PlannerReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sar_planner",
			Name:      "ready",
			Help:      "1 when the planner is serving, 0 during shutdown.",
		}),
	}
}
