package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the wage
// query engine and its data store.
type Metrics struct {
	ToolCalls        *prometheus.CounterVec   // labels: tool, outcome={success,error}
	ToolCallDuration *prometheus.HistogramVec // labels: tool

	// Data store metrics.
	StoreReads   *prometheus.CounterVec // labels: kind={occupations,areas,wage_table}, outcome={success,not_found,error}
	CacheLookups *prometheus.CounterVec // labels: kind, result={hit,miss}
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ToolCalls,
		m.ToolCallDuration,
		m.StoreReads,
		m.CacheLookups,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them,
// avoiding "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wage_query",
			Name:      "tool_calls_total",
			Help:      "Tool operation invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		ToolCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wage_query",
			Name:      "tool_call_duration_seconds",
			Help:      "Duration of a complete tool operation.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"tool"}),
		StoreReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wage_query",
			Name:      "store_reads_total",
			Help:      "Dataset file reads by kind and outcome.",
		}, []string{"kind", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wage_query",
			Name:      "cache_lookups_total",
			Help:      "Read-through cache lookups by kind and result.",
		}, []string{"kind", "result"}),
	}
}
