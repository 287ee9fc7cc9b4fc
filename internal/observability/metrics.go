package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, gauges, and histograms for loading
// and querying. Row-skip counts are a diagnostic channel only; loaders drop
// malformed rows silently either way.
type Metrics struct {
	RowsLoaded  *prometheus.CounterVec   // labels: source={measurements,geography}
	RowsSkipped *prometheus.CounterVec   // labels: source={measurements,geography}
	LoadSeconds *prometheus.HistogramVec // labels: source={measurements,geography}

	IndexKeys    *prometheus.GaugeVec   // labels: index={region,date,postal,area}
	QueriesTotal *prometheus.CounterVec // labels: dimension={zip,uhf,borough,date}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsSkipped,
		m.LoadSeconds,
		m.IndexKeys,
		m.QueriesTotal,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airquery",
			Name:      "rows_loaded_total",
			Help:      "Rows successfully parsed into the indexes, by source file.",
		}, []string{"source"}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airquery",
			Name:      "rows_skipped_total",
			Help:      "Malformed rows dropped during loading, by source file.",
		}, []string{"source"}),
		LoadSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "airquery",
			Name:      "load_duration_seconds",
			Help:      "Duration of a full load of one source file.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"source"}),
		IndexKeys: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "airquery",
			Name:      "index_keys",
			Help:      "Number of keys in each built index.",
		}, []string{"index"}),
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airquery",
			Name:      "queries_total",
			Help:      "Interactive queries served, by search dimension.",
		}, []string{"dimension"}),
	}
}
