package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus gauges describing the last merge run.
// A merge is a batch job, so every value is a gauge set once per run.
type Metrics struct {
	RowsLoaded        *prometheus.GaugeVec // labels: station
	RowsWritten       prometheus.Gauge
	RowsOutsideWindow prometheus.Gauge
	RunDuration       prometheus.Gauge
	LastSuccess       prometheus.Gauge
	LastFailure       *prometheus.GaugeVec // labels: class={io,schema,data,unknown}
}

// NewMetrics creates the merge metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.RowsLoaded,
		m.RowsWritten,
		m.RowsOutsideWindow,
		m.RunDuration,
		m.LastSuccess,
		m.LastFailure,
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
		RowsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "et0_merge",
			Name:      "rows_loaded",
			Help:      "Rows read from each station archive in the last run.",
		}, []string{"station"}),
		RowsWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "et0_merge",
			Name:      "rows_written",
			Help:      "Rows written to the merged output in the last run.",
		}),
		RowsOutsideWindow: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "et0_merge",
			Name:      "rows_outside_window",
			Help:      "Merged rows dropped by the date window in the last run.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "et0_merge",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "et0_merge",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		LastFailure: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "et0_merge",
			Name:      "last_failure_timestamp_seconds",
			Help:      "Unix time of the last failed run, by failure class.",
		}, []string{"class"}),
	}
}
