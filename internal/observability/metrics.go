package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a check run.
type Metrics struct {
	RecordsRead     prometheus.Counter
	RecordsAccepted prometheus.Counter
	RecordsRejected *prometheus.CounterVec // labels: reason={fields,timestamp,value}
	PipelineRunning prometheus.Gauge

	AnalysisDuration *prometheus.HistogramVec // labels: analyzer={timing,directions,flux}
	RunDuration      prometheus.Histogram

	// Report outputs.
	ReportsPublished *prometheus.CounterVec // labels: sink, outcome={success,error}

	// Last run results.
	DataAvailability prometheus.Gauge
	TimingGlitches   prometheus.Gauge
	FluxOutliers     *prometheus.GaugeVec // labels: side={lower,upper}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsRead,
		m.RecordsAccepted,
		m.RecordsRejected,
		m.PipelineRunning,
		m.AnalysisDuration,
		m.RunDuration,
		m.ReportsPublished,
		m.DataAvailability,
		m.TimingGlitches,
		m.FluxOutliers,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sitecheck",
			Name:      "records_read_total",
			Help:      "Total data lines read from the combined file.",
		}),
		RecordsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sitecheck",
			Name:      "records_accepted_total",
			Help:      "Total lines accepted as observations.",
		}),
		RecordsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitecheck",
			Name:      "records_rejected_total",
			Help:      "Lines dropped by the record parser, by reason.",
		}, []string{"reason"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sitecheck",
			Name:      "pipeline_running",
			Help:      "1 while a check run is in progress.",
		}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sitecheck",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of each analyzer over the dataset.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"analyzer"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sitecheck",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-analyze-load run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		ReportsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitecheck",
			Name:      "reports_published_total",
			Help:      "Report deliveries by sink and outcome.",
		}, []string{"sink", "outcome"}),
		DataAvailability: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sitecheck",
			Name:      "data_availability_percent",
			Help:      "Data availability of the last analyzed dataset.",
		}),
		TimingGlitches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sitecheck",
			Name:      "timing_glitches",
			Help:      "Non-advancing time stamp pairs in the last analyzed dataset.",
		}),
		FluxOutliers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sitecheck",
			Name:      "flux_outliers",
			Help:      "H0 values outside the censoring bounds in the last analyzed dataset.",
		}, []string{"side"}),
	}
}
