package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments exposed on /metrics.
type Metrics struct {
	PreprocessRuns    prometheus.Counter
	AnalysesRun       *prometheus.CounterVec
	TechniqueFailures *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// NewMetrics registers the application metrics on the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PreprocessRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "asrspulse_preprocess_runs_total",
			Help: "Number of successful preprocessing runs.",
		}),
		AnalysesRun: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asrspulse_analyses_total",
			Help: "Number of successful technique runs, by technique.",
		}, []string{"technique"}),
		TechniqueFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asrspulse_technique_failures_total",
			Help: "Number of failed technique runs, by technique.",
		}, []string{"technique"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asrspulse_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// NewDefaultMetrics registers on the default Prometheus registry.
func NewDefaultMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}
