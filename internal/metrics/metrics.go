package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for relayed harness traffic
type Metrics struct {
	Runs        prometheus.Counter
	Completions prometheus.Counter
	TestsTotal  prometheus.Counter
	Results     *prometheus.CounterVec
	Dumps       prometheus.Counter
	TestTime    prometheus.Histogram
	Errors      *prometheus.CounterVec
}

// NewMetrics creates the collectors. They are not registered; see Register.
func NewMetrics() *Metrics {
	return &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tyrtlekarma_runs_total",
			Help: "Total number of runs that announced their test count",
		}),
		Completions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tyrtlekarma_completions_total",
			Help: "Total number of runs that reported completion",
		}),
		TestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tyrtlekarma_tests_announced_total",
			Help: "Sum of the test counts announced before each run",
		}),
		Results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tyrtlekarma_results_total",
			Help: "Total number of test results by outcome",
		}, []string{"outcome"}),
		Dumps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tyrtlekarma_dumps_total",
			Help: "Total number of dump messages",
		}),
		TestTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tyrtlekarma_test_duration_seconds",
			Help:    "Reported run time of individual tests",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tyrtlekarma_harness_errors_total",
			Help: "Total number of failed harness calls by call",
		}, []string{"call"}),
	}
}

// Register registers all collectors with reg
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.Runs, m.Completions, m.TestsTotal, m.Results, m.Dumps, m.TestTime, m.Errors,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the collectors in reg in the Prometheus exposition format
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
