package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for loadgate components.
type Registry struct {
	// Rate Limiting Metrics
	RateLimitChecks   *prometheus.CounterVec
	RateLimitAllowed  *prometheus.CounterVec
	RateLimitDenied   *prometheus.CounterVec
	RateLimitFailOpen *prometheus.CounterVec

	// Load Testing Metrics
	LoadTestOps      *prometheus.CounterVec
	LoadTestFailures *prometheus.CounterVec
	LoadTestWorkers  *prometheus.GaugeVec
	PhaseDuration    *prometheus.HistogramVec
	OpLatency        *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by loadgate components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		RateLimitChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "loadgate",
				Subsystem: "ratelimit",
				Name:      "checks_total",
				Help:      "Total number of rate limit checks",
			},
			[]string{"limiter_name"},
		),

		RateLimitAllowed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "loadgate",
				Subsystem: "ratelimit",
				Name:      "allowed_total",
				Help:      "Total number of admitted checks",
			},
			[]string{"limiter_name"},
		),

		RateLimitDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "loadgate",
				Subsystem: "ratelimit",
				Name:      "denied_total",
				Help:      "Total number of denied checks",
			},
			[]string{"limiter_name"},
		),

		RateLimitFailOpen: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "loadgate",
				Subsystem: "ratelimit",
				Name:      "fail_open_total",
				Help:      "Total number of checks admitted because the backing store failed",
			},
			[]string{"limiter_name"},
		),

		LoadTestOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "loadgate",
				Subsystem: "loadtest",
				Name:      "operations_total",
				Help:      "Total number of load test operations attempted",
			},
			[]string{"phase"},
		),

		LoadTestFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "loadgate",
				Subsystem: "loadtest",
				Name:      "operation_failures_total",
				Help:      "Total number of failed load test operations",
			},
			[]string{"phase"},
		),

		LoadTestWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "loadgate",
				Subsystem: "loadtest",
				Name:      "workers_active",
				Help:      "Number of workers currently running a phase",
			},
			[]string{"phase"},
		),

		PhaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "loadgate",
				Subsystem: "loadtest",
				Name:      "phase_duration_seconds",
				Help:      "Wall-clock duration of load test phases",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"phase"},
		),

		OpLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "loadgate",
				Subsystem: "loadtest",
				Name:      "operation_duration_seconds",
				Help:      "Latency of individual load test operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
	}
}
