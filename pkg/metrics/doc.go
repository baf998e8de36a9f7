// Package metrics provides Prometheus instrumentation for loadgate components.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Rate limiter with metrics
//	limiter, err := slidingwindow.NewWithConfigAndMetrics(cfg, "api_requests", metrics.Config{Enabled: true})
//
//	// Load harness with metrics
//	harness := loadtest.NewWithConfig(loadtest.Config{Metrics: metrics.Config{Enabled: true}})
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
// # Available Metrics
//
// ## Rate Limiting Metrics
//
//   - loadgate_ratelimit_checks_total: Total number of rate limit checks
//   - loadgate_ratelimit_allowed_total: Total number of admitted checks
//   - loadgate_ratelimit_denied_total: Total number of denied checks
//   - loadgate_ratelimit_fail_open_total: Checks admitted because the backing store failed
//
// ## Load Testing Metrics
//
//   - loadgate_loadtest_operations_total: Total number of operations attempted
//   - loadgate_loadtest_operation_failures_total: Total number of failed operations
//   - loadgate_loadtest_workers_active: Workers currently running a phase
//   - loadgate_loadtest_phase_duration_seconds: Wall-clock duration of phases
//   - loadgate_loadtest_operation_duration_seconds: Latency of individual operations
//
// # Labels
//
//   - limiter_name: User-provided name for the limiter instance
//   - phase: Name of the load test phase (e.g. "SET", "GET", "RATELIMIT")
package metrics
