/*
Package loadgate provides a sliding-window rate limiter with pluggable
storage and a concurrent load-testing harness for benchmarking it.

Rate Limiting (pkg/ratelimit):
  - slidingwindow: Sliding-window limiter over a time-indexed Store
    (in-memory or Redis sorted sets), with fail-open error handling

Load Testing (pkg/loadtest):
  - harness: Concurrent phase runner with per-worker operation factories
  - aggregate: Throughput, latency percentiles, and hit-ratio reports
  - assess: Threshold-based performance bands for reports
  - scheduler: Cron-driven recurring benchmark runs

Example usage:

	import (
		"github.com/llmops/loadgate/pkg/loadtest"
		"github.com/llmops/loadgate/pkg/ratelimit/slidingwindow"
	)

	limiter, _ := slidingwindow.New(slidingwindow.NewMemoryStore(), 100, time.Minute)

	decision := limiter.Check(ctx, "client-1")
	if decision.Allowed {
		// proceed, decision.Remaining checks left in the window
	}
*/
package loadgate
