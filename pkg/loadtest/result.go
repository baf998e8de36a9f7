package loadtest

import "time"

// OperationResult records the outcome of one timed call made by a worker.
// A failed call contributes to error counts but carries no usable latency,
// so failures can never shrink the apparent latency of a phase.
type OperationResult struct {
	// Succeeded reports whether the call completed without error.
	Succeeded bool

	// Hit reports a domain-level positive outcome (cache hit, admitted
	// check). Only meaningful when Succeeded is true.
	Hit bool

	// Elapsed is the call's duration. Zero and meaningless for failures.
	Elapsed time.Duration
}

// Report aggregates the results of one load test phase. It is immutable
// once produced: consumers read it, they never update it.
type Report struct {
	// Phase names the phase that produced this report (e.g. "SET", "GET").
	Phase string

	// TotalOps is the number of operations attempted, success or failure.
	TotalOps int

	// TotalTime is the phase's wall-clock duration, measured from just
	// before the first worker starts to just after the last worker's
	// results are collected.
	TotalTime time.Duration

	// OpsPerSec is attempted operations divided by TotalTime. Throughput
	// counts attempted work, not only successes.
	OpsPerSec float64

	// AvgLatency is the mean elapsed time over successful operations.
	AvgLatency time.Duration

	// P95Latency and P99Latency are nearest-rank percentiles over
	// successful operations only. They are zero when LatencySamples is
	// below MinPercentileSamples; check LatencySamples to tell an
	// insufficient sample from a true zero-latency result.
	P95Latency time.Duration
	P99Latency time.Duration

	// LatencySamples is the number of successful operations the latency
	// figures were computed over.
	LatencySamples int

	// ErrorCount is the number of failed operations. Lost workers are
	// tracked separately in LostWorkers.
	ErrorCount int

	// HitRatio is hits divided by attempted operations.
	HitRatio float64

	// LostWorkers is the number of workers whose setup failed entirely.
	// Their share of operations was never attempted and is not part of
	// TotalOps.
	LostWorkers int
}
