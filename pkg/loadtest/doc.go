/*
Package loadtest drives synthetic traffic against a target with many
concurrent workers and reduces the collected timings into throughput and
tail-latency figures.

A phase fans totalOps out over concurrency workers. Each worker runs its
share strictly sequentially, timing every call; a failing call is recorded
and the worker continues. The phase concludes only when every worker has
finished, then all results are reduced into one Report.

	h := loadtest.New()
	report, err := h.RunPhase(ctx, "GET", 100000, 100, func(workerID int) (loadtest.Operation, error) {
		return func(ctx context.Context) (bool, error) {
			v, err := client.Get(ctx, randomKey()).Result()
			return v != "", err
		}, nil
	})

Reports are classified by a Thresholds policy into qualitative bands
(excellent, good, needs improvement) for throughput, hit ratio and p95
latency. The Scheduler reruns phases on cron expressions for continuous
benchmarking.

The split of totalOps over workers truncates: 105 ops over 10 workers runs
exactly 100. Workers are isolated from each other; one worker's failure
never cancels its siblings, and a phase with partial failures still
completes with a best-effort report.
*/
package loadtest
