package loadtest

import (
	"context"
	"time"
)

// Operation is a single unit of synthetic work driven by a worker. It
// reports a domain-level hit (cache hit, admitted check) and an error if
// the call failed.
type Operation func(ctx context.Context) (hit bool, err error)

// OperationFactory builds the operation a worker will run for a phase.
// Returning an error marks the worker as lost: it contributes no results
// and its share of operations is never attempted.
type OperationFactory func(workerID int) (Operation, error)

// worker executes its operation a fixed number of times, strictly
// sequentially, timing each call. Concurrency comes from running many
// workers in parallel, never from inside one worker.
type worker struct {
	id         int
	op         Operation
	iterations int
}

// run executes the worker's iterations and returns all collected results.
// A canceled context stops the worker at the next iteration boundary;
// results collected so far remain valid.
func (w *worker) run(ctx context.Context) []OperationResult {
	results := make([]OperationResult, 0, w.iterations)
	for i := 0; i < w.iterations; i++ {
		select {
		case <-ctx.Done():
			return results
		default:
		}
		results = append(results, w.call(ctx))
	}
	return results
}

// call times one operation. An operation that errors or panics is captured
// as a failed result rather than aborting the worker, so one failing call
// cannot lose the remaining iterations' data.
func (w *worker) call(ctx context.Context) (res OperationResult) {
	defer func() {
		if r := recover(); r != nil {
			res = OperationResult{}
		}
	}()

	start := time.Now()
	hit, err := w.op(ctx)
	elapsed := time.Since(start)

	if err != nil {
		return OperationResult{}
	}
	return OperationResult{Succeeded: true, Hit: hit, Elapsed: elapsed}
}
