package loadtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/llmops/loadgate/internal/testutil"
)

func TestWorker_RunsExactlyIterations(t *testing.T) {
	calls := 0
	w := &worker{
		id: 0,
		op: func(ctx context.Context) (bool, error) {
			calls++
			return true, nil
		},
		iterations: 17,
	}

	results := w.run(context.Background())
	testutil.AssertEqual(t, calls, 17)
	testutil.AssertEqual(t, len(results), 17)
	for _, r := range results {
		if !r.Succeeded {
			t.Fatal("all operations should have succeeded")
		}
	}
}

func TestWorker_FailedCallDoesNotAbort(t *testing.T) {
	opErr := errors.New("boom")
	calls := 0
	w := &worker{
		id: 0,
		op: func(ctx context.Context) (bool, error) {
			calls++
			if calls == 3 {
				return false, opErr
			}
			return true, nil
		},
		iterations: 10,
	}

	results := w.run(context.Background())
	testutil.AssertEqual(t, len(results), 10)

	failed := 0
	for _, r := range results {
		if !r.Succeeded {
			failed++
			// A failed call carries no usable latency.
			testutil.AssertEqual(t, r.Elapsed, time.Duration(0))
		}
	}
	testutil.AssertEqual(t, failed, 1)
}

func TestWorker_PanicIsCapturedAsFailure(t *testing.T) {
	calls := 0
	w := &worker{
		id: 0,
		op: func(ctx context.Context) (bool, error) {
			calls++
			if calls%2 == 0 {
				panic("operation panicked")
			}
			return true, nil
		},
		iterations: 6,
	}

	results := w.run(context.Background())
	testutil.AssertEqual(t, len(results), 6)

	failed := 0
	for _, r := range results {
		if !r.Succeeded {
			failed++
		}
	}
	testutil.AssertEqual(t, failed, 3)
}

func TestWorker_CanceledContextStopsAtBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	w := &worker{
		id: 0,
		op: func(ctx context.Context) (bool, error) {
			calls++
			if calls == 4 {
				cancel()
			}
			return true, nil
		},
		iterations: 100,
	}

	results := w.run(ctx)

	// Already-collected results remain valid after cancellation.
	testutil.AssertEqual(t, len(results), 4)
	testutil.AssertEqual(t, calls, 4)
}

func TestWorker_TimesEachCall(t *testing.T) {
	const d = 5 * time.Millisecond
	w := &worker{
		id: 0,
		op: func(ctx context.Context) (bool, error) {
			time.Sleep(d)
			return true, nil
		},
		iterations: 3,
	}

	for _, r := range w.run(context.Background()) {
		if r.Elapsed < d {
			t.Fatalf("elapsed %v should be at least the simulated duration %v", r.Elapsed, d)
		}
	}
}
