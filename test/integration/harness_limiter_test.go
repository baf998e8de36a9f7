// Package integration contains integration tests that verify cross-package functionality.
// These tests ensure that different components work together correctly in realistic scenarios.
package integration

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/llmops/loadgate/internal/testutil"
	"github.com/llmops/loadgate/pkg/loadtest"
	"github.com/llmops/loadgate/pkg/ratelimit/slidingwindow"
)

// TestHarnessWithSlidingWindow drives the sliding-window limiter through the
// load harness and verifies that the aggregated report reflects the limiter's
// admission decisions.
func TestHarnessWithSlidingWindow(t *testing.T) {
	const (
		limit       = 50
		totalOps    = 200
		concurrency = 10
	)

	limiter, err := slidingwindow.New(slidingwindow.NewMemoryStore(), limit, time.Minute)
	testutil.AssertNoError(t, err)

	harness := loadtest.New()

	factory := func(workerID int) (loadtest.Operation, error) {
		return func(ctx context.Context) (bool, error) {
			return limiter.Check(ctx, "shared-client").Allowed, nil
		}, nil
	}

	report, err := harness.RunPhase(context.Background(), "RATELIMIT", totalOps, concurrency, factory)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, report.TotalOps, totalOps)
	testutil.AssertEqual(t, report.ErrorCount, 0)
	testutil.AssertEqual(t, report.LostWorkers, 0)

	// All 200 checks target one key within one window, so exactly the
	// window limit is admitted no matter how the workers interleave.
	hits := int(math.Round(report.HitRatio * float64(report.TotalOps)))
	testutil.AssertEqual(t, hits, limit)

	if report.OpsPerSec <= 0 {
		t.Errorf("expected positive throughput, got %f", report.OpsPerSec)
	}
}

// TestHarnessWithPerClientKeys verifies that distinct clients get independent
// windows when each worker checks its own key.
func TestHarnessWithPerClientKeys(t *testing.T) {
	const (
		limit       = 20
		opsPerKey   = 30
		concurrency = 5
	)

	limiter, err := slidingwindow.New(slidingwindow.NewMemoryStore(), limit, time.Minute)
	testutil.AssertNoError(t, err)

	harness := loadtest.New()

	factory := func(workerID int) (loadtest.Operation, error) {
		key := "client-" + string(rune('a'+workerID))
		return func(ctx context.Context) (bool, error) {
			return limiter.Check(ctx, key).Allowed, nil
		}, nil
	}

	report, err := harness.RunPhase(context.Background(), "RATELIMIT", opsPerKey*concurrency, concurrency, factory)
	testutil.AssertNoError(t, err)

	// Each worker owns one key and runs 30 checks against a limit of 20,
	// so 20 of its checks are admitted.
	hits := int(math.Round(report.HitRatio * float64(report.TotalOps)))
	testutil.AssertEqual(t, hits, limit*concurrency)

	assessment := loadtest.DefaultThresholds().Assess(report)
	testutil.AssertEqual(t, assessment.HitRatio, loadtest.NeedsImprovement)
}
