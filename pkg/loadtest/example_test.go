package loadtest_test

import (
	"context"
	"fmt"
	"time"

	"github.com/llmops/loadgate/pkg/loadtest"
)

func ExampleHarness_RunPhase() {
	h := loadtest.New()

	report, err := h.RunPhase(context.Background(), "demo", 1000, 10,
		func(workerID int) (loadtest.Operation, error) {
			return func(ctx context.Context) (bool, error) {
				return true, nil
			}, nil
		})
	if err != nil {
		panic(err)
	}

	fmt.Printf("phase=%s ops=%d errors=%d\n", report.Phase, report.TotalOps, report.ErrorCount)

	// Output:
	// phase=demo ops=1000 errors=0
}

func ExampleThresholds_Assess() {
	report := &loadtest.Report{
		OpsPerSec:  62_000,
		HitRatio:   0.93,
		P95Latency: 4 * time.Millisecond,
	}

	a := loadtest.DefaultThresholds().Assess(report)
	fmt.Printf("throughput=%s hit_ratio=%s p95=%s\n", a.Throughput, a.HitRatio, a.P95Latency)

	// Output:
	// throughput=good hit_ratio=excellent p95=excellent
}
