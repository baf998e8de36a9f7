package loadtest

import (
	"testing"
	"time"

	"github.com/llmops/loadgate/internal/testutil"
)

func TestThresholds_Throughput(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		opsPerSec float64
		want      Band
	}{
		{250_000, Excellent},
		{100_000, Excellent}, // boundary is inclusive
		{99_999, Good},
		{50_000, Good},
		{49_999, NeedsImprovement},
		{0, NeedsImprovement},
	}

	for _, tt := range tests {
		if got := th.Throughput(tt.opsPerSec); got != tt.want {
			t.Errorf("Throughput(%v) = %v, want %v", tt.opsPerSec, got, tt.want)
		}
	}
}

func TestThresholds_HitRatio(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		ratio float64
		want  Band
	}{
		{0.95, Excellent},
		{0.90, Excellent},
		{0.89, Good},
		{0.70, Good},
		{0.50, NeedsImprovement},
	}

	for _, tt := range tests {
		if got := th.HitRatio(tt.ratio); got != tt.want {
			t.Errorf("HitRatio(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestThresholds_P95LowerIsBetter(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		latency time.Duration
		want    Band
	}{
		{time.Millisecond, Excellent},
		{10 * time.Millisecond, Excellent},
		{11 * time.Millisecond, Good},
		{50 * time.Millisecond, Good},
		{51 * time.Millisecond, NeedsImprovement},
	}

	for _, tt := range tests {
		if got := th.P95(tt.latency); got != tt.want {
			t.Errorf("P95(%v) = %v, want %v", tt.latency, got, tt.want)
		}
	}
}

func TestThresholds_AreConfiguration(t *testing.T) {
	// The classification logic is independent of the numbers chosen.
	th := Thresholds{
		ThroughputExcellent: 10,
		ThroughputGood:      5,
		HitRatioExcellent:   0.5,
		HitRatioGood:        0.25,
		P95Excellent:        time.Second,
		P95Good:             2 * time.Second,
	}

	testutil.AssertEqual(t, th.Throughput(7), Good)
	testutil.AssertEqual(t, th.HitRatio(0.3), Good)
	testutil.AssertEqual(t, th.P95(1500*time.Millisecond), Good)
}

func TestAssess(t *testing.T) {
	th := DefaultThresholds()
	report := &Report{
		OpsPerSec:  120_000,
		HitRatio:   0.75,
		P95Latency: 80 * time.Millisecond,
	}

	a := th.Assess(report)
	testutil.AssertEqual(t, a.Throughput, Excellent)
	testutil.AssertEqual(t, a.HitRatio, Good)
	testutil.AssertEqual(t, a.P95Latency, NeedsImprovement)
}

func TestBand_String(t *testing.T) {
	testutil.AssertEqual(t, Excellent.String(), "excellent")
	testutil.AssertEqual(t, Good.String(), "good")
	testutil.AssertEqual(t, NeedsImprovement.String(), "needs improvement")
}
