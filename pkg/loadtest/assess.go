package loadtest

import "time"

// Band is a qualitative performance classification.
type Band int

const (
	// NeedsImprovement is the lowest band.
	NeedsImprovement Band = iota

	// Good meets the baseline threshold.
	Good

	// Excellent meets the upper threshold.
	Excellent
)

// String returns the band's human-readable name.
func (b Band) String() string {
	switch b {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	default:
		return "needs improvement"
	}
}

// Thresholds are the numeric boundaries the assessment classifies against.
// They are configuration, not part of the algorithm; construct custom
// thresholds to tune the policy without touching the classification logic.
type Thresholds struct {
	// ThroughputExcellent and ThroughputGood are ops/sec lower bounds.
	ThroughputExcellent float64
	ThroughputGood      float64

	// HitRatioExcellent and HitRatioGood are ratio lower bounds in [0, 1].
	HitRatioExcellent float64
	HitRatioGood      float64

	// P95Excellent and P95Good are latency upper bounds; lower is better.
	P95Excellent time.Duration
	P95Good      time.Duration
}

// DefaultThresholds returns the thresholds used by the benchmark runner.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ThroughputExcellent: 100_000,
		ThroughputGood:      50_000,
		HitRatioExcellent:   0.90,
		HitRatioGood:        0.70,
		P95Excellent:        10 * time.Millisecond,
		P95Good:             50 * time.Millisecond,
	}
}

// Assessment classifies one report across its measured dimensions.
type Assessment struct {
	Throughput Band
	HitRatio   Band
	P95Latency Band
}

// Throughput classifies an ops/sec figure.
func (t Thresholds) Throughput(opsPerSec float64) Band {
	switch {
	case opsPerSec >= t.ThroughputExcellent:
		return Excellent
	case opsPerSec >= t.ThroughputGood:
		return Good
	default:
		return NeedsImprovement
	}
}

// HitRatio classifies a hit ratio.
func (t Thresholds) HitRatio(ratio float64) Band {
	switch {
	case ratio >= t.HitRatioExcellent:
		return Excellent
	case ratio >= t.HitRatioGood:
		return Good
	default:
		return NeedsImprovement
	}
}

// P95 classifies a p95 latency; lower is better. Callers should check
// Report.LatencySamples before trusting a zero-latency classification.
func (t Thresholds) P95(latency time.Duration) Band {
	switch {
	case latency <= t.P95Excellent:
		return Excellent
	case latency <= t.P95Good:
		return Good
	default:
		return NeedsImprovement
	}
}

// Assess classifies a whole report. It is a pure function of the report
// and the thresholds.
func (t Thresholds) Assess(r *Report) Assessment {
	return Assessment{
		Throughput: t.Throughput(r.OpsPerSec),
		HitRatio:   t.HitRatio(r.HitRatio),
		P95Latency: t.P95(r.P95Latency),
	}
}
