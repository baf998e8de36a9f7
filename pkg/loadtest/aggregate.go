package loadtest

import (
	"math"
	"sort"
	"time"
)

// MinPercentileSamples is the smallest successful-sample count percentiles
// are computed over. Below it P95Latency and P99Latency stay zero and
// Report.LatencySamples tells the two cases apart.
const MinPercentileSamples = 20

// Reduce collapses a phase's results into a Report.
//
// Throughput counts attempted operations because the system under test was
// asked to do that much work. Latency figures use successful operations
// only, so failed calls cannot contribute near-zero fake durations.
func Reduce(results []OperationResult, totalTime time.Duration) *Report {
	report := &Report{
		TotalOps:  len(results),
		TotalTime: totalTime,
	}

	hits := 0
	durations := make([]time.Duration, 0, len(results))
	for _, r := range results {
		if !r.Succeeded {
			report.ErrorCount++
			continue
		}
		if r.Hit {
			hits++
		}
		durations = append(durations, r.Elapsed)
	}
	report.LatencySamples = len(durations)

	if totalTime > 0 {
		report.OpsPerSec = float64(report.TotalOps) / totalTime.Seconds()
	}
	if report.TotalOps > 0 {
		report.HitRatio = float64(hits) / float64(report.TotalOps)
	}

	if len(durations) == 0 {
		return report
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	report.AvgLatency = sum / time.Duration(len(durations))

	if len(durations) >= MinPercentileSamples {
		report.P95Latency = percentile(durations, 0.95)
		report.P99Latency = percentile(durations, 0.99)
	}

	return report
}

// percentile selects the nearest-rank percentile from an ascending sample:
// index ceil(p*n)-1, clamped to the sample bounds. No interpolation.
func percentile(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}
