package loadtest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/llmops/loadgate/pkg/common/validation"
	"github.com/llmops/loadgate/pkg/metrics"
)

// Config holds configuration options for creating a Harness.
type Config struct {
	// Logger receives phase lifecycle events. If nil, a no-op logger is used.
	Logger *zerolog.Logger

	// Metrics enables Prometheus instrumentation of phases.
	Metrics metrics.Config
}

// Harness fans a phase's operations out over concurrent workers and fans
// their results back in. It owns the lifetime of its workers: it creates
// them per phase, waits for all of them, and never shares a worker across
// phases.
type Harness struct {
	logger   zerolog.Logger
	registry *metrics.Registry
}

// New creates a Harness with default options.
func New() *Harness {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a Harness from the given configuration.
func NewWithConfig(config Config) *Harness {
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	h := &Harness{logger: logger}
	if config.Metrics.Enabled {
		h.registry = metrics.DefaultRegistry
		if config.Metrics.Registry != nil {
			h.registry = metrics.NewRegistry(config.Metrics.Registry)
		}
	}
	return h
}

// RunPhase splits totalOps across concurrency workers, runs them all
// concurrently, and reduces every collected result into one Report.
//
// The split truncates: each worker runs totalOps/concurrency operations and
// any remainder is dropped, so the count actually run never exceeds
// totalOps. The phase concludes only after every worker has finished or
// explicitly failed; a worker whose setup fails is recorded as lost and
// does not cancel its siblings. Only invalid arguments return an error;
// a phase with partial failures still completes with a best-effort report.
func (h *Harness) RunPhase(ctx context.Context, name string, totalOps, concurrency int, factory OperationFactory) (*Report, error) {
	if err := validation.ValidatePositive("loadtest", "concurrency", concurrency); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("loadtest", "total_ops", totalOps); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, validation.ValidateNotNil("loadtest", "factory", nil)
	}

	opsPerWorker := totalOps / concurrency

	h.logger.Info().
		Str("phase", name).
		Int("total_ops", opsPerWorker*concurrency).
		Int("concurrency", concurrency).
		Msg("starting load test phase")

	if h.registry != nil {
		h.registry.LoadTestWorkers.WithLabelValues(name).Set(float64(concurrency))
		defer h.registry.LoadTestWorkers.WithLabelValues(name).Set(0)
	}

	var (
		wg       sync.WaitGroup
		lost     int32
		resultCh = make(chan []OperationResult, concurrency)
	)

	start := time.Now()
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			op, err := factory(id)
			if err != nil {
				atomic.AddInt32(&lost, 1)
				h.logger.Error().
					Err(err).
					Str("phase", name).
					Int("worker", id).
					Msg("worker setup failed, dropping its share")
				return
			}

			w := &worker{id: id, op: op, iterations: opsPerWorker}
			resultCh <- w.run(ctx)
		}(i)
	}
	wg.Wait()
	close(resultCh)
	totalTime := time.Since(start)

	var results []OperationResult
	for rs := range resultCh {
		results = append(results, rs...)
	}

	report := Reduce(results, totalTime)
	report.Phase = name
	report.LostWorkers = int(atomic.LoadInt32(&lost))

	if h.registry != nil {
		h.registry.LoadTestOps.WithLabelValues(name).Add(float64(report.TotalOps))
		h.registry.LoadTestFailures.WithLabelValues(name).Add(float64(report.ErrorCount))
		h.registry.PhaseDuration.WithLabelValues(name).Observe(totalTime.Seconds())
		for _, r := range results {
			if r.Succeeded {
				h.registry.OpLatency.WithLabelValues(name).Observe(r.Elapsed.Seconds())
			}
		}
	}

	h.logger.Info().
		Str("phase", name).
		Int("total_ops", report.TotalOps).
		Dur("total_time", report.TotalTime).
		Float64("ops_per_sec", report.OpsPerSec).
		Int("errors", report.ErrorCount).
		Int("lost_workers", report.LostWorkers).
		Msg("load test phase complete")

	return report, nil
}
