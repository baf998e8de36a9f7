package loadtest

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ReportSink receives each report a scheduled run produces.
type ReportSink func(*Report)

// RunFunc executes one scheduled benchmark run and returns its report.
type RunFunc func(ctx context.Context) (*Report, error)

// Scheduler runs benchmark phases on cron expressions, delivering each
// report to a sink. Expressions use the six-field format with seconds,
// plus descriptors like "@hourly".
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewScheduler creates a stopped Scheduler; call Start to begin running
// scheduled entries.
func NewScheduler(logger *zerolog.Logger) *Scheduler {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}

	parser := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	return &Scheduler{
		cron:   cron.New(cron.WithParser(parser)),
		logger: l,
	}
}

// Schedule registers a recurring benchmark run. A run that fails is logged
// and skipped; it never stops the schedule.
func (s *Scheduler) Schedule(expr, name string, run RunFunc, sink ReportSink) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(expr, func() {
		report, err := run(context.Background())
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("run", name).
				Msg("scheduled benchmark run failed")
			return
		}
		if report == nil {
			return
		}

		s.logger.Info().
			Str("run", name).
			Str("phase", report.Phase).
			Float64("ops_per_sec", report.OpsPerSec).
			Msg("scheduled benchmark run complete")

		if sink != nil {
			sink(report)
		}
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("run", name).
		Str("cron", expr).
		Msg("benchmark run scheduled")
	return id, nil
}

// Start begins executing scheduled runs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once any
// in-flight run has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
