package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/llmops/loadgate/internal/config"
	"github.com/llmops/loadgate/pkg/loadtest"
	"github.com/llmops/loadgate/pkg/ratelimit/slidingwindow"
)

const (
	cacheKeyPrefix = "load_test:key:"
	valueTTL       = 5 * time.Minute
	populateTTL    = 10 * time.Minute
	populateBatch  = 1000
)

// suite runs the benchmark phases against the backing store and the
// rate limiter protecting it.
type suite struct {
	client  *redis.Client
	harness *loadtest.Harness
	limiter slidingwindow.Limiter
	cfg     *config.Config
	policy  loadtest.Thresholds
	logger  zerolog.Logger
}

// run executes all phases in order and returns their reports.
func (s *suite) run(ctx context.Context) ([]*loadtest.Report, error) {
	total := s.cfg.LoadTest.TotalOps
	concurrency := s.cfg.LoadTest.Concurrency

	setReport, err := s.harness.RunPhase(ctx, "SET", total, concurrency, s.setFactory)
	if err != nil {
		return nil, err
	}
	s.report(setReport)

	if err := s.populate(ctx); err != nil {
		return nil, fmt.Errorf("pre-populate key space: %w", err)
	}
	getReport, err := s.harness.RunPhase(ctx, "GET", total, concurrency, s.getFactory)
	if err != nil {
		return nil, err
	}
	s.report(getReport)

	mixedReport, err := s.harness.RunPhase(ctx, "MIXED", total, concurrency, s.mixedFactory)
	if err != nil {
		return nil, err
	}
	s.report(mixedReport)

	limitReport, err := s.harness.RunPhase(ctx, "RATELIMIT", total, concurrency, s.rateLimitFactory)
	if err != nil {
		return nil, err
	}
	s.report(limitReport)

	if err := s.cleanup(ctx); err != nil {
		// Leftover test keys have TTLs; report and move on.
		s.logger.Warn().Err(err).Msg("cleanup of test keys failed")
	}

	return []*loadtest.Report{setReport, getReport, mixedReport, limitReport}, nil
}

func (s *suite) cacheKey() string {
	return fmt.Sprintf("%s%d", cacheKeyPrefix, rand.Intn(s.cfg.LoadTest.KeySpaceSize))
}

func (s *suite) setFactory(workerID int) (loadtest.Operation, error) {
	return func(ctx context.Context) (bool, error) {
		value := fmt.Sprintf("value_%d", rand.Intn(1_000_000))
		if err := s.client.Set(ctx, s.cacheKey(), value, valueTTL).Err(); err != nil {
			return false, err
		}
		return true, nil
	}, nil
}

func (s *suite) getFactory(workerID int) (loadtest.Operation, error) {
	return func(ctx context.Context) (bool, error) {
		_, err := s.client.Get(ctx, s.cacheKey()).Result()
		if err == redis.Nil {
			// A miss is a successful operation without a hit.
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}, nil
}

func (s *suite) mixedFactory(workerID int) (loadtest.Operation, error) {
	return func(ctx context.Context) (bool, error) {
		n := rand.Intn(1_000_000)
		var err error
		switch rand.Intn(5) {
		case 0:
			err = s.client.Set(ctx, fmt.Sprintf("load_test:mixed:%d", rand.Intn(s.cfg.LoadTest.KeySpaceSize)),
				fmt.Sprintf("value_%d", n), valueTTL).Err()
		case 1:
			if getErr := s.client.Get(ctx, fmt.Sprintf("load_test:mixed:%d", rand.Intn(s.cfg.LoadTest.KeySpaceSize))).Err(); getErr != nil && getErr != redis.Nil {
				err = getErr
			}
		case 2:
			err = s.client.Incr(ctx, fmt.Sprintf("load_test:counter:%d", rand.Intn(100))).Err()
		case 3:
			err = s.client.LPush(ctx, fmt.Sprintf("load_test:list:%d", rand.Intn(100)), fmt.Sprintf("item_%d", n)).Err()
		default:
			err = s.client.HSet(ctx, fmt.Sprintf("load_test:hash:%d", rand.Intn(100)),
				fmt.Sprintf("field_%d", n), fmt.Sprintf("value_%d", n)).Err()
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}, nil
}

func (s *suite) rateLimitFactory(workerID int) (loadtest.Operation, error) {
	return func(ctx context.Context) (bool, error) {
		key := fmt.Sprintf("client-%d", rand.Intn(s.cfg.LoadTest.KeySpaceSize))
		d := s.limiter.Check(ctx, key)
		return d.Allowed, nil
	}, nil
}

// populate fills the key space before the GET phase so the hit ratio
// measures cache behavior rather than an empty store.
func (s *suite) populate(ctx context.Context) error {
	s.logger.Info().Int("keys", s.cfg.LoadTest.KeySpaceSize).Msg("pre-populating key space")

	pipe := s.client.Pipeline()
	for i := 0; i < s.cfg.LoadTest.KeySpaceSize; i++ {
		pipe.Set(ctx, fmt.Sprintf("%s%d", cacheKeyPrefix, i), fmt.Sprintf("value_%d", i), populateTTL)
		if pipe.Len() >= populateBatch {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *suite) cleanup(ctx context.Context) error {
	s.logger.Info().Msg("cleaning up test data")

	keys := make([]string, 0, populateBatch)
	for i := 0; i < s.cfg.LoadTest.KeySpaceSize; i++ {
		keys = append(keys, fmt.Sprintf("%s%d", cacheKeyPrefix, i))
		if len(keys) >= populateBatch {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if len(keys) > 0 {
		return s.client.Del(ctx, keys...).Err()
	}
	return nil
}

// report logs one phase's numbers and its assessment as structured data.
func (s *suite) report(r *loadtest.Report) {
	a := s.policy.Assess(r)

	ev := s.logger.Info().
		Str("phase", r.Phase).
		Int("total_ops", r.TotalOps).
		Dur("total_time", r.TotalTime).
		Float64("ops_per_sec", r.OpsPerSec).
		Dur("avg_latency", r.AvgLatency).
		Dur("p95_latency", r.P95Latency).
		Dur("p99_latency", r.P99Latency).
		Int("errors", r.ErrorCount).
		Int("lost_workers", r.LostWorkers).
		Float64("hit_ratio", r.HitRatio).
		Str("throughput_band", a.Throughput.String())

	if r.LatencySamples >= loadtest.MinPercentileSamples {
		ev = ev.Str("p95_band", a.P95Latency.String())
	} else {
		ev = ev.Str("p95_band", "insufficient data")
	}
	if r.Phase == "GET" || r.Phase == "RATELIMIT" {
		ev = ev.Str("hit_ratio_band", a.HitRatio.String())
	}

	ev.Msg("phase report")
}
