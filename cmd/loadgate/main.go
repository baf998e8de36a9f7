package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/llmops/loadgate/internal/config"
	"github.com/llmops/loadgate/pkg/loadtest"
	"github.com/llmops/loadgate/pkg/metrics"
	"github.com/llmops/loadgate/pkg/ratelimit/slidingwindow"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(*configPath, logger); err != nil {
		logger.Fatal().Err(err).Msg("loadgate run failed")
	}
}

func run(configPath string, logger zerolog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
	})
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Redis.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Int("pool_size", cfg.Redis.PoolSize).Msg("connected to redis")

	limiter, err := slidingwindow.NewWithConfigAndMetrics(slidingwindow.Config{
		Store:  slidingwindow.NewRedisStore(client),
		Limit:  cfg.RateLimit.Limit,
		Window: cfg.RateLimit.Window,
		Logger: &logger,
	}, "benchmark", metrics.Config{Enabled: true})
	if err != nil {
		return err
	}

	s := &suite{
		client:  client,
		harness: loadtest.NewWithConfig(loadtest.Config{Logger: &logger, Metrics: metrics.Config{Enabled: true}}),
		limiter: limiter,
		cfg:     cfg,
		policy:  cfg.Thresholds.Policy(),
		logger:  logger,
	}

	if cfg.LoadTest.Schedule == "" {
		_, err := s.run(ctx)
		return err
	}

	// Scheduled mode: rerun the suite on the configured cron expression
	// until interrupted.
	sched := loadtest.NewScheduler(&logger)
	_, err = sched.Schedule(cfg.LoadTest.Schedule, "benchmark", func(ctx context.Context) (*loadtest.Report, error) {
		reports, err := s.run(ctx)
		if err != nil || len(reports) == 0 {
			return nil, err
		}
		return reports[len(reports)-1], nil
	}, nil)
	if err != nil {
		return fmt.Errorf("schedule benchmark: %w", err)
	}

	sched.Start()
	<-ctx.Done()

	stopCtx := sched.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn().Msg("timed out waiting for in-flight run to finish")
	}
	return nil
}
