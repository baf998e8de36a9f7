// Package config loads and validates the benchmark runner configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/llmops/loadgate/pkg/common/validation"
	"github.com/llmops/loadgate/pkg/loadtest"
)

// Config is the full runner configuration.
type Config struct {
	RateLimit  RateLimit  `mapstructure:"rate_limit"`
	LoadTest   LoadTest   `mapstructure:"load_test"`
	Redis      Redis      `mapstructure:"redis"`
	Thresholds Thresholds `mapstructure:"thresholds"`
}

// RateLimit configures the sliding window limiter under test.
type RateLimit struct {
	// Limit is the maximum admitted units per window.
	Limit int `mapstructure:"limit"`

	// Window is the sliding window duration.
	Window time.Duration `mapstructure:"window"`
}

// LoadTest configures the load generation phases.
type LoadTest struct {
	// Concurrency is the number of workers per phase.
	Concurrency int `mapstructure:"concurrency"`

	// TotalOps is the operation count per phase, split across workers.
	TotalOps int `mapstructure:"total_ops"`

	// KeySpaceSize bounds the synthetic identifiers the phases draw from.
	KeySpaceSize int `mapstructure:"key_space_size"`

	// Schedule, when set, is a cron expression for recurring runs.
	Schedule string `mapstructure:"schedule"`
}

// Redis configures the backing store connection.
type Redis struct {
	Addr string `mapstructure:"addr"`

	// PoolSize bounds the shared connection pool; it is explicit
	// configuration, not derived from worker count.
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
}

// Thresholds configures the assessment policy bands.
type Thresholds struct {
	ThroughputExcellent float64       `mapstructure:"throughput_excellent"`
	ThroughputGood      float64       `mapstructure:"throughput_good"`
	HitRatioExcellent   float64       `mapstructure:"hit_ratio_excellent"`
	HitRatioGood        float64       `mapstructure:"hit_ratio_good"`
	P95Excellent        time.Duration `mapstructure:"p95_excellent"`
	P95Good             time.Duration `mapstructure:"p95_good"`
}

// Policy converts the configured thresholds into the assessment policy.
func (t Thresholds) Policy() loadtest.Thresholds {
	return loadtest.Thresholds{
		ThroughputExcellent: t.ThroughputExcellent,
		ThroughputGood:      t.ThroughputGood,
		HitRatioExcellent:   t.HitRatioExcellent,
		HitRatioGood:        t.HitRatioGood,
		P95Excellent:        t.P95Excellent,
		P95Good:             t.P95Good,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.limit", 100)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("load_test.concurrency", 100)
	v.SetDefault("load_test.total_ops", 100_000)
	v.SetDefault("load_test.key_space_size", 10_000)
	v.SetDefault("load_test.schedule", "")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 100)
	v.SetDefault("redis.min_idle_conns", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)

	def := loadtest.DefaultThresholds()
	v.SetDefault("thresholds.throughput_excellent", def.ThroughputExcellent)
	v.SetDefault("thresholds.throughput_good", def.ThroughputGood)
	v.SetDefault("thresholds.hit_ratio_excellent", def.HitRatioExcellent)
	v.SetDefault("thresholds.hit_ratio_good", def.HitRatioGood)
	v.SetDefault("thresholds.p95_excellent", def.P95Excellent)
	v.SetDefault("thresholds.p95_good", def.P95Good)
}

// Load reads configuration from the given file (optional), environment
// variables prefixed LOADGATE_, and defaults, then validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("loadgate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on invalid values; a failed validation is fatal to
// the whole run and never retried.
func (c *Config) Validate() error {
	if err := validation.ValidatePositive("config", "rate_limit.limit", c.RateLimit.Limit); err != nil {
		return err
	}
	if err := validation.ValidatePositiveDuration("config", "rate_limit.window", c.RateLimit.Window); err != nil {
		return err
	}
	if err := validation.ValidatePositive("config", "load_test.concurrency", c.LoadTest.Concurrency); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("config", "load_test.total_ops", c.LoadTest.TotalOps); err != nil {
		return err
	}
	if err := validation.ValidatePositive("config", "load_test.key_space_size", c.LoadTest.KeySpaceSize); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty("config", "redis.addr", c.Redis.Addr); err != nil {
		return err
	}
	if err := validation.ValidatePositive("config", "redis.pool_size", c.Redis.PoolSize); err != nil {
		return err
	}
	return nil
}
