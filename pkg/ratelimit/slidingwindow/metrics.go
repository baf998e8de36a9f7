package slidingwindow

import (
	"context"
	"time"

	"github.com/llmops/loadgate/pkg/metrics"
)

// MetricsLimiter wraps a Limiter with Prometheus metrics collection.
type MetricsLimiter struct {
	limiter  Limiter
	name     string
	registry *metrics.Registry
}

// NewWithConfigAndMetrics creates a sliding window limiter with metrics.
// Fail-open occurrences are counted in addition to the configured hook.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Limiter, error) {
	if !metricsConfig.Enabled {
		return NewWithConfig(config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	next := config.OnFailOpen
	config.OnFailOpen = func(ev FailOpenEvent) {
		registry.RateLimitFailOpen.WithLabelValues(name).Inc()
		if next != nil {
			next(ev)
		}
	}

	base, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	return &MetricsLimiter{
		limiter:  base,
		name:     name,
		registry: registry,
	}, nil
}

// Check reports whether one unit of work for key is admitted now.
func (ml *MetricsLimiter) Check(ctx context.Context, key string) Decision {
	ml.registry.RateLimitChecks.WithLabelValues(ml.name).Inc()

	decision := ml.limiter.Check(ctx, key)

	if decision.Allowed {
		ml.registry.RateLimitAllowed.WithLabelValues(ml.name).Inc()
	} else {
		ml.registry.RateLimitDenied.WithLabelValues(ml.name).Inc()
	}

	return decision
}

// Limit returns the configured maximum admitted units per window.
func (ml *MetricsLimiter) Limit() int {
	return ml.limiter.Limit()
}

// Window returns the configured window duration.
func (ml *MetricsLimiter) Window() time.Duration {
	return ml.limiter.Window()
}
