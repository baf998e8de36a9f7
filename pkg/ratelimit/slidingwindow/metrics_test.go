package slidingwindow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/llmops/loadgate/internal/testutil"
	"github.com/llmops/loadgate/pkg/metrics"
)

func TestMetricsLimiter_CountsDecisions(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	limiter, err := NewWithConfigAndMetrics(Config{
		Store:  NewMemoryStore(),
		Limit:  2,
		Window: time.Minute,
	}, "test", metrics.Config{Enabled: true, Registry: reg})
	testutil.AssertNoError(t, err)

	ml := limiter.(*MetricsLimiter)

	limiter.Check(ctx, "user-1")
	limiter.Check(ctx, "user-1")
	limiter.Check(ctx, "user-1") // denied

	checks := promtestutil.ToFloat64(ml.registry.RateLimitChecks.WithLabelValues("test"))
	allowed := promtestutil.ToFloat64(ml.registry.RateLimitAllowed.WithLabelValues("test"))
	denied := promtestutil.ToFloat64(ml.registry.RateLimitDenied.WithLabelValues("test"))

	testutil.AssertEqual(t, checks, 3)
	testutil.AssertEqual(t, allowed, 2)
	testutil.AssertEqual(t, denied, 1)
}

func TestMetricsLimiter_CountsFailOpen(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	hookCalls := 0
	limiter, err := NewWithConfigAndMetrics(Config{
		Store:  &failingStore{err: errors.New("down")},
		Limit:  5,
		Window: time.Minute,
		OnFailOpen: func(ev FailOpenEvent) {
			hookCalls++
		},
	}, "test", metrics.Config{Enabled: true, Registry: reg})
	testutil.AssertNoError(t, err)

	ml := limiter.(*MetricsLimiter)

	for i := 0; i < 4; i++ {
		d := limiter.Check(ctx, "user-1")
		if !d.Allowed {
			t.Fatal("fail-open must admit the request")
		}
	}

	failOpen := promtestutil.ToFloat64(ml.registry.RateLimitFailOpen.WithLabelValues("test"))
	testutil.AssertEqual(t, failOpen, 4)

	// The caller-provided hook still fires after the counter.
	testutil.AssertEqual(t, hookCalls, 4)
}

func TestMetricsLimiter_DisabledReturnsBase(t *testing.T) {
	limiter, err := NewWithConfigAndMetrics(Config{
		Store:  NewMemoryStore(),
		Limit:  1,
		Window: time.Minute,
	}, "test", metrics.Config{Enabled: false})
	testutil.AssertNoError(t, err)

	if _, ok := limiter.(*MetricsLimiter); ok {
		t.Fatal("disabled metrics should return the base limiter")
	}
}
