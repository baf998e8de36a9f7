package slidingwindow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/llmops/loadgate/pkg/common/validation"
)

// DefaultKeyPrefix namespaces limiter keys in the backing store.
const DefaultKeyPrefix = "ratelimit:"

// Decision is the result of a single admission check. It is computed fresh
// per call and never persisted. Remaining is only meaningful when Allowed
// is true.
type Decision struct {
	Allowed   bool
	Remaining int
}

// FailOpenEvent describes one occurrence of the limiter admitting a request
// because the backing store failed.
type FailOpenEvent struct {
	Key string
	Err error
	At  time.Time
}

// Clock provides the current time. It can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Limiter decides, per key, whether a new unit of work is admitted under a
// sliding window. All window state lives in the Store; the limiter itself
// holds no per-key state and is safe for concurrent use.
type Limiter interface {
	// Check reports whether one unit of work for key is admitted now.
	//
	// If the backing store fails, Check fails open: it returns an allowed
	// decision with full remaining quota and reports the failure through
	// the logger and the OnFailOpen hook, never through the decision itself.
	Check(ctx context.Context, key string) Decision

	// Limit returns the configured maximum admitted units per window.
	Limit() int

	// Window returns the configured window duration.
	Window() time.Duration
}

// Config holds configuration options for creating a new Limiter.
type Config struct {
	// Store holds the window state. Required.
	Store Store

	// Limit is the maximum number of admitted units per window.
	// A limit of zero or less denies every check.
	Limit int

	// Window is the sliding window duration. Must be positive.
	Window time.Duration

	// Clock provides the current time. If nil, SystemClock is used.
	Clock Clock

	// KeyPrefix namespaces keys in the store. Defaults to DefaultKeyPrefix.
	KeyPrefix string

	// Logger receives a structured event on every fail-open occurrence.
	// If nil, a no-op logger is used.
	Logger *zerolog.Logger

	// OnFailOpen, if set, is called once per fail-open occurrence in
	// addition to the logger event.
	OnFailOpen func(FailOpenEvent)
}

// slidingWindow implements Limiter over a Store.
type slidingWindow struct {
	store      Store
	limit      int
	window     time.Duration
	clock      Clock
	keyPrefix  string
	logger     zerolog.Logger
	onFailOpen func(FailOpenEvent)

	// locks serializes concurrent checks on the same key so the
	// count-then-add pair cannot race past the limit.
	locks sync.Map // key -> *sync.Mutex
}

// New creates a sliding window limiter with default options.
func New(store Store, limit int, window time.Duration) (Limiter, error) {
	return NewWithConfig(Config{
		Store:  store,
		Limit:  limit,
		Window: window,
	})
}

// NewWithConfig creates a sliding window limiter from the given configuration.
func NewWithConfig(config Config) (Limiter, error) {
	if config.Store == nil {
		return nil, validation.ValidateNotNil("slidingwindow", "store", nil)
	}
	if err := validation.ValidatePositiveDuration("slidingwindow", "window", config.Window); err != nil {
		return nil, err
	}

	if config.Clock == nil {
		config.Clock = SystemClock{}
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultKeyPrefix
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &slidingWindow{
		store:      config.Store,
		limit:      config.Limit,
		window:     config.Window,
		clock:      config.Clock,
		keyPrefix:  config.KeyPrefix,
		logger:     logger,
		onFailOpen: config.OnFailOpen,
	}, nil
}

// Check reports whether one unit of work for key is admitted now.
func (sw *slidingWindow) Check(ctx context.Context, key string) Decision {
	if sw.limit <= 0 {
		return Decision{Allowed: false, Remaining: 0}
	}

	storeKey := sw.keyPrefix + key
	mu := sw.keyLock(storeKey)
	mu.Lock()
	defer mu.Unlock()

	now := sw.clock.Now()
	cutoff := now.Add(-sw.window)

	// Expire stale entries before counting so they never inflate the count.
	if err := sw.store.TrimBefore(ctx, storeKey, cutoff); err != nil {
		return sw.failOpen(key, err, now)
	}

	count, err := sw.store.Count(ctx, storeKey)
	if err != nil {
		return sw.failOpen(key, err, now)
	}

	// A denied check must not itself consume quota.
	if count >= int64(sw.limit) {
		return Decision{Allowed: false, Remaining: 0}
	}

	if err := sw.store.Add(ctx, storeKey, now, newEntryMember(now)); err != nil {
		return sw.failOpen(key, err, now)
	}

	if err := sw.store.Expire(ctx, storeKey, sw.window); err != nil {
		return sw.failOpen(key, err, now)
	}

	return Decision{Allowed: true, Remaining: sw.limit - int(count) - 1}
}

// Limit returns the configured maximum admitted units per window.
func (sw *slidingWindow) Limit() int {
	return sw.limit
}

// Window returns the configured window duration.
func (sw *slidingWindow) Window() time.Duration {
	return sw.window
}

func (sw *slidingWindow) keyLock(key string) *sync.Mutex {
	v, _ := sw.locks.LoadOrStore(key, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// failOpen admits the request despite the store failure. Availability of the
// protected service takes priority over strict quota enforcement; the failure
// is surfaced only through the logger and the OnFailOpen hook.
func (sw *slidingWindow) failOpen(key string, err error, now time.Time) Decision {
	sw.logger.Error().
		Err(err).
		Str("key", key).
		Time("at", now).
		Msg("rate limit check failed, admitting request")

	if sw.onFailOpen != nil {
		sw.onFailOpen(FailOpenEvent{Key: key, Err: err, At: now})
	}

	return Decision{Allowed: true, Remaining: sw.limit}
}

// newEntryMember builds a window entry identity from the admission timestamp
// and a random disambiguator, so concurrent admits in the same instant never
// collide into one stored member.
func newEntryMember(now time.Time) string {
	return fmt.Sprintf("%d:%s", now.UnixNano(), uuid.NewString())
}
