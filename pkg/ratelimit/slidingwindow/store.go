package slidingwindow

import (
	"context"
	"time"

	lgerrors "github.com/llmops/loadgate/pkg/common/errors"
)

// Store is the time-indexed set the limiter keeps its window state in.
// Each key holds a set of members ordered by score (a timestamp); any backing
// technology works as long as each operation is atomic relative to concurrent
// callers on the same key.
type Store interface {
	// Add records member under key with the given score.
	Add(ctx context.Context, key string, score time.Time, member string) error

	// TrimBefore removes all members of key with a score strictly less
	// than cutoff.
	TrimBefore(ctx context.Context, key string, cutoff time.Time) error

	// Count returns the number of members currently held under key.
	Count(ctx context.Context, key string) (int64, error)

	// Expire sets the key's time-to-live so abandoned keys self-clean.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// StoreError wraps a failure of a Store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store error in " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match any StoreError against ErrStoreUnavailable.
func (e *StoreError) Is(target error) bool {
	return target == lgerrors.ErrStoreUnavailable
}
