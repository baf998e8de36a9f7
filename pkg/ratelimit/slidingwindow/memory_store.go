package slidingwindow

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memoryStore implements Store with an in-process map of per-key entry lists.
// It is intended for tests and single-process deployments.
type memoryStore struct {
	mu    sync.Mutex
	keys  map[string]*memoryKey
	clock Clock
}

type memoryKey struct {
	entries   []memoryEntry // ordered by score ascending
	expiresAt time.Time     // zero means no TTL set
}

type memoryEntry struct {
	score  int64 // nanoseconds
	member string
}

// NewMemoryStore creates an in-memory Store.
func NewMemoryStore() Store {
	return NewMemoryStoreWithClock(SystemClock{})
}

// NewMemoryStoreWithClock creates an in-memory Store whose TTL bookkeeping
// uses the given clock.
func NewMemoryStoreWithClock(clock Clock) Store {
	return &memoryStore{
		keys:  make(map[string]*memoryKey),
		clock: clock,
	}
}

// Add implements Store.
func (s *memoryStore) Add(ctx context.Context, key string, score time.Time, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mk := s.key(key)
	e := memoryEntry{score: score.UnixNano(), member: member}

	if n := len(mk.entries); n == 0 || mk.entries[n-1].score <= e.score {
		mk.entries = append(mk.entries, e)
		return nil
	}

	// Out-of-order insert keeps the list sorted for TrimBefore.
	i := sort.Search(len(mk.entries), func(i int) bool {
		return mk.entries[i].score > e.score
	})
	mk.entries = append(mk.entries, memoryEntry{})
	copy(mk.entries[i+1:], mk.entries[i:])
	mk.entries[i] = e
	return nil
}

// TrimBefore implements Store.
func (s *memoryStore) TrimBefore(ctx context.Context, key string, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mk := s.key(key)
	c := cutoff.UnixNano()
	i := sort.Search(len(mk.entries), func(i int) bool {
		return mk.entries[i].score >= c
	})
	if i > 0 {
		mk.entries = append(mk.entries[:0], mk.entries[i:]...)
	}
	return nil
}

// Count implements Store.
func (s *memoryStore) Count(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.key(key).entries)), nil
}

// Expire implements Store.
func (s *memoryStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key(key).expiresAt = s.clock.Now().Add(ttl)
	return nil
}

// key returns the live state for key, dropping it first if its TTL has
// passed. Callers must hold s.mu.
func (s *memoryStore) key(key string) *memoryKey {
	mk, ok := s.keys[key]
	if ok && !mk.expiresAt.IsZero() && s.clock.Now().After(mk.expiresAt) {
		delete(s.keys, key)
		ok = false
	}
	if !ok {
		mk = &memoryKey{}
		s.keys[key] = mk
	}
	return mk
}
