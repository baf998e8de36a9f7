package slidingwindow

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore implements Store on Redis sorted sets: one ZSET per key with
// entry timestamps as scores. ZADD, ZREMRANGEBYSCORE, ZCARD and EXPIRE are
// each atomic on the server, which is all the limiter requires of a Store.
type redisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a Store backed by Redis.
// It expects a pre-configured redis.Cmdable (e.g. redis.Client or
// redis.ClusterClient); pool sizing is the client's configuration.
func NewRedisStore(client redis.Cmdable) Store {
	return &redisStore{client: client}
}

// Add implements Store.
func (s *redisStore) Add(ctx context.Context, key string, score time.Time, member string) error {
	err := s.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(score.UnixNano()),
		Member: member,
	}).Err()
	if err != nil {
		return &StoreError{Op: "add", Err: err}
	}
	return nil
}

// TrimBefore implements Store. The cutoff bound is exclusive: only members
// strictly older than cutoff are removed.
func (s *redisStore) TrimBefore(ctx context.Context, key string, cutoff time.Time) error {
	max := "(" + strconv.FormatInt(cutoff.UnixNano(), 10)
	if err := s.client.ZRemRangeByScore(ctx, key, "-inf", max).Err(); err != nil {
		return &StoreError{Op: "trim", Err: err}
	}
	return nil
}

// Count implements Store.
func (s *redisStore) Count(ctx context.Context, key string) (int64, error) {
	n, err := s.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return n, nil
}

// Expire implements Store.
func (s *redisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return &StoreError{Op: "expire", Err: err}
	}
	return nil
}
