package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a sliding-window Store backed by a Redis sorted set per key:
// request timestamps are members scored by arrival time, so pruning and
// counting happen server-side and multiple processes share one window.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore returns a store using the given Redis client.
// Panics if client is nil.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	if client == nil {
		panic("ratelimit: redis client is required")
	}
	return &RedisStore{client: client}
}

func (s *RedisStore) storageKey(key string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, int(window.Seconds()))
}

// RecordIfAllowed prunes expired entries, counts the window, and records the
// request. If the window was already full the just-added member is removed
// again so a denied request consumes no quota.
func (s *RedisStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int64, error) {
	k := s.storageKey(key, window)
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", cutoff)
	countCmd := pipe.ZCard(ctx, k)
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, k, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	count := countCmd.Val()
	if count >= int64(limit) {
		if err := s.client.ZRem(ctx, k, member).Err(); err != nil {
			return false, count, err
		}
		return false, count, nil
	}

	return true, count + 1, nil
}

// CountInWindow returns the number of live entries for the key.
func (s *RedisStore) CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := s.storageKey(key, window)
	cutoff := strconv.FormatInt(time.Now().Add(-window).UnixNano(), 10)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", cutoff)
	countCmd := pipe.ZCard(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return countCmd.Val(), nil
}

// Reset clears the default one-minute window for the key. Non-default
// windows expire on their own via the key TTL.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.storageKey(key, defaultWindow)).Err()
}
