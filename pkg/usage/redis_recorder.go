package usage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghostworker/gatekit/pkg/plan"
)

// usageKeyTTL keeps the previous period around for late reads before the
// key expires.
const usageKeyTTL = 62 * 24 * time.Hour

// RedisRecorder is a Recorder backed by a Redis hash per tenant and period.
// Counters are incremented server-side with HINCRBY, so concurrent writers
// across processes stay consistent.
type RedisRecorder struct {
	client redis.Cmdable
	clock  func() time.Time
}

// RedisRecorderOption configures a RedisRecorder.
type RedisRecorderOption func(*RedisRecorder)

// WithRedisClock overrides the time source. Intended for tests.
func WithRedisClock(clock func() time.Time) RedisRecorderOption {
	return func(r *RedisRecorder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRedisRecorder returns a recorder using the given Redis client.
// Panics if client is nil.
func NewRedisRecorder(client redis.Cmdable, opts ...RedisRecorderOption) *RedisRecorder {
	if client == nil {
		panic("usage: redis client is required")
	}
	r := &RedisRecorder{
		client: client,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func usageKey(tenantID uuid.UUID, period string) string {
	return fmt.Sprintf("usage:%s:%s", tenantID, period)
}

// Increment bumps the tenant's counter for the current period.
func (r *RedisRecorder) Increment(ctx context.Context, tenantID uuid.UUID, res plan.Resource, delta int64) error {
	if delta <= 0 {
		return ErrInvalidIncrement
	}
	// Reject unknown resources before touching the store.
	var probe Snapshot
	if err := probe.add(res, 0); err != nil {
		return err
	}

	key := usageKey(tenantID, periodKey(r.clock()))

	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, string(res), delta)
	pipe.Expire(ctx, key, usageKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrFailedToCount, err)
	}
	return nil
}

// Snapshot returns the tenant's counters for the current period.
func (r *RedisRecorder) Snapshot(ctx context.Context, tenantID uuid.UUID) (Snapshot, error) {
	now := r.clock()
	start, end := periodOf(now)
	snap := Snapshot{PeriodStart: start, PeriodEnd: end}

	fields, err := r.client.HGetAll(ctx, usageKey(tenantID, periodKey(now))).Result()
	if err != nil {
		return Snapshot{}, errors.Join(ErrFailedToCount, err)
	}

	for field, raw := range fields {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		// Fields written by other versions with unknown resource names are
		// skipped rather than failing the whole snapshot.
		_ = snap.add(plan.Resource(field), value)
	}

	return snap, nil
}

// Reset drops the tenant's counters for the current period.
func (r *RedisRecorder) Reset(ctx context.Context, tenantID uuid.UUID) error {
	if err := r.client.Del(ctx, usageKey(tenantID, periodKey(r.clock()))).Err(); err != nil {
		return errors.Join(ErrFailedToCount, err)
	}
	return nil
}
