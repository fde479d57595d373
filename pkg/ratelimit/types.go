package ratelimit

import (
	"context"
	"time"

	"github.com/ghostworker/gatekit/pkg/plan"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates whether the request may proceed.
	Allowed bool

	// Tier is the plan tier whose allowance was applied.
	Tier plan.Tier

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window rolls over.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Store is the sliding-window storage backend. Implementations must make
// RecordIfAllowed atomic so that concurrent callers cannot overshoot the
// limit.
type Store interface {
	// RecordIfAllowed records a request timestamp for key iff doing so keeps
	// the window at or under limit. Returns whether the request was recorded
	// and the number of requests currently in the window.
	RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (allowed bool, count int64, err error)

	// CountInWindow returns the number of requests within the window.
	CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error)

	// Reset removes all recorded requests for the key.
	Reset(ctx context.Context, key string) error
}
