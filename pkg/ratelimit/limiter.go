package ratelimit

import (
	"context"
	"time"

	"github.com/ghostworker/gatekit/pkg/plan"
)

// defaultWindow matches the per-minute allowance carried by each plan.
const defaultWindow = time.Minute

// TierLimiter throttles requests according to the tenant's plan tier: the
// per-window allowance comes from the plan catalog's RateLimitPerMinute.
// Unknown tiers fall back to the free plan's allowance.
type TierLimiter struct {
	catalog *plan.Catalog
	store   Store
	window  time.Duration
}

// TierLimiterOption configures a TierLimiter.
type TierLimiterOption func(*TierLimiter)

// WithWindow overrides the default one-minute window.
func WithWindow(window time.Duration) TierLimiterOption {
	return func(l *TierLimiter) {
		if window > 0 {
			l.window = window
		}
	}
}

// NewTierLimiter creates a limiter that reads per-tier allowances from the
// catalog and tracks request timestamps in the store.
func NewTierLimiter(catalog *plan.Catalog, store Store, opts ...TierLimiterOption) (*TierLimiter, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	l := &TierLimiter{
		catalog: catalog,
		store:   store,
		window:  defaultWindow,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Allow checks whether one more request fits the tier's allowance for the
// given key and records it if so. A plan with a zero allowance is treated
// as unthrottled.
func (l *TierLimiter) Allow(ctx context.Context, key string, tier plan.Tier) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	limit := l.catalog.RateLimit(tier)
	now := time.Now()

	if limit <= 0 {
		return &Result{Allowed: true, Tier: tier, Limit: limit, Remaining: limit, ResetAt: now.Add(l.window)}, nil
	}

	allowed, count, err := l.store.RecordIfAllowed(ctx, key, now, l.window, limit)
	if err != nil {
		return nil, err
	}

	return &Result{
		Allowed:   allowed,
		Tier:      tier,
		Limit:     limit,
		Remaining: max(limit-int(count), 0),
		ResetAt:   now.Add(l.window),
	}, nil
}

// Status returns the current state for a key without recording a request.
func (l *TierLimiter) Status(ctx context.Context, key string, tier plan.Tier) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	limit := l.catalog.RateLimit(tier)
	count, err := l.store.CountInWindow(ctx, key, l.window)
	if err != nil {
		return nil, err
	}

	remaining := max(limit-int(count), 0)
	return &Result{
		Allowed:   limit <= 0 || remaining > 0,
		Tier:      tier,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(l.window),
	}, nil
}

// Reset clears the recorded requests for a key.
func (l *TierLimiter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return l.store.Reset(ctx, key)
}
