package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ghostworker/gatekit/pkg/gate"
	"github.com/ghostworker/gatekit/pkg/plan"
)

// TierFunc resolves the plan tier for an HTTP request.
type TierFunc func(*http.Request) plan.Tier

// TierFromRequestContext resolves the tier stored by upstream middleware,
// degrading to free when absent.
func TierFromRequestContext(r *http.Request) plan.Tier {
	if tier, ok := gate.TierFromContext(r.Context()); ok {
		return tier
	}
	return plan.TierFree
}

// MiddlewareOption configures rate limit middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	tierFunc       TierFunc
	onLimitReached func(w http.ResponseWriter, r *http.Request, result *Result)
	skipFunc       func(r *http.Request) bool
}

// WithTierFunc sets a custom tier resolver.
func WithTierFunc(fn TierFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.tierFunc = fn
		}
	}
}

// WithOnLimitReached sets a custom handler for throttled requests.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onLimitReached = fn
		}
	}
}

// WithSkipFunc exempts matching requests from rate limiting (health checks,
// webhook receivers).
func WithSkipFunc(fn func(r *http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.skipFunc = fn
		}
	}
}

// Middleware creates HTTP middleware that throttles requests by the
// tenant's plan tier. Implements a fail-open policy: requests are allowed
// when the store errors, so a storage outage does not take the API down.
//
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining,
// X-RateLimit-Reset, and X-RateLimit-Plan headers; throttled requests get
// 429 with a Retry-After header and a JSON body pointing at the upgrade
// route.
func Middleware(limiter *TierLimiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("ratelimit.Middleware: limiter is required")
	}
	if keyFunc == nil {
		panic("ratelimit.Middleware: keyFunc is required")
	}

	cfg := &middlewareConfig{
		tierFunc:       TierFromRequestContext,
		onLimitReached: throttleJSON,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.skipFunc != nil && cfg.skipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			tier := cfg.tierFunc(r)
			result, err := limiter.Allow(r.Context(), key, tier)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
			w.Header().Set("X-RateLimit-Plan", string(result.Tier))

			if !result.Allowed {
				cfg.onLimitReached(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func throttleJSON(w http.ResponseWriter, _ *http.Request, result *Result) {
	retryAfter := int(result.RetryAfter().Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)

	body := map[string]any{
		"error":       "rate_limit_exceeded",
		"message":     "rate limit exceeded for the " + string(result.Tier) + " plan",
		"retry_after": retryAfter,
		"limit":       result.Limit,
	}
	if result.Tier != plan.TierEnterprise {
		body["upgrade_url"] = gate.UpgradePath
	}
	_ = json.NewEncoder(w).Encode(body)
}
