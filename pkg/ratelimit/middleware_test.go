package ratelimit_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostworker/gatekit/pkg/gate"
	"github.com/ghostworker/gatekit/pkg/plan"
	"github.com/ghostworker/gatekit/pkg/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newTestMiddleware(t *testing.T, opts ...ratelimit.MiddlewareOption) func(http.Handler) http.Handler {
	t.Helper()

	store := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	limiter, err := ratelimit.NewTierLimiter(smallCatalog(t), store)
	require.NoError(t, err)

	return ratelimit.Middleware(limiter, ratelimit.KeyByIP, opts...)
}

func requestWithTier(tier plan.Tier) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
	r.RemoteAddr = "203.0.113.9:4411"
	return r.WithContext(gate.SetTierToContext(r.Context(), tier))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("allowed requests carry rate limit headers", func(t *testing.T) {
		t.Parallel()

		handler := newTestMiddleware(t)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(plan.TierFree))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "free", rec.Header().Get("X-RateLimit-Plan"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("throttled requests get 429 with upgrade url", func(t *testing.T) {
		t.Parallel()

		handler := newTestMiddleware(t)(okHandler())

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithTier(plan.TierFree))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(plan.TierFree))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "rate_limit_exceeded", body["error"])
		assert.Equal(t, "/pricing", body["upgrade_url"])
		assert.EqualValues(t, 3, body["limit"])
	})

	t.Run("enterprise throttle responses omit the upgrade url", func(t *testing.T) {
		t.Parallel()

		catalog := plan.MustCatalog(map[plan.Tier]plan.Plan{
			plan.TierFree: {
				Name:               "Free",
				Limits:             freeLimits(),
				RateLimitPerMinute: 60,
			},
			plan.TierEnterprise: {
				Name:               "Enterprise",
				Limits:             freeLimits(),
				RateLimitPerMinute: 1,
			},
		})

		store := ratelimit.NewMemoryStore()
		t.Cleanup(func() { _ = store.Close() })
		limiter, err := ratelimit.NewTierLimiter(catalog, store)
		require.NoError(t, err)
		handler := ratelimit.Middleware(limiter, ratelimit.KeyByIP)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(plan.TierEnterprise))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(plan.TierEnterprise))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotContains(t, body, "upgrade_url")
	})

	t.Run("missing tier in context falls back to free", func(t *testing.T) {
		t.Parallel()

		handler := newTestMiddleware(t)(okHandler())

		r := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
		r.RemoteAddr = "203.0.113.10:4411"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "free", rec.Header().Get("X-RateLimit-Plan"))
	})

	t.Run("fails open on store errors", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimit.NewTierLimiter(smallCatalog(t), failingStore{})
		require.NoError(t, err)
		handler := ratelimit.Middleware(limiter, ratelimit.KeyByIP)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(plan.TierFree))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("skip func bypasses limiting", func(t *testing.T) {
		t.Parallel()

		handler := newTestMiddleware(t, ratelimit.WithSkipFunc(func(r *http.Request) bool {
			return r.URL.Path == "/health"
		}))(okHandler())

		for i := 0; i < 10; i++ {
			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			r.RemoteAddr = "203.0.113.11:4411"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
		}
	})

	t.Run("custom throttle handler", func(t *testing.T) {
		t.Parallel()

		handler := newTestMiddleware(t, ratelimit.WithOnLimitReached(
			func(w http.ResponseWriter, _ *http.Request, _ *ratelimit.Result) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		))(okHandler())

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithTier(plan.TierFree))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(plan.TierFree))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("custom tier func overrides context", func(t *testing.T) {
		t.Parallel()

		handler := newTestMiddleware(t, ratelimit.WithTierFunc(
			func(*http.Request) plan.Tier { return plan.TierPro },
		))(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithTier(plan.TierFree))
		assert.Equal(t, "pro", rec.Header().Get("X-RateLimit-Plan"))
	})

	t.Run("panics without a limiter", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			ratelimit.Middleware(nil, ratelimit.KeyByIP)
		})
	})
}

func freeLimits() map[plan.Resource]int64 {
	m := make(map[plan.Resource]int64)
	for _, res := range plan.Resources() {
		m[res] = 100
	}
	return m
}

type failingStore struct{}

func (failingStore) RecordIfAllowed(context.Context, string, time.Time, time.Duration, int) (bool, int64, error) {
	return false, 0, errors.New("store down")
}

func (failingStore) CountInWindow(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func (failingStore) Reset(context.Context, string) error {
	return errors.New("store down")
}
