package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ghostworker/gatekit/pkg/ratelimit"
)

func TestKeyByIP(t *testing.T) {
	t.Parallel()

	t.Run("remote addr", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.7:51000"

		assert.Equal(t, "ip:192.0.2.7", ratelimit.KeyByIP(r))
	})

	t.Run("remote addr without port", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.7"

		assert.Equal(t, "ip:192.0.2.7", ratelimit.KeyByIP(r))
	})

	t.Run("forwarded header wins", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:80"
		r.Header.Set("X-Forwarded-For", "203.0.113.50")

		assert.Equal(t, "ip:203.0.113.50", ratelimit.KeyByIP(r))
	})

	t.Run("first forwarded hop", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.50, 10.0.0.2, 10.0.0.1")

		assert.Equal(t, "ip:203.0.113.50", ratelimit.KeyByIP(r))
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	byHeader := func(name string) ratelimit.KeyFunc {
		return func(r *http.Request) string {
			return r.Header.Get(name)
		}
	}

	t.Run("joins parts", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.7:51000"
		r.Header.Set("X-API-Key", "abc123")

		key := ratelimit.Composite(ratelimit.KeyByIP, byHeader("X-API-Key"))(r)
		assert.Equal(t, "ip:192.0.2.7:abc123", key)
	})

	t.Run("skips empty parts", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.7:51000"

		key := ratelimit.Composite(ratelimit.KeyByIP, byHeader("X-API-Key"))(r)
		assert.Equal(t, "ip:192.0.2.7", key)
	})

	t.Run("empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Del("X-API-Key")

		key := ratelimit.Composite(byHeader("X-API-Key"))(r)
		assert.Empty(t, key)
	})

	t.Run("hashes long keys", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		long := make([]byte, 100)
		for i := range long {
			long[i] = 'a'
		}
		r.Header.Set("X-API-Key", string(long))

		key := ratelimit.Composite(byHeader("X-API-Key"))(r)
		assert.Len(t, key, 32)
		assert.NotEqual(t, string(long), key)
	})
}
