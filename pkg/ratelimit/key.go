package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// maxKeyLength caps key length to keep storage keys short in backends
// like Redis.
const maxKeyLength = 64

// KeyFunc extracts a unique client identifier from an HTTP request.
type KeyFunc func(*http.Request) string

// KeyByIP identifies clients by IP address: the first X-Forwarded-For hop
// when present, otherwise the connection's remote address.
func KeyByIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, ok := strings.Cut(forwarded, ","); ok {
			return "ip:" + strings.TrimSpace(first)
		}
		return "ip:" + strings.TrimSpace(forwarded)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

// Composite combines multiple key extractors into a single key. Keys longer
// than 64 characters are hashed down to 32 hex characters.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			hash := sha256.Sum256([]byte(combined))
			return hex.EncodeToString(hash[:16])
		}
		return combined
	}
}
