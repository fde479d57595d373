package gate

import (
	"encoding/json"
	"net/http"

	"github.com/ghostworker/gatekit/pkg/plan"
)

// MiddlewareOption configures gate middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onDenied func(w http.ResponseWriter, r *http.Request, d Decision)
	onError  func(w http.ResponseWriter, r *http.Request, err error)
}

// WithOnDenied sets a custom handler for denied requests.
func WithOnDenied(fn func(w http.ResponseWriter, r *http.Request, d Decision)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onDenied = fn
		}
	}
}

// WithOnError sets a custom handler for evaluation errors (a requirement
// naming an unknown resource).
func WithOnError(fn func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onError = fn
		}
	}
}

// Middleware creates HTTP middleware that enforces the requirement before
// the wrapped handler runs. The tenant's tier and usage snapshot are read
// from the request context; a missing tier degrades to free and a missing
// snapshot counts as zero usage.
//
// Denied requests get 402 Payment Required with a JSON body carrying the
// deny reason, a human-readable message, and the upgrade route.
func Middleware(g *Gate, req Requirement, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if g == nil {
		panic("gate.Middleware: gate is required")
	}

	cfg := &middlewareConfig{
		onDenied: denyJSON,
		onError: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier, ok := TierFromContext(r.Context())
			if !ok {
				tier = plan.TierFree
			}
			snap, _ := SnapshotFromContext(r.Context())

			decision, err := g.Check(tier, req, snap)
			if err != nil {
				cfg.onError(w, r, err)
				return
			}
			if !decision.Allowed {
				cfg.onDenied(w, r, decision)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func denyJSON(w http.ResponseWriter, _ *http.Request, d Decision) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusPaymentRequired)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":       string(d.Reason),
		"message":     d.Message,
		"upgrade_url": d.UpgradeURL,
	})
}
