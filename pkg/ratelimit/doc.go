// Package ratelimit throttles HTTP traffic according to the tenant's plan
// tier using a sliding window over request timestamps.
//
// Each plan in the catalog carries a RateLimitPerMinute allowance; the
// TierLimiter looks it up per request, so free tenants get 60 requests a
// minute while enterprise tenants get 1000 without any extra wiring.
// Unknown tiers fall back to the free allowance.
//
//	store := ratelimit.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimit.NewTierLimiter(plan.DefaultCatalog(), store)
//	if err != nil {
//	    // invalid wiring
//	}
//
//	mux.Handle("/api/", ratelimit.Middleware(limiter, ratelimit.KeyByIP)(apiHandler))
//
// Two stores are provided: MemoryStore for single-process deployments and
// RedisStore for fleets, which keeps the window in a sorted set so pruning
// and counting happen server-side. The middleware fails open on store
// errors: a Redis outage slows nobody down.
package ratelimit
