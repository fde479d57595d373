package ratelimit

import "errors"

var (
	ErrKeyRequired     = errors.New("rate limit key is required")
	ErrStoreRequired   = errors.New("rate limit store is required")
	ErrCatalogRequired = errors.New("plan catalog is required")
)
