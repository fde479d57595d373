package entitlements

import "errors"

var (
	// ErrLimitExceeded is returned when a tenant tries to create a resource at or above its plan limit.
	ErrLimitExceeded = errors.New("resource limit exceeded for the current plan")

	// ErrTierNotFound is returned when a tier has no plan in the catalog.
	ErrTierNotFound = errors.New("tier not found in the plan catalog")

	// ErrDowngradeNotPossible is returned when current usage does not fit the target plan's limits.
	ErrDowngradeNotPossible = errors.New("current usage exceeds the target plan's limits")

	// ErrCatalogRequired is returned when the service is constructed without a catalog.
	ErrCatalogRequired = errors.New("plan catalog is required")
)
