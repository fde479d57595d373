package plan

import "errors"

var (
	// ErrUnknownResource indicates a resource key that no plan defines.
	// Passing one is a caller bug, so lookups fail loudly with this error.
	ErrUnknownResource = errors.New("unknown plan resource")

	ErrInvalidCatalog    = errors.New("invalid plan catalog configuration")
	ErrFailedToLoadPlans = errors.New("failed to load plans")
)
