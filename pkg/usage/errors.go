package usage

import "errors"

var (
	// ErrInvalidIncrement indicates a non-positive delta passed to a recorder.
	ErrInvalidIncrement = errors.New("usage increment must be positive")

	// ErrNoCounterRegistered indicates a resource without a registered CounterFunc.
	ErrNoCounterRegistered = errors.New("no usage counter registered for resource")

	// ErrFailedToCount wraps failures from an underlying CounterFunc or store.
	ErrFailedToCount = errors.New("failed to count resource usage")
)
