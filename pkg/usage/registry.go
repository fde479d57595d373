package usage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghostworker/gatekit/pkg/plan"
)

// CounterFunc returns the current usage for a tenant resource.
// Should be fast: cache or aggregate at the repository level.
type CounterFunc func(ctx context.Context, tenantID uuid.UUID) (int64, error)

// CounterRegistry maps a resource to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type CounterRegistry map[plan.Resource]CounterFunc

// NewRegistry returns a new, empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets or replaces the CounterFunc for the given resource.
// Panics if fn is nil.
func (r CounterRegistry) Register(res plan.Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("usage: CounterFunc for resource %q cannot be nil", res))
	}
	r[res] = fn
}

// FromRecorder builds a registry whose counters read from the given
// recorder's current-period snapshot. Convenient when the recorder is the
// only usage source in the application.
func FromRecorder(rec Recorder) CounterRegistry {
	registry := NewRegistry()
	for _, res := range plan.Resources() {
		res := res
		registry.Register(res, func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
			snap, err := rec.Snapshot(ctx, tenantID)
			if err != nil {
				return 0, err
			}
			return snap.Get(res)
		})
	}
	return registry
}
