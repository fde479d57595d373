package gate

import (
	"context"

	"github.com/ghostworker/gatekit/pkg/plan"
	"github.com/ghostworker/gatekit/pkg/usage"
)

type tierCtxKey struct{}
type snapshotCtxKey struct{}

// SetTierToContext stores the tenant's tier in the context for downstream
// gate checks. Typically done by auth middleware after resolving the tenant.
func SetTierToContext(ctx context.Context, tier plan.Tier) context.Context {
	return context.WithValue(ctx, tierCtxKey{}, tier)
}

// TierFromContext retrieves the tenant's tier from the context, if present.
func TierFromContext(ctx context.Context) (plan.Tier, bool) {
	tier, ok := ctx.Value(tierCtxKey{}).(plan.Tier)
	return tier, ok
}

// SetSnapshotToContext stores the tenant's usage snapshot in the context.
func SetSnapshotToContext(ctx context.Context, snap usage.Snapshot) context.Context {
	return context.WithValue(ctx, snapshotCtxKey{}, snap)
}

// SnapshotFromContext retrieves the usage snapshot from the context, if present.
func SnapshotFromContext(ctx context.Context) (usage.Snapshot, bool) {
	snap, ok := ctx.Value(snapshotCtxKey{}).(usage.Snapshot)
	return snap, ok
}
