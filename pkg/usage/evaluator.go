package usage

import (
	"github.com/ghostworker/gatekit/pkg/plan"
)

// UsageInfo contains the current usage and limit for a resource.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}

// Evaluator computes per-resource usage percentages and limit-exceeded flags
// against an immutable plan catalog. All methods are pure functions of their
// inputs: no side effects, safe for concurrent use.
type Evaluator struct {
	catalog *plan.Catalog
}

// NewEvaluator returns an evaluator bound to the given catalog.
// Panics if catalog is nil: an evaluator without a catalog cannot answer
// anything, and this is a wiring bug rather than a runtime condition.
func NewEvaluator(catalog *plan.Catalog) *Evaluator {
	if catalog == nil {
		panic("usage: catalog is required")
	}
	return &Evaluator{catalog: catalog}
}

// PercentUsed returns the usage percentage for a resource, rounded to the
// nearest integer. The result is not capped at 100: over-quota tenants are a
// valid state and the overshoot should be visible to callers.
//
// Unlimited resources always report 0. Unknown tiers resolve against the
// free plan; unknown resources fail with plan.ErrUnknownResource.
func (e *Evaluator) PercentUsed(tier plan.Tier, res plan.Resource, snap Snapshot) (int, error) {
	limit, err := e.catalog.Limit(tier, res)
	if err != nil {
		return 0, err
	}
	current, err := snap.Get(res)
	if err != nil {
		return 0, err
	}

	if limit == plan.Unlimited {
		return 0, nil
	}
	if current <= 0 {
		return 0, nil
	}
	if limit == 0 {
		// A zero limit means the resource is not included in the plan at
		// all, so any usage is fully over quota.
		return 100, nil
	}

	return int((100*current + limit/2) / limit), nil
}

// IsAtLimit reports whether the tenant has reached the cap for a resource.
// True iff the limit is finite and usage is at or above it. Unlimited
// resources are never at limit, regardless of how large usage grows.
func (e *Evaluator) IsAtLimit(tier plan.Tier, res plan.Resource, snap Snapshot) (bool, error) {
	limit, err := e.catalog.Limit(tier, res)
	if err != nil {
		return false, err
	}
	current, err := snap.Get(res)
	if err != nil {
		return false, err
	}

	if limit == plan.Unlimited {
		return false, nil
	}
	return current >= limit, nil
}

// Remaining returns how much headroom is left for a resource. Returns
// plan.Unlimited for unlimited resources and never goes below zero for
// over-quota tenants.
func (e *Evaluator) Remaining(tier plan.Tier, res plan.Resource, snap Snapshot) (int64, error) {
	limit, err := e.catalog.Limit(tier, res)
	if err != nil {
		return 0, err
	}
	current, err := snap.Get(res)
	if err != nil {
		return 0, err
	}

	if limit == plan.Unlimited {
		return plan.Unlimited, nil
	}
	return max(limit-current, 0), nil
}

// Info returns the current usage and limit pair for a resource.
func (e *Evaluator) Info(tier plan.Tier, res plan.Resource, snap Snapshot) (UsageInfo, error) {
	limit, err := e.catalog.Limit(tier, res)
	if err != nil {
		return UsageInfo{}, err
	}
	current, err := snap.Get(res)
	if err != nil {
		return UsageInfo{}, err
	}
	return UsageInfo{Current: current, Limit: limit}, nil
}

// AllInfo returns usage and limit pairs for every catalog resource.
func (e *Evaluator) AllInfo(tier plan.Tier, snap Snapshot) map[plan.Resource]UsageInfo {
	out := make(map[plan.Resource]UsageInfo, len(plan.Resources()))
	for _, res := range plan.Resources() {
		info, err := e.Info(tier, res, snap)
		if err != nil {
			continue
		}
		out[res] = info
	}
	return out
}
