package plan

import (
	"errors"
	"fmt"
)

// Catalog is an immutable mapping from tier to plan. Construct it once at
// process start; after that it is safe for unsynchronized concurrent reads.
type Catalog struct {
	plans map[Tier]Plan
}

// NewCatalog builds a catalog from the given plans. The input is deep-copied
// so later mutations of the argument do not leak into the catalog.
//
// Validation rules:
//   - a free plan must be present, it is the fallback for unknown tiers
//   - every plan must define a limit for every known resource
//   - limits must be non-negative or Unlimited (-1)
func NewCatalog(plans map[Tier]Plan) (*Catalog, error) {
	if _, ok := plans[TierFree]; !ok {
		return nil, errors.Join(ErrInvalidCatalog, errors.New("free plan is required as the default fallback"))
	}

	copied := make(map[Tier]Plan, len(plans))
	for tier, p := range plans {
		if !tier.Valid() {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("unknown tier %q", tier))
		}
		for _, res := range Resources() {
			limit, ok := p.Limits[res]
			if !ok {
				return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q is missing a limit for %q", tier, res))
			}
			if limit < Unlimited {
				return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q has invalid limit %d for %q", tier, limit, res))
			}
		}
		if p.RateLimitPerMinute < 0 {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q has negative rate limit", tier))
		}
		cp := p.clone()
		cp.Tier = tier
		copied[tier] = cp
	}

	return &Catalog{plans: copied}, nil
}

// MustCatalog is like NewCatalog but panics on invalid configuration.
// Intended for static catalogs defined in code.
func MustCatalog(plans map[Tier]Plan) *Catalog {
	c, err := NewCatalog(plans)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the plan for the given tier. Unknown tiers fall back to the
// free plan rather than failing.
func (c *Catalog) Get(tier Tier) Plan {
	if p, ok := c.plans[tier]; ok {
		return p
	}
	return c.plans[TierFree]
}

// Limit returns the limit for a resource under the given tier.
// Unknown tiers resolve against the free plan; unknown resources fail with
// ErrUnknownResource.
func (c *Catalog) Limit(tier Tier, res Resource) (int64, error) {
	return c.Get(tier).Limit(res)
}

// HasFeature reports whether the given tier enables the feature.
func (c *Catalog) HasFeature(tier Tier, f Feature) bool {
	return c.Get(tier).HasFeature(f)
}

// RateLimit returns the per-minute request allowance for the tier.
func (c *Catalog) RateLimit(tier Tier) int {
	return c.Get(tier).RateLimitPerMinute
}

// Plans returns a copy of all plans keyed by tier.
func (c *Catalog) Plans() map[Tier]Plan {
	out := make(map[Tier]Plan, len(c.plans))
	for tier, p := range c.plans {
		out[tier] = p.clone()
	}
	return out
}
