package plan

import "slices"

// Plan describes a subscription tier and its resource/feature constraints.
type Plan struct {
	Tier        Tier
	Name        string
	Description string
	// Limits maps each resource to its cap. Unlimited (-1) disables gating
	// for that resource entirely.
	Limits   map[Resource]int64
	Features []Feature
	// RateLimitPerMinute is the request throughput allowance for the tier.
	RateLimitPerMinute int
	PriceMonthly       Money
	PriceYearly        Money
	Popular            bool
}

// Limit returns the cap for the given resource.
// Unknown resource keys fail with ErrUnknownResource.
func (p Plan) Limit(res Resource) (int64, error) {
	limit, ok := p.Limits[res]
	if !ok {
		return 0, ErrUnknownResource
	}
	return limit, nil
}

// HasFeature reports whether the plan enables the given feature.
func (p Plan) HasFeature(f Feature) bool {
	return slices.Contains(p.Features, f)
}

// clone returns a deep copy so that catalog plans stay immutable even if
// the caller mutates the source map afterwards.
func (p Plan) clone() Plan {
	out := p
	if p.Limits != nil {
		out.Limits = make(map[Resource]int64, len(p.Limits))
		for res, limit := range p.Limits {
			out.Limits[res] = limit
		}
	}
	out.Features = slices.Clone(p.Features)
	return out
}

// ResourceChange represents a change in a resource limit between plans.
type ResourceChange struct {
	From int64
	To   int64
}

// Comparison contains the differences between two plans. Used to validate
// downgrades and to communicate changes to tenants.
type Comparison struct {
	NewFeatures      []Feature
	LostFeatures     []Feature
	IncreasedLimits  map[Resource]ResourceChange
	DecreasedLimits  map[Resource]ResourceChange
	NewResources     map[Resource]int64
	RemovedResources map[Resource]int64
}

// HasResourceDecreases reports whether any resource loses headroom in the
// target plan.
func (c *Comparison) HasResourceDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.RemovedResources) > 0
}

// Compare returns the differences between the current and target plans.
func Compare(current, target *Plan) *Comparison {
	if current == nil || target == nil {
		return nil
	}

	c := &Comparison{
		NewFeatures:      make([]Feature, 0),
		LostFeatures:     make([]Feature, 0),
		IncreasedLimits:  make(map[Resource]ResourceChange),
		DecreasedLimits:  make(map[Resource]ResourceChange),
		NewResources:     make(map[Resource]int64),
		RemovedResources: make(map[Resource]int64),
	}

	for _, f := range target.Features {
		if !slices.Contains(current.Features, f) {
			c.NewFeatures = append(c.NewFeatures, f)
		}
	}
	for _, f := range current.Features {
		if !slices.Contains(target.Features, f) {
			c.LostFeatures = append(c.LostFeatures, f)
		}
	}

	for res, targetLimit := range target.Limits {
		currentLimit, exists := current.Limits[res]
		if !exists {
			c.NewResources[res] = targetLimit
			continue
		}
		if targetLimit == currentLimit {
			continue
		}

		change := ResourceChange{From: currentLimit, To: targetLimit}
		switch {
		case currentLimit == Unlimited:
			// Losing unlimited access is always a decrease.
			c.DecreasedLimits[res] = change
		case targetLimit == Unlimited:
			c.IncreasedLimits[res] = change
		case targetLimit > currentLimit:
			c.IncreasedLimits[res] = change
		default:
			c.DecreasedLimits[res] = change
		}
	}

	for res, currentLimit := range current.Limits {
		if _, exists := target.Limits[res]; !exists {
			c.RemovedResources[res] = currentLimit
		}
	}

	return c
}
