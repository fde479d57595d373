package gate

import (
	"fmt"

	"github.com/ghostworker/gatekit/pkg/plan"
	"github.com/ghostworker/gatekit/pkg/usage"
)

// UpgradePath is the route presentation collaborators send tenants to when
// a gate denies access.
const UpgradePath = "/pricing"

// DenyReason identifies why a gate denied access.
type DenyReason string

const (
	// ReasonTierTooLow means the tenant's tier is ordered below the
	// requirement's minimum tier.
	ReasonTierTooLow DenyReason = "tier_too_low"

	// ReasonOverQuota means the tenant has exhausted the limit for the
	// requirement's resource.
	ReasonOverQuota DenyReason = "over_quota"
)

// Requirement describes what a gated surface needs. Both fields are
// optional: the zero value allows everything.
type Requirement struct {
	// MinTier, when set, requires the tenant's tier to be at or above it.
	MinTier plan.Tier

	// Resource, when set, requires the tenant to have quota left for it.
	Resource plan.Resource
}

// Decision is the outcome of a gate check. On Deny the caller renders
// fallback content; the gate itself has no side effects.
type Decision struct {
	Allowed    bool       `json:"allowed"`
	Reason     DenyReason `json:"reason,omitempty"`
	Message    string     `json:"message,omitempty"`
	UpgradeURL string     `json:"upgrade_url,omitempty"`
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Gate decides whether a tenant may access a gated surface, combining the
// tier ordering check with quota evaluation. Stateless and synchronous:
// one call per render.
type Gate struct {
	catalog *plan.Catalog
	eval    *usage.Evaluator
}

// New returns a gate bound to the given catalog. Panics if catalog is nil.
func New(catalog *plan.Catalog) *Gate {
	if catalog == nil {
		panic("gate: catalog is required")
	}
	return &Gate{
		catalog: catalog,
		eval:    usage.NewEvaluator(catalog),
	}
}

// Check evaluates the requirement for a tenant, in order:
//
//  1. a required tier above the tenant's tier denies with ReasonTierTooLow,
//     regardless of usage
//  2. an exhausted resource quota denies with ReasonOverQuota
//  3. otherwise the tenant is allowed
//
// Unknown tiers degrade to free. The only error condition is an unknown
// resource key in the requirement, which indicates a caller bug.
func (g *Gate) Check(tier plan.Tier, req Requirement, snap usage.Snapshot) (Decision, error) {
	if req.MinTier != "" && !tier.AtLeast(req.MinTier) {
		return g.deny(tier, ReasonTierTooLow,
			fmt.Sprintf("this feature requires the %s plan or higher", req.MinTier)), nil
	}

	if req.Resource != "" {
		atLimit, err := g.eval.IsAtLimit(tier, req.Resource, snap)
		if err != nil {
			return Decision{}, err
		}
		if atLimit {
			return g.deny(tier, ReasonOverQuota,
				fmt.Sprintf("you have reached your %s limit for the current period", req.Resource)), nil
		}
	}

	return Allow(), nil
}

func (g *Gate) deny(tier plan.Tier, reason DenyReason, message string) Decision {
	d := Decision{
		Allowed: false,
		Reason:  reason,
		Message: message,
	}
	// Enterprise has nowhere to upgrade to.
	if tier != plan.TierEnterprise {
		d.UpgradeURL = UpgradePath
	}
	return d
}

// Catalog returns the catalog this gate evaluates against.
func (g *Gate) Catalog() *plan.Catalog {
	return g.catalog
}
