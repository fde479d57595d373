// Package gate turns plan tiers and usage snapshots into access decisions
// for feature-gated surfaces.
//
// A Requirement names what a surface needs: a minimum tier, a resource with
// quota left, or both. Check evaluates the requirement in a fixed order —
// tier first, then quota — and returns a Decision the presentation layer can
// act on: render the feature, or render fallback content with the deny
// reason and an upgrade call-to-action.
//
//	g := gate.New(plan.DefaultCatalog())
//
//	decision, err := g.Check(tenantTier, gate.Requirement{
//	    MinTier:  plan.TierBusiness,
//	    Resource: plan.ResourceConversations,
//	}, snapshot)
//	if err != nil {
//	    // requirement named an unknown resource
//	}
//	if !decision.Allowed {
//	    // decision.Reason, decision.Message, decision.UpgradeURL
//	}
//
// The package also computes usage-limit banner states: a warning once a
// resource passes WarnThreshold percent and a critical banner once the limit
// is reached. Exactly at the threshold the banner stays suppressed.
//
// For HTTP delivery, Middleware enforces a requirement around a handler,
// reading the tenant's tier and snapshot from the request context (see
// SetTierToContext and SetSnapshotToContext). A missing tier degrades to
// free rather than failing: tier values come from a trusted internal
// enumeration, and free is the safe floor.
package gate
