// Package plan defines subscription tiers and the immutable plan catalog
// used for usage gating across the application.
//
// A Catalog maps each Tier to its Plan: per-resource limits, feature flags,
// pricing, and the tier's request-rate allowance. Catalogs are built once at
// process start (from code via DefaultCatalog, or from a Source such as a
// YAML file) and never mutated afterwards, which makes them safe for
// unsynchronized concurrent reads.
//
// Lookup semantics:
//
//   - Unknown tiers fall back to the free plan. Tier values come from a
//     trusted internal enumeration, so a stray value degrades gracefully.
//   - Unknown resource keys fail with ErrUnknownResource. Passing one is a
//     caller bug and should surface immediately.
//   - A limit of Unlimited (-1) means the resource is never gated.
//
// Basic usage:
//
//	catalog := plan.DefaultCatalog()
//
//	limit, err := catalog.Limit(plan.TierPro, plan.ResourceConversations)
//	if err != nil {
//	    // unknown resource key
//	}
//
//	if catalog.HasFeature(plan.TierBusiness, plan.FeatureSSO) {
//	    // enable SSO settings
//	}
//
// Loading from a file instead:
//
//	src := plan.NewFileSource("plans.yaml")
//	catalog, err := plan.CatalogFromSource(ctx, src)
//
// Compare reports the limit and feature differences between two plans and
// backs downgrade validation: going from any limit to Unlimited counts as an
// increase, and losing Unlimited counts as a decrease.
package plan
