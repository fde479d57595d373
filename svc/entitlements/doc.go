// Package entitlements answers plan entitlement questions for tenants by
// combining the plan catalog, live usage counters, and the access gate into
// one service-layer facade.
//
// The service resolves the tenant's tier through a pluggable TierResolver
// (the default reads the tier that auth middleware stored in the request
// context), pulls current usage through a usage.CounterRegistry, and exposes
// the questions application handlers actually ask:
//
//	svc, err := entitlements.New(plan.DefaultCatalog(), usage.FromRecorder(recorder))
//	if err != nil {
//	    return err
//	}
//
//	if err := svc.CanCreate(ctx, tenantID, plan.ResourceConversations); err != nil {
//	    // 402, render upgrade prompt
//	}
//
//	decision, err := svc.Check(ctx, tenantID, gate.Requirement{
//	    MinTier:  plan.TierPro,
//	    Resource: plan.ResourceIntegrations,
//	})
//
// Banners returns the usage warnings a dashboard should render, and
// CanDowngrade protects plan changes that would strand existing usage above
// the target plan's limits.
package entitlements
