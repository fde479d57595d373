// Package usage evaluates tenant resource consumption against plan limits.
//
// The Evaluator is the read side: given a tier and a usage Snapshot it
// answers how close the tenant is to each quota (PercentUsed, Remaining)
// and whether a resource is exhausted (IsAtLimit). All evaluator methods
// are pure functions over the immutable plan catalog and the snapshot, so
// they are safe to call concurrently from request handlers.
//
// Two contracts worth knowing:
//
//   - Unlimited resources (plan.Unlimited) are never at limit and always
//     report 0 percent, no matter how large usage grows. Division by the
//     sentinel is never attempted.
//   - Over-quota is a valid state, not an error. PercentUsed is not capped
//     at 100 so the overshoot stays visible.
//
// The write side is the Recorder: monthly period counters incremented by
// the application as tenants consume resources. MemoryRecorder suits a
// single process; RedisRecorder shares counters across processes using a
// Redis hash per tenant and period.
//
//	rec := usage.NewMemoryRecorder()
//	_ = rec.Increment(ctx, tenantID, plan.ResourceMessages, 1)
//
//	snap, _ := rec.Snapshot(ctx, tenantID)
//	eval := usage.NewEvaluator(plan.DefaultCatalog())
//
//	pct, err := eval.PercentUsed(plan.TierFree, plan.ResourceMessages, snap)
//	if err != nil {
//	    // unknown resource key: a caller bug, not a runtime condition
//	}
//
// CounterRegistry bridges to external usage sources (a repository count, a
// metrics aggregate): register one CounterFunc per resource and hand the
// registry to the entitlements service.
package usage
