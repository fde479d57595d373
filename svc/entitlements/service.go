package entitlements

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ghostworker/gatekit/pkg/gate"
	"github.com/ghostworker/gatekit/pkg/plan"
	"github.com/ghostworker/gatekit/pkg/usage"
)

// TierResolver resolves the plan tier for a tenant. Implementations typically
// read a subscription store; the default reads the request context.
type TierResolver func(ctx context.Context, tenantID uuid.UUID) (plan.Tier, error)

// TierContextResolver is the default resolver: it returns the tier stored in
// the context by upstream middleware, degrading to free when absent.
func TierContextResolver(ctx context.Context, _ uuid.UUID) (plan.Tier, error) {
	if tier, ok := gate.TierFromContext(ctx); ok {
		return tier, nil
	}
	return plan.TierFree, nil
}

// Option configures the entitlements service.
type Option func(*Service)

// WithTierResolver sets a custom tier resolver. Nil resolvers are ignored.
func WithTierResolver(fn TierResolver) Option {
	return func(s *Service) {
		if fn != nil {
			s.resolver = fn
		}
	}
}

// WithLogger sets the logger used for denial diagnostics. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// Service answers entitlement questions for tenants: can they create another
// resource, how much quota is left, which features their plan includes, and
// whether a downgrade would strand usage above the target plan's limits.
//
// The service is read-only over its collaborators and safe for concurrent
// use: the catalog is immutable and counters are registered at startup.
type Service struct {
	catalog  *plan.Catalog
	gate     *gate.Gate
	eval     *usage.Evaluator
	counters usage.CounterRegistry
	resolver TierResolver
	log      *slog.Logger
}

// New creates an entitlements service over the given catalog and counters.
// A nil registry is replaced with an empty one; resources without a counter
// then fail with usage.ErrNoCounterRegistered on quota checks.
func New(catalog *plan.Catalog, counters usage.CounterRegistry, opts ...Option) (*Service, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if counters == nil {
		counters = usage.NewRegistry()
	}

	s := &Service{
		catalog:  catalog,
		gate:     gate.New(catalog),
		eval:     usage.NewEvaluator(catalog),
		counters: counters,
		resolver: TierContextResolver,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CanCreate checks whether the tenant may create one more instance of the
// resource. Returns nil when allowed, ErrLimitExceeded when the quota is
// exhausted.
func (s *Service) CanCreate(ctx context.Context, tenantID uuid.UUID, res plan.Resource) error {
	tier, err := s.resolver(ctx, tenantID)
	if err != nil {
		return err
	}

	limit, err := s.catalog.Limit(tier, res)
	if err != nil {
		return err
	}
	if limit == plan.Unlimited {
		return nil
	}

	current, err := s.count(ctx, tenantID, res)
	if err != nil {
		return err
	}

	if current >= limit {
		s.log.DebugContext(ctx, "resource creation denied",
			slog.String("tenant_id", tenantID.String()),
			slog.String("resource", string(res)),
			slog.Int64("current", current),
			slog.Int64("limit", limit),
		)
		return ErrLimitExceeded
	}
	return nil
}

// GetUsage returns the current usage and limit for a resource.
func (s *Service) GetUsage(ctx context.Context, tenantID uuid.UUID, res plan.Resource) (used, limit int64, err error) {
	tier, err := s.resolver(ctx, tenantID)
	if err != nil {
		return 0, 0, err
	}

	limit, err = s.catalog.Limit(tier, res)
	if err != nil {
		return 0, 0, err
	}

	used, err = s.count(ctx, tenantID, res)
	if err != nil {
		return 0, 0, err
	}
	return used, limit, nil
}

// GetUsageSafe is a convenience wrapper for dashboards: it returns zero
// values instead of an error when usage cannot be obtained.
func (s *Service) GetUsageSafe(ctx context.Context, tenantID uuid.UUID, res plan.Resource) (used, limit int64) {
	used, limit, _ = s.GetUsage(ctx, tenantID, res)
	return used, limit
}

// GetAllUsage returns usage and limit pairs for every catalog resource.
// Counter errors are tolerated per resource, leaving that usage at zero, so
// one broken counter does not blank the whole dashboard.
func (s *Service) GetAllUsage(ctx context.Context, tenantID uuid.UUID) (map[plan.Resource]usage.UsageInfo, error) {
	tier, err := s.resolver(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := make(map[plan.Resource]usage.UsageInfo, len(plan.Resources()))
	for _, res := range plan.Resources() {
		limit, err := s.catalog.Limit(tier, res)
		if err != nil {
			continue
		}

		info := usage.UsageInfo{Limit: limit}
		if counter, ok := s.counters[res]; ok {
			if current, err := counter(ctx, tenantID); err == nil {
				info.Current = current
			}
		}
		result[res] = info
	}
	return result, nil
}

// HasFeature reports whether the tenant's plan includes the feature.
// Resolver failures read as "not available".
func (s *Service) HasFeature(ctx context.Context, tenantID uuid.UUID, feature plan.Feature) bool {
	tier, err := s.resolver(ctx, tenantID)
	if err != nil {
		return false
	}
	return s.catalog.HasFeature(tier, feature)
}

// Check evaluates a gate requirement for the tenant using live counters.
func (s *Service) Check(ctx context.Context, tenantID uuid.UUID, req gate.Requirement) (gate.Decision, error) {
	tier, err := s.resolver(ctx, tenantID)
	if err != nil {
		return gate.Decision{}, err
	}

	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return gate.Decision{}, err
	}

	decision, err := s.gate.Check(tier, req, snap)
	if err != nil {
		return gate.Decision{}, err
	}

	if !decision.Allowed {
		s.log.InfoContext(ctx, "gate denied",
			slog.String("tenant_id", tenantID.String()),
			slog.String("tier", string(tier)),
			slog.String("reason", string(decision.Reason)),
		)
	}
	return decision, nil
}

// Banners returns the visible usage banners for the tenant, most urgent
// first.
func (s *Service) Banners(ctx context.Context, tenantID uuid.UUID) ([]gate.Banner, error) {
	tier, err := s.resolver(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.gate.Banners(tier, snap), nil
}

// CanDowngrade checks whether the tenant's current usage fits within the
// target tier's limits. Resources without a registered counter cannot be
// verified and are allowed through.
func (s *Service) CanDowngrade(ctx context.Context, tenantID uuid.UUID, target plan.Tier) error {
	if err := s.VerifyTier(target); err != nil {
		return err
	}

	targetPlan := s.catalog.Get(target)
	for res, targetLimit := range targetPlan.Limits {
		if targetLimit == plan.Unlimited {
			continue
		}

		counter, ok := s.counters[res]
		if !ok {
			continue
		}

		current, err := counter(ctx, tenantID)
		if err != nil {
			return errors.Join(usage.ErrFailedToCount, err)
		}
		if current > targetLimit {
			return ErrDowngradeNotPossible
		}
	}
	return nil
}

// VerifyTier checks that the tier has a plan in the catalog.
func (s *Service) VerifyTier(tier plan.Tier) error {
	if _, ok := s.catalog.Plans()[tier]; !ok {
		return ErrTierNotFound
	}
	return nil
}

func (s *Service) count(ctx context.Context, tenantID uuid.UUID, res plan.Resource) (int64, error) {
	counter, ok := s.counters[res]
	if !ok {
		return 0, usage.ErrNoCounterRegistered
	}
	current, err := counter(ctx, tenantID)
	if err != nil {
		return 0, errors.Join(usage.ErrFailedToCount, err)
	}
	return current, nil
}

// snapshot assembles a point-in-time usage snapshot from the registered
// counters. Resources without a counter stay at zero.
func (s *Service) snapshot(ctx context.Context, tenantID uuid.UUID) (usage.Snapshot, error) {
	var snap usage.Snapshot
	for res, counter := range s.counters {
		current, err := counter(ctx, tenantID)
		if err != nil {
			return usage.Snapshot{}, errors.Join(usage.ErrFailedToCount, err)
		}
		if err := snap.Set(res, current); err != nil {
			return usage.Snapshot{}, err
		}
	}
	return snap, nil
}
