package entitlements

import (
	"context"

	"github.com/ghostworker/gatekit/pkg/plan"
	"github.com/ghostworker/gatekit/pkg/usage"
)

// Config carries entitlements settings read from the environment.
type Config struct {
	// PlansPath points at a YAML plan catalog. Empty means the built-in
	// default catalog.
	PlansPath string `env:"ENTITLEMENTS_PLANS_PATH"`
}

// NewFromConfig builds the service from configuration: the plan catalog is
// loaded from cfg.PlansPath when set, otherwise the built-in defaults are
// used.
func NewFromConfig(ctx context.Context, cfg Config, counters usage.CounterRegistry, opts ...Option) (*Service, error) {
	catalog := plan.DefaultCatalog()

	if cfg.PlansPath != "" {
		src := plan.NewFileSource(cfg.PlansPath)
		loaded, err := plan.CatalogFromSource(ctx, src)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	return New(catalog, counters, opts...)
}
