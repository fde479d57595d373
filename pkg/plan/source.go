package plan

import (
	"context"
	"sync"
)

// Source defines how plans are loaded into a catalog. Implementations may
// read from memory, configuration files, or a remote billing backend.
type Source interface {
	Load(ctx context.Context) (map[Tier]Plan, error)
}

// inMemSource implements Source over a static plan map.
type inMemSource struct {
	mu    sync.RWMutex
	plans map[Tier]Plan
}

// NewInMemSource returns an in-memory Source holding a deep copy of the
// given plans.
func NewInMemSource(plans map[Tier]Plan) Source {
	copied := make(map[Tier]Plan, len(plans))
	for tier, p := range plans {
		copied[tier] = p.clone()
	}
	return &inMemSource{plans: copied}
}

// Load returns a copy of all plans. The returned map is owned by the caller.
func (s *inMemSource) Load(ctx context.Context) (map[Tier]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[Tier]Plan, len(s.plans))
	for tier, p := range s.plans {
		copied[tier] = p.clone()
	}
	return copied, nil
}

// CatalogFromSource loads plans from the source and builds a validated catalog.
func CatalogFromSource(ctx context.Context, src Source) (*Catalog, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(plans)
}
