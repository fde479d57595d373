package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSource loads plans from a YAML file. The file is re-read on every
// Load call so a catalog rebuild picks up edits without a restart.
type fileSource struct {
	path string
}

// NewFileSource returns a Source that reads plans from the YAML file at path.
//
// Expected layout:
//
//	plans:
//	  free:
//	    name: Free
//	    limits:
//	      conversations: 100
//	      messages: 1000
//	    features: [api]
//	    rate_limit_per_minute: 60
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

type planFile struct {
	Plans map[string]planYAML `yaml:"plans"`
}

type planYAML struct {
	Name               string           `yaml:"name"`
	Description        string           `yaml:"description"`
	Limits             map[string]int64 `yaml:"limits"`
	Features           []string         `yaml:"features"`
	RateLimitPerMinute int              `yaml:"rate_limit_per_minute"`
	PriceMonthly       Money            `yaml:"price_monthly"`
	PriceYearly        Money            `yaml:"price_yearly"`
	Popular            bool             `yaml:"popular"`
}

func (s *fileSource) Load(ctx context.Context) (map[Tier]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var file planFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[Tier]Plan, len(file.Plans))
	for rawTier, py := range file.Plans {
		tier := Tier(rawTier)
		// Config files are authored by operators, so unknown tier names are
		// a configuration bug rather than a recoverable lookup.
		if !tier.Valid() {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("unknown tier %q in %s", rawTier, s.path))
		}

		limits := make(map[Resource]int64, len(py.Limits))
		for rawRes, limit := range py.Limits {
			limits[Resource(rawRes)] = limit
		}

		features := make([]Feature, 0, len(py.Features))
		for _, f := range py.Features {
			features = append(features, Feature(f))
		}

		plans[tier] = Plan{
			Tier:               tier,
			Name:               py.Name,
			Description:        py.Description,
			Limits:             limits,
			Features:           features,
			RateLimitPerMinute: py.RateLimitPerMinute,
			PriceMonthly:       py.PriceMonthly,
			PriceYearly:        py.PriceYearly,
			Popular:            py.Popular,
		}
	}

	return plans, nil
}
