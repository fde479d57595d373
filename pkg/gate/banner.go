package gate

import (
	"fmt"
	"slices"

	"github.com/ghostworker/gatekit/pkg/plan"
	"github.com/ghostworker/gatekit/pkg/usage"
)

// WarnThreshold is the usage percentage above which a warning banner is
// surfaced. The boundary is inclusive on the quiet side: exactly 80 percent
// is still suppressed, 81 and above warns.
const WarnThreshold = 80

// BannerLevel classifies how urgent a usage banner is.
type BannerLevel string

const (
	BannerNone     BannerLevel = "none"
	BannerWarning  BannerLevel = "warning"
	BannerCritical BannerLevel = "critical"
)

// Banner describes the usage-limit banner state for a single resource.
type Banner struct {
	Resource   plan.Resource `json:"resource"`
	Percent    int           `json:"percent"`
	Level      BannerLevel   `json:"level"`
	Message    string        `json:"message,omitempty"`
	UpgradeURL string        `json:"upgrade_url,omitempty"`
}

// Visible reports whether the banner should be rendered at all.
func (b Banner) Visible() bool {
	return b.Level != BannerNone
}

// BannerFor computes the banner state for one resource: critical once the
// limit is reached, warning above WarnThreshold, suppressed otherwise.
// Unlimited resources never produce a banner.
func (g *Gate) BannerFor(tier plan.Tier, res plan.Resource, snap usage.Snapshot) (Banner, error) {
	pct, err := g.eval.PercentUsed(tier, res, snap)
	if err != nil {
		return Banner{}, err
	}
	atLimit, err := g.eval.IsAtLimit(tier, res, snap)
	if err != nil {
		return Banner{}, err
	}

	banner := Banner{Resource: res, Percent: pct, Level: BannerNone}

	switch {
	case atLimit:
		banner.Level = BannerCritical
		banner.Message = fmt.Sprintf("you have reached your %s limit", res)
	case pct > WarnThreshold:
		banner.Level = BannerWarning
		banner.Message = fmt.Sprintf("you have used %d%% of your %s limit", pct, res)
	}

	if banner.Visible() && tier != plan.TierEnterprise {
		banner.UpgradeURL = UpgradePath
	}

	return banner, nil
}

// Banners returns the visible banners across all catalog resources, most
// urgent first (critical before warning, higher percentages first within
// the same level).
func (g *Gate) Banners(tier plan.Tier, snap usage.Snapshot) []Banner {
	visible := make([]Banner, 0, len(plan.Resources()))
	for _, res := range plan.Resources() {
		banner, err := g.BannerFor(tier, res, snap)
		if err != nil {
			continue
		}
		if banner.Visible() {
			visible = append(visible, banner)
		}
	}

	slices.SortStableFunc(visible, func(a, b Banner) int {
		if a.Level != b.Level {
			if a.Level == BannerCritical {
				return -1
			}
			return 1
		}
		return b.Percent - a.Percent
	})

	return visible
}
