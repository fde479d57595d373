package plan

// Tier represents a named subscription level.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierBusiness   Tier = "business"
	TierEnterprise Tier = "enterprise"
)

// Tiers returns all known tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierFree, TierPro, TierBusiness, TierEnterprise}
}

// ParseTier converts a raw string into a Tier. Unknown values fall back
// to TierFree: tier strings originate from a trusted internal enumeration,
// so an unrecognized value is treated as a recoverable default rather
// than an error.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierFree, TierPro, TierBusiness, TierEnterprise:
		return Tier(s)
	default:
		return TierFree
	}
}

// Valid reports whether the tier is one of the known values.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierPro, TierBusiness, TierEnterprise:
		return true
	default:
		return false
	}
}

// Ordinal returns the explicit rank of the tier for ordering comparisons.
// Unknown tiers rank as TierFree.
func (t Tier) Ordinal() int {
	switch t {
	case TierPro:
		return 1
	case TierBusiness:
		return 2
	case TierEnterprise:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether t is ordered at or above other.
func (t Tier) AtLeast(other Tier) bool {
	return t.Ordinal() >= other.Ordinal()
}

func (t Tier) String() string {
	return string(t)
}
