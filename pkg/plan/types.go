package plan

// Resource represents a countable tenant-scoped quantity subject to a
// per-tier limit.
type Resource string

const (
	ResourceConversations Resource = "conversations"
	ResourceMessages      Resource = "messages"
	ResourceIntegrations  Resource = "integrations"
	ResourceTeamMembers   Resource = "team_members"
	ResourceAPICalls      Resource = "api_calls"
	ResourceStorageMB     Resource = "storage_mb"
)

// Resources returns all countable resources covered by the catalog.
func Resources() []Resource {
	return []Resource{
		ResourceConversations,
		ResourceMessages,
		ResourceIntegrations,
		ResourceTeamMembers,
		ResourceAPICalls,
		ResourceStorageMB,
	}
}

const (
	// Unlimited indicates no limit for a resource (-1 chosen for SQL compatibility).
	Unlimited int64 = -1
)

// Feature represents a plan-specific capability that can be enabled/disabled.
type Feature string

const (
	FeatureAPI             Feature = "api"
	FeatureSSO             Feature = "sso"
	FeatureAnalytics       Feature = "analytics"
	FeatureIntegrations    Feature = "integrations"
	FeaturePrioritySupport Feature = "priority_support"
	FeatureWhiteLabel      Feature = "white_label"
)

// Money represents a monetary amount in the smallest currency unit.
// For example, $29.00 USD would be Amount: 2900, Currency: "USD".
type Money struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

// IsZero reports whether the amount is zero (free or custom pricing).
func (m Money) IsZero() bool {
	return m.Amount == 0
}
