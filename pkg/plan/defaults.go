package plan

// DefaultCatalog returns the four production tiers with their stock limits.
// Free limits match the values seeded for self-registration; enterprise is
// unlimited across the board.
func DefaultCatalog() *Catalog {
	return MustCatalog(map[Tier]Plan{
		TierFree: {
			Name:        "Free",
			Description: "Perfect for getting started",
			Limits: map[Resource]int64{
				ResourceConversations: 100,
				ResourceMessages:      1000,
				ResourceIntegrations:  1,
				ResourceTeamMembers:   1,
				ResourceAPICalls:      1000,
				ResourceStorageMB:     100,
			},
			Features:           []Feature{},
			RateLimitPerMinute: 60,
			PriceMonthly:       Money{Amount: 0, Currency: "USD"},
			PriceYearly:        Money{Amount: 0, Currency: "USD"},
		},
		TierPro: {
			Name:        "Pro",
			Description: "For growing teams",
			Limits: map[Resource]int64{
				ResourceConversations: 1000,
				ResourceMessages:      10000,
				ResourceIntegrations:  5,
				ResourceTeamMembers:   5,
				ResourceAPICalls:      10000,
				ResourceStorageMB:     1000,
			},
			Features: []Feature{
				FeatureAPI,
				FeatureAnalytics,
				FeatureIntegrations,
			},
			RateLimitPerMinute: 200,
			PriceMonthly:       Money{Amount: 2900, Currency: "USD"},
			PriceYearly:        Money{Amount: 29000, Currency: "USD"},
			Popular:            true,
		},
		TierBusiness: {
			Name:        "Business",
			Description: "For companies that need scale",
			Limits: map[Resource]int64{
				ResourceConversations: 10000,
				ResourceMessages:      100000,
				ResourceIntegrations:  20,
				ResourceTeamMembers:   25,
				ResourceAPICalls:      100000,
				ResourceStorageMB:     10000,
			},
			Features: []Feature{
				FeatureAPI,
				FeatureAnalytics,
				FeatureIntegrations,
				FeatureSSO,
				FeaturePrioritySupport,
			},
			RateLimitPerMinute: 500,
			PriceMonthly:       Money{Amount: 9900, Currency: "USD"},
			PriceYearly:        Money{Amount: 99000, Currency: "USD"},
		},
		TierEnterprise: {
			Name:        "Enterprise",
			Description: "Custom limits and white-glove support",
			Limits: map[Resource]int64{
				ResourceConversations: Unlimited,
				ResourceMessages:      Unlimited,
				ResourceIntegrations:  Unlimited,
				ResourceTeamMembers:   Unlimited,
				ResourceAPICalls:      Unlimited,
				ResourceStorageMB:     Unlimited,
			},
			Features: []Feature{
				FeatureAPI,
				FeatureAnalytics,
				FeatureIntegrations,
				FeatureSSO,
				FeaturePrioritySupport,
				FeatureWhiteLabel,
			},
			RateLimitPerMinute: 1000,
			PriceMonthly:       Money{Amount: 29900, Currency: "USD"},
			PriceYearly:        Money{Amount: 299000, Currency: "USD"},
		},
	})
}
