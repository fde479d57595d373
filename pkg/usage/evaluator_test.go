package usage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostworker/gatekit/pkg/plan"
	"github.com/ghostworker/gatekit/pkg/usage"
)

func testEvaluator(t *testing.T) *usage.Evaluator {
	t.Helper()
	return usage.NewEvaluator(plan.DefaultCatalog())
}

func TestNewEvaluator(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { usage.NewEvaluator(nil) })
	assert.NotNil(t, usage.NewEvaluator(plan.DefaultCatalog()))
}

func TestEvaluator_PercentUsed(t *testing.T) {
	t.Parallel()

	eval := testEvaluator(t)

	t.Run("free conversations at 80 of 100", func(t *testing.T) {
		t.Parallel()

		pct, err := eval.PercentUsed(plan.TierFree, plan.ResourceConversations, usage.Snapshot{Conversations: 80})

		require.NoError(t, err)
		assert.Equal(t, 80, pct)
	})

	t.Run("rounds to nearest integer", func(t *testing.T) {
		t.Parallel()

		// 333/1000 messages on free -> 33.3% -> 33
		pct, err := eval.PercentUsed(plan.TierFree, plan.ResourceMessages, usage.Snapshot{Messages: 333})
		require.NoError(t, err)
		assert.Equal(t, 33, pct)

		// 335/1000 -> 33.5% -> rounds up to 34
		pct, err = eval.PercentUsed(plan.TierFree, plan.ResourceMessages, usage.Snapshot{Messages: 335})
		require.NoError(t, err)
		assert.Equal(t, 34, pct)
	})

	t.Run("not capped at 100 when over quota", func(t *testing.T) {
		t.Parallel()

		pct, err := eval.PercentUsed(plan.TierFree, plan.ResourceConversations, usage.Snapshot{Conversations: 250})

		require.NoError(t, err)
		assert.Equal(t, 250, pct)
	})

	t.Run("unlimited resource reports zero", func(t *testing.T) {
		t.Parallel()

		pct, err := eval.PercentUsed(plan.TierEnterprise, plan.ResourceStorageMB, usage.Snapshot{StorageMB: 10_000_000})

		require.NoError(t, err)
		assert.Equal(t, 0, pct)
	})

	t.Run("unknown resource fails loudly", func(t *testing.T) {
		t.Parallel()

		_, err := eval.PercentUsed(plan.TierFree, plan.Resource("widgets"), usage.Snapshot{})

		assert.ErrorIs(t, err, plan.ErrUnknownResource)
	})

	t.Run("unknown tier falls back to free limits", func(t *testing.T) {
		t.Parallel()

		pct, err := eval.PercentUsed(plan.Tier("platinum"), plan.ResourceConversations, usage.Snapshot{Conversations: 50})

		require.NoError(t, err)
		assert.Equal(t, 50, pct)
	})

	t.Run("monotonically non-decreasing in usage", func(t *testing.T) {
		t.Parallel()

		prev := -1
		for current := int64(0); current <= 300; current++ {
			pct, err := eval.PercentUsed(plan.TierFree, plan.ResourceConversations, usage.Snapshot{Conversations: current})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pct, prev, "usage=%d", current)
			prev = pct
		}
	})
}

func TestEvaluator_IsAtLimit(t *testing.T) {
	t.Parallel()

	eval := testEvaluator(t)

	t.Run("below limit", func(t *testing.T) {
		t.Parallel()

		atLimit, err := eval.IsAtLimit(plan.TierFree, plan.ResourceConversations, usage.Snapshot{Conversations: 80})

		require.NoError(t, err)
		assert.False(t, atLimit)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		t.Parallel()

		atLimit, err := eval.IsAtLimit(plan.TierFree, plan.ResourceConversations, usage.Snapshot{Conversations: 100})

		require.NoError(t, err)
		assert.True(t, atLimit)
	})

	t.Run("over limit is still at limit, not an error", func(t *testing.T) {
		t.Parallel()

		atLimit, err := eval.IsAtLimit(plan.TierFree, plan.ResourceConversations, usage.Snapshot{Conversations: 150})

		require.NoError(t, err)
		assert.True(t, atLimit)
	})

	t.Run("unlimited is never at limit even for huge usage", func(t *testing.T) {
		t.Parallel()

		atLimit, err := eval.IsAtLimit(plan.TierEnterprise, plan.ResourceStorageMB, usage.Snapshot{StorageMB: 10_000_000})

		require.NoError(t, err)
		assert.False(t, atLimit)
	})

	t.Run("at-limit boundary holds for every finite limit", func(t *testing.T) {
		t.Parallel()

		catalog := plan.DefaultCatalog()
		for _, tier := range plan.Tiers() {
			for _, res := range plan.Resources() {
				limit, err := catalog.Limit(tier, res)
				require.NoError(t, err)
				if limit == plan.Unlimited {
					continue
				}

				var below, at usage.Snapshot
				require.NoError(t, setSnapshot(&below, res, limit-1))
				require.NoError(t, setSnapshot(&at, res, limit))

				atLimit, err := eval.IsAtLimit(tier, res, below)
				require.NoError(t, err)
				assert.False(t, atLimit, "%s/%s usage=limit-1", tier, res)

				atLimit, err = eval.IsAtLimit(tier, res, at)
				require.NoError(t, err)
				assert.True(t, atLimit, "%s/%s usage=limit", tier, res)
			}
		}
	})

	t.Run("unknown resource fails loudly", func(t *testing.T) {
		t.Parallel()

		_, err := eval.IsAtLimit(plan.TierFree, plan.Resource("widgets"), usage.Snapshot{})

		assert.ErrorIs(t, err, plan.ErrUnknownResource)
	})
}

// setSnapshot assigns a counter value through the public Snapshot fields.
func setSnapshot(snap *usage.Snapshot, res plan.Resource, value int64) error {
	switch res {
	case plan.ResourceConversations:
		snap.Conversations = value
	case plan.ResourceMessages:
		snap.Messages = value
	case plan.ResourceIntegrations:
		snap.Integrations = value
	case plan.ResourceTeamMembers:
		snap.TeamMembers = value
	case plan.ResourceAPICalls:
		snap.APICalls = value
	case plan.ResourceStorageMB:
		snap.StorageMB = value
	default:
		return plan.ErrUnknownResource
	}
	return nil
}

func TestEvaluator_Remaining(t *testing.T) {
	t.Parallel()

	eval := testEvaluator(t)

	t.Run("headroom left", func(t *testing.T) {
		t.Parallel()

		remaining, err := eval.Remaining(plan.TierFree, plan.ResourceConversations, usage.Snapshot{Conversations: 80})

		require.NoError(t, err)
		assert.Equal(t, int64(20), remaining)
	})

	t.Run("over quota floors at zero", func(t *testing.T) {
		t.Parallel()

		remaining, err := eval.Remaining(plan.TierFree, plan.ResourceConversations, usage.Snapshot{Conversations: 150})

		require.NoError(t, err)
		assert.Equal(t, int64(0), remaining)
	})

	t.Run("unlimited resource", func(t *testing.T) {
		t.Parallel()

		remaining, err := eval.Remaining(plan.TierEnterprise, plan.ResourceAPICalls, usage.Snapshot{APICalls: 123456})

		require.NoError(t, err)
		assert.Equal(t, plan.Unlimited, remaining)
	})
}

func TestEvaluator_Info(t *testing.T) {
	t.Parallel()

	eval := testEvaluator(t)

	info, err := eval.Info(plan.TierFree, plan.ResourceMessages, usage.Snapshot{Messages: 42})
	require.NoError(t, err)
	assert.Equal(t, usage.UsageInfo{Current: 42, Limit: 1000}, info)

	_, err = eval.Info(plan.TierFree, plan.Resource("widgets"), usage.Snapshot{})
	assert.ErrorIs(t, err, plan.ErrUnknownResource)
}

func TestEvaluator_AllInfo(t *testing.T) {
	t.Parallel()

	eval := testEvaluator(t)

	all := eval.AllInfo(plan.TierFree, usage.Snapshot{Conversations: 10, Messages: 20})

	require.Len(t, all, len(plan.Resources()))
	assert.Equal(t, usage.UsageInfo{Current: 10, Limit: 100}, all[plan.ResourceConversations])
	assert.Equal(t, usage.UsageInfo{Current: 20, Limit: 1000}, all[plan.ResourceMessages])
	assert.Equal(t, usage.UsageInfo{Current: 0, Limit: 1}, all[plan.ResourceIntegrations])
}

func TestSnapshot_Get(t *testing.T) {
	t.Parallel()

	snap := usage.Snapshot{
		Conversations: 1,
		Messages:      2,
		Integrations:  3,
		TeamMembers:   4,
		APICalls:      5,
		StorageMB:     6,
	}

	expected := map[plan.Resource]int64{
		plan.ResourceConversations: 1,
		plan.ResourceMessages:      2,
		plan.ResourceIntegrations:  3,
		plan.ResourceTeamMembers:   4,
		plan.ResourceAPICalls:      5,
		plan.ResourceStorageMB:     6,
	}

	for res, want := range expected {
		got, err := snap.Get(res)
		require.NoError(t, err)
		assert.Equal(t, want, got, res)
	}

	_, err := snap.Get(plan.Resource("widgets"))
	assert.ErrorIs(t, err, plan.ErrUnknownResource)
}
