package usage

import (
	"time"

	"github.com/ghostworker/gatekit/pkg/plan"
)

// Snapshot is a read-only view of a tenant's usage counters for the current
// billing period. It is produced by a usage-tracking collaborator (see
// Recorder) and consumed by the evaluator; this package never mutates a
// snapshot after handing it out.
type Snapshot struct {
	Conversations int64 `json:"conversations"`
	Messages      int64 `json:"messages"`
	Integrations  int64 `json:"integrations"`
	TeamMembers   int64 `json:"team_members"`
	APICalls      int64 `json:"api_calls"`
	StorageMB     int64 `json:"storage_mb"`

	PeriodStart time.Time `json:"period_start,omitzero"`
	PeriodEnd   time.Time `json:"period_end,omitzero"`
}

// Get returns the counter for the given resource.
// Unknown resource keys fail with plan.ErrUnknownResource.
func (s Snapshot) Get(res plan.Resource) (int64, error) {
	switch res {
	case plan.ResourceConversations:
		return s.Conversations, nil
	case plan.ResourceMessages:
		return s.Messages, nil
	case plan.ResourceIntegrations:
		return s.Integrations, nil
	case plan.ResourceTeamMembers:
		return s.TeamMembers, nil
	case plan.ResourceAPICalls:
		return s.APICalls, nil
	case plan.ResourceStorageMB:
		return s.StorageMB, nil
	default:
		return 0, plan.ErrUnknownResource
	}
}

// Set overwrites the counter for the given resource.
// Unknown resource keys fail with plan.ErrUnknownResource.
func (s *Snapshot) Set(res plan.Resource, v int64) error {
	switch res {
	case plan.ResourceConversations:
		s.Conversations = v
	case plan.ResourceMessages:
		s.Messages = v
	case plan.ResourceIntegrations:
		s.Integrations = v
	case plan.ResourceTeamMembers:
		s.TeamMembers = v
	case plan.ResourceAPICalls:
		s.APICalls = v
	case plan.ResourceStorageMB:
		s.StorageMB = v
	default:
		return plan.ErrUnknownResource
	}
	return nil
}

// add bumps the counter for the given resource. Used by recorders only.
func (s *Snapshot) add(res plan.Resource, delta int64) error {
	switch res {
	case plan.ResourceConversations:
		s.Conversations += delta
	case plan.ResourceMessages:
		s.Messages += delta
	case plan.ResourceIntegrations:
		s.Integrations += delta
	case plan.ResourceTeamMembers:
		s.TeamMembers += delta
	case plan.ResourceAPICalls:
		s.APICalls += delta
	case plan.ResourceStorageMB:
		s.StorageMB += delta
	default:
		return plan.ErrUnknownResource
	}
	return nil
}
