package usage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghostworker/gatekit/pkg/plan"
)

// Recorder tracks per-tenant usage counters over monthly billing periods.
// It plays the role of the usage-tracking collaborator: gating logic only
// ever reads snapshots, while the application's write paths call Increment
// as tenants consume resources.
type Recorder interface {
	// Increment bumps a tenant's counter for the current period by delta.
	// Delta must be positive.
	Increment(ctx context.Context, tenantID uuid.UUID, res plan.Resource, delta int64) error

	// Snapshot returns the tenant's counters for the current period.
	// A tenant with no recorded usage gets a zero snapshot.
	Snapshot(ctx context.Context, tenantID uuid.UUID) (Snapshot, error)

	// Reset drops all counters for the tenant's current period.
	Reset(ctx context.Context, tenantID uuid.UUID) error
}

// periodOf returns the calendar-month window containing now. Counters roll
// over automatically when the month changes.
func periodOf(now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// periodKey returns the storage key suffix for the period containing now.
func periodKey(now time.Time) string {
	return now.UTC().Format("2006-01")
}

// MemoryRecorderOption configures a MemoryRecorder.
type MemoryRecorderOption func(*MemoryRecorder)

// WithClock overrides the time source. Intended for tests.
func WithClock(clock func() time.Time) MemoryRecorderOption {
	return func(r *MemoryRecorder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// MemoryRecorder is an in-memory Recorder. Suitable for single-process
// deployments and tests; use RedisRecorder when counters must be shared.
type MemoryRecorder struct {
	mu      sync.RWMutex
	periods map[uuid.UUID]map[string]*Snapshot
	clock   func() time.Time
}

// NewMemoryRecorder returns an empty in-memory recorder.
func NewMemoryRecorder(opts ...MemoryRecorderOption) *MemoryRecorder {
	r := &MemoryRecorder{
		periods: make(map[uuid.UUID]map[string]*Snapshot),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Increment bumps the tenant's counter for the current period.
func (r *MemoryRecorder) Increment(ctx context.Context, tenantID uuid.UUID, res plan.Resource, delta int64) error {
	if delta <= 0 {
		return ErrInvalidIncrement
	}

	now := r.clock()
	key := periodKey(now)

	r.mu.Lock()
	defer r.mu.Unlock()

	tenant, ok := r.periods[tenantID]
	if !ok {
		tenant = make(map[string]*Snapshot)
		r.periods[tenantID] = tenant
	}

	snap, ok := tenant[key]
	if !ok {
		start, end := periodOf(now)
		snap = &Snapshot{PeriodStart: start, PeriodEnd: end}
		tenant[key] = snap
	}

	return snap.add(res, delta)
}

// Snapshot returns a copy of the tenant's counters for the current period.
func (r *MemoryRecorder) Snapshot(ctx context.Context, tenantID uuid.UUID) (Snapshot, error) {
	now := r.clock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if snap, ok := r.periods[tenantID][periodKey(now)]; ok {
		return *snap, nil
	}

	start, end := periodOf(now)
	return Snapshot{PeriodStart: start, PeriodEnd: end}, nil
}

// Reset drops the tenant's counters for the current period.
func (r *MemoryRecorder) Reset(ctx context.Context, tenantID uuid.UUID) error {
	now := r.clock()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.periods[tenantID], periodKey(now))
	return nil
}
