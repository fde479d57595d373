package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory sliding-window Store. Expired windows are
// swept by a background loop; call Close to stop it.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	// maxWindow is the widest window observed; the sweeper keeps entries
	// younger than this so it never drops still-countable timestamps.
	maxWindow time.Duration

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired windows are swept.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// NewMemoryStore creates an in-memory store with automatic cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:         make(map[string][]time.Time),
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// RecordIfAllowed atomically checks the window and records the timestamp if
// the limit is not yet reached.
func (s *MemoryStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if window > s.maxWindow {
		s.maxWindow = window
	}
	valid := s.pruneLocked(key, now.Add(-window))

	if len(valid) >= limit {
		return false, int64(len(valid)), nil
	}

	valid = append(valid, now)
	s.windows[key] = valid
	return true, int64(len(valid)), nil
}

// CountInWindow returns the number of requests in the window ending now.
func (s *MemoryStore) CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid := s.pruneLocked(key, time.Now().Add(-window))
	return int64(len(valid)), nil
}

// Reset removes all recorded requests for the key.
func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

// pruneLocked drops timestamps at or before cutoff and returns the rest.
// Caller must hold s.mu.
func (s *MemoryStore) pruneLocked(key string, cutoff time.Time) []time.Time {
	timestamps, ok := s.windows[key]
	if !ok {
		return nil
	}

	valid := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	if len(valid) == 0 {
		delete(s.windows, key)
		return nil
	}
	s.windows[key] = valid
	return valid
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	retain := max(s.maxWindow, s.cleanupInterval)
	cutoff := time.Now().Add(-retain)
	for key := range s.windows {
		s.pruneLocked(key, cutoff)
	}
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}
