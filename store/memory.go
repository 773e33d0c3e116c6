// Package store provides telemetry cache backends for the rate limit gate.
//
// Currently supported backends:
//   - MemoryStore: in-memory store for single-instance applications
//   - RedisStore: Redis-based store shared by several application instances
//
// Stores implement the ratelimiter.Store interface: integer values under
// string keys, each with its own expiry.
//
// Example usage:
//
//	ctx := context.Background()
//	s := store.NewMemory(ctx, time.Minute) // cleanup interval = 1 minute
//	gate := ratelimiter.NewGate(s, client)
package store

import (
	"context"
	"sync"
	"time"

	"github.com/jassus213/go-unsplash/ratelimiter"
)

// entry stores a value and its expiration time.
type entry struct {
	value     int64
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of ratelimiter.Store.
//
// Expired entries are never returned. A background goroutine can optionally
// remove them from memory.
//
// Note: MemoryStore is suitable for single-instance applications.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

var _ ratelimiter.Store = (*MemoryStore)(nil)

// NewMemory creates a new MemoryStore instance.
//
// ctx: a parent context used to manage the lifecycle of the background cleanup goroutine.
// cleanupInterval: interval at which expired entries are removed. Pass 0 to disable cleanup.
func NewMemory(ctx context.Context, cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}

	if cleanupInterval > 0 {
		go s.runCleanup(ctx, cleanupInterval)
	}

	return s
}

// WithClock replaces the time source. Intended for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// Get returns the value stored under key if it has not expired yet.
func (s *MemoryStore) Get(_ context.Context, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		return 0, false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return 0, false, nil
	}
	return e.value, true, nil
}

// Set stores value under key with an expiry of ttl from now.
func (s *MemoryStore) Set(_ context.Context, key string, value int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// TTL returns the time left before key expires, or false if it is missing.
func (s *MemoryStore) TTL(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		return 0, false
	}
	left := e.expiresAt.Sub(s.now())
	if left <= 0 {
		return 0, false
	}
	return left, true
}

// runCleanup periodically removes expired entries until ctx is done.
func (s *MemoryStore) runCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-ctx.Done():
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}
