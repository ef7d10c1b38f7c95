package repositories

import (
	"context"
	"sync"
	"time"
)

// RateLimitEntry is one fixed window for one client key.
type RateLimitEntry struct {
	Count       int       `json:"count"`
	WindowStart time.Time `json:"windowStart"`
}

// RateLimitStore persists rate-limit windows. Implementations must be safe
// for concurrent use; the read-modify-write sequence is serialized by the
// caller.
type RateLimitStore interface {
	// Get returns nil, nil when the key has no window.
	Get(ctx context.Context, key string) (*RateLimitEntry, error)
	Set(ctx context.Context, key string, entry RateLimitEntry, ttl time.Duration) error
	// Sweep drops windows that started before olderThan and reports how many.
	Sweep(ctx context.Context, olderThan time.Time) (int, error)
}

type memoryRateLimitStore struct {
	mu      sync.Mutex
	entries map[string]RateLimitEntry
}

// NewMemoryRateLimitStore keeps windows in process memory. Counters are lost
// on restart and are not shared between instances.
func NewMemoryRateLimitStore() RateLimitStore {
	return &memoryRateLimitStore{entries: make(map[string]RateLimitEntry)}
}

func (s *memoryRateLimitStore) Get(_ context.Context, key string) (*RateLimitEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *memoryRateLimitStore) Set(_ context.Context, key string, entry RateLimitEntry, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
	return nil
}

func (s *memoryRateLimitStore) Sweep(_ context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if e.WindowStart.Before(olderThan) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}
