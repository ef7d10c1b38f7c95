package services

import (
	"context"
	"sync"
	"time"

	"github.com/poofware/buyer-leads-service/internal/config"
	"github.com/poofware/buyer-leads-service/internal/repositories"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

// RateLimitDecision is the outcome of one Check. RetryAfter is only set
// when the request was rejected.
type RateLimitDecision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RateLimiterService applies a fixed-window limit per client key.
type RateLimiterService interface {
	Check(ctx context.Context, key string) (RateLimitDecision, error)
	// Sweep drops windows that have fully elapsed.
	Sweep(ctx context.Context) (int, error)
}

type rateLimiterService struct {
	store  repositories.RateLimitStore
	window time.Duration
	limit  int

	// mu serializes the read-modify-write on the store.
	mu  sync.Mutex
	now func() time.Time
}

func NewRateLimiterService(store repositories.RateLimitStore, cfg *config.Config) RateLimiterService {
	return &rateLimiterService{
		store:  store,
		window: cfg.RateLimitWindow,
		limit:  cfg.RateLimitMaxRequests,
		now:    time.Now,
	}
}

func (s *rateLimiterService) Check(ctx context.Context, key string) (RateLimitDecision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, err := s.store.Get(ctx, key)
	if err != nil {
		return RateLimitDecision{}, err
	}

	if entry == nil || now.Sub(entry.WindowStart) >= s.window {
		fresh := repositories.RateLimitEntry{Count: 1, WindowStart: now}
		if err := s.store.Set(ctx, key, fresh, s.window); err != nil {
			return RateLimitDecision{}, err
		}
		return RateLimitDecision{Allowed: true}, nil
	}

	elapsed := now.Sub(entry.WindowStart)
	if entry.Count >= s.limit {
		utils.Logger.Warnf("Rate limit exceeded (key: %s)", key)
		return RateLimitDecision{Allowed: false, RetryAfter: s.window - elapsed}, nil
	}

	entry.Count++
	if err := s.store.Set(ctx, key, *entry, s.window-elapsed); err != nil {
		return RateLimitDecision{}, err
	}
	return RateLimitDecision{Allowed: true}, nil
}

func (s *rateLimiterService) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.Sweep(ctx, s.now().Add(-s.window))
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to sweep rate limit windows")
		return 0, err
	}
	if removed > 0 {
		utils.Logger.Infof("Rate limit sweep removed %d stale windows", removed)
	}
	return removed, nil
}
