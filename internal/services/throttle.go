package services

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterService throttles outbound calls made by background workers,
// keyed by a caller-chosen kind (e.g. "relance", "dpgf_import") so each
// gets its own independent token bucket.
type RateLimiterService struct {
	mu             sync.RWMutex
	limiters       map[string]*rate.Limiter
	requestsPerSec float64
	burstSize      int
}

// NewRateLimiterService builds a rate limiter service sharing one
// requests-per-second/burst policy across all kinds.
func NewRateLimiterService(requestsPerSec float64, burstSize int) *RateLimiterService {
	return &RateLimiterService{
		limiters:       make(map[string]*rate.Limiter),
		requestsPerSec: requestsPerSec,
		burstSize:      burstSize,
	}
}

func (s *RateLimiterService) limiterFor(kind string) *rate.Limiter {
	s.mu.RLock()
	limiter, exists := s.limiters[kind]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if limiter, exists := s.limiters[kind]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(rate.Limit(s.requestsPerSec), s.burstSize)
	s.limiters[kind] = limiter
	return limiter
}

// Wait blocks until a call of the given kind is allowed to proceed.
func (s *RateLimiterService) Wait(ctx context.Context, kind string) error {
	return s.limiterFor(kind).Wait(ctx)
}

// Allow reports whether a call of the given kind may proceed immediately.
func (s *RateLimiterService) Allow(kind string) bool {
	return s.limiterFor(kind).Allow()
}
