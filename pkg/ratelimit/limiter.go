package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// LimiterStore hands out one token-bucket limiter per key, created lazily on
// first use. The notifier keys limiters by destination chat, so a burst of
// signal alerts for many symbols cannot exceed the per-chat send budget.
type LimiterStore struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

func NewLimiterStore(r rate.Limit, burst int) *LimiterStore {
	return &LimiterStore{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		burst:    burst,
	}
}

// GetLimiter returns the limiter for key, creating it on first sight.
func (s *LimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mu.RLock()
	limiter, ok := s.limiters[key]
	s.mu.RUnlock()
	if ok {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if limiter, ok := s.limiters[key]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(s.r, s.burst)
	s.limiters[key] = limiter
	return limiter
}
