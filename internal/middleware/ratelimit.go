package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration
	// SkipPrefixes lists path prefixes that are never limited.
	SkipPrefixes []string
}

func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 5,
		Burst:             10,
		CleanupInterval:   5 * time.Minute,
		SkipPrefixes:      []string{"/health", "/swagger"},
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterStore struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	config   RateLimiterConfig
}

func newRateLimiterStore(cfg RateLimiterConfig) *rateLimiterStore {
	store := &rateLimiterStore{
		limiters: make(map[string]*clientLimiter),
		config:   cfg,
	}
	if cfg.CleanupInterval > 0 {
		go store.cleanupLoop()
	}
	return store
}

func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	cl, exists := s.limiters[key]
	if !exists {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(s.config.RequestsPerSecond), s.config.Burst),
		}
		s.limiters[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// evictIdle drops limiters not used since cutoff.
func (s *rateLimiterStore) evictIdle(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, cl := range s.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(s.limiters, key)
		}
	}
}

func (s *rateLimiterStore) cleanupLoop() {
	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.evictIdle(time.Now().Add(-s.config.CleanupInterval))
	}
}

func (cfg RateLimiterConfig) skip(path string) bool {
	for _, prefix := range cfg.SkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RateLimiter limits requests per client IP with a token bucket.
func RateLimiter(cfg RateLimiterConfig) echo.MiddlewareFunc {
	store := newRateLimiterStore(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.skip(c.Request().URL.Path) {
				return next(c)
			}

			if !store.getLimiter(c.RealIP()).Allow() {
				return shared.TooManyRequests("rate_limit_exceeded", "too many requests")
			}

			return next(c)
		}
	}
}
