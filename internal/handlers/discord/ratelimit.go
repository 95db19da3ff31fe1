package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/cooldown"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	"github.com/redis/go-redis/v9"
)

// RateLimitStore tracks command counts per key
type RateLimitStore interface {
	// Increment increments the counter for a key and returns the new count
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter caps how many commands one user may send per window
type RateLimiter struct {
	store       RateLimitStore
	maxRequests int64
	window      time.Duration
}

// RateLimitConfig configures rate limiting behavior
type RateLimitConfig struct {
	// MaxRequests is the maximum number of commands per window
	MaxRequests int

	// Window is the time window for rate limiting
	Window time.Duration

	// Store for tracking rate limits (if nil, uses in-memory)
	Store RateLimitStore
}

// NewRateLimiter creates a limiter; nil when MaxRequests is not positive
func NewRateLimiter(cfg *RateLimitConfig) *RateLimiter {
	if cfg == nil || cfg.MaxRequests <= 0 || cfg.Window <= 0 {
		return nil
	}

	store := cfg.Store
	if store == nil {
		store = NewMemoryRateLimitStore(nil)
	}

	return &RateLimiter{
		store:       store,
		maxRequests: int64(cfg.MaxRequests),
		window:      cfg.Window,
	}
}

// Allow counts one command for caller and reports whether it may run.
// Store failures never block a command.
func (l *RateLimiter) Allow(ctx context.Context, caller entities.Address) bool {
	if l == nil || caller == entities.ZeroAddress {
		return true
	}

	count, err := l.store.Increment(ctx, "ratelimit:"+string(caller), l.window)
	if err != nil {
		return true
	}
	return count <= l.maxRequests
}

// Message is shown to limited users
func (l *RateLimiter) Message() string {
	return fmt.Sprintf("You're doing that too fast! Please wait %v before trying again.", l.window)
}

// MemoryRateLimitStore is an in-memory rate limit store
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	clock   cooldown.TimeProvider
	buckets map[string]*bucket
}

type bucket struct {
	count   int64
	resetAt time.Time
}

// NewMemoryRateLimitStore creates a new in-memory store
func NewMemoryRateLimitStore(clock cooldown.TimeProvider) *MemoryRateLimitStore {
	if clock == nil {
		clock = cooldown.NewSystemTimeProvider()
	}
	return &MemoryRateLimitStore{
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Increment increments the counter for a key
func (s *MemoryRateLimitStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	// expired buckets are dropped here instead of by a sweeper
	for k, b := range s.buckets {
		if !now.Before(b.resetAt) {
			delete(s.buckets, k)
		}
	}

	b, exists := s.buckets[key]
	if !exists {
		b = &bucket{resetAt: now.Add(window)}
		s.buckets[key] = b
	}

	b.count++
	return b.count, nil
}

// RedisRateLimitStore shares limits between bot instances
type RedisRateLimitStore struct {
	client redis.UniversalClient
}

// NewRedisRateLimitStore creates a Redis backed store
func NewRedisRateLimitStore(client redis.UniversalClient) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

// Increment increments the counter and starts its expiry on first use
func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	return incr.Val(), nil
}
