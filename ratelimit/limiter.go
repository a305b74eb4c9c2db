// Package ratelimit throttles outbound submissions per endpoint path.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements token bucket rate limiting keyed by endpoint path.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// New creates a new rate limiter.
func New() *Limiter {
	return &Limiter{
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a request to key may proceed now.
// A perSecond of 0 means unlimited (always returns true).
func (l *Limiter) Allow(key string, perSecond int) bool {
	if perSecond <= 0 {
		return true
	}
	return l.bucket(key, perSecond).Allow()
}

// Wait blocks until the rate limit allows the request or ctx is cancelled.
// A perSecond of 0 means unlimited (returns immediately).
func (l *Limiter) Wait(ctx context.Context, key string, perSecond int) error {
	if perSecond <= 0 {
		return nil
	}
	return l.bucket(key, perSecond).Wait(ctx)
}

// Reset clears the rate limit state for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// bucket returns the limiter for key, starting full with burst = perSecond.
// A changed rate is applied to the existing bucket.
func (l *Limiter) bucket(key string, perSecond int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Limit(perSecond), perSecond)
		l.buckets[key] = b
		return b
	}
	if b.Limit() != rate.Limit(perSecond) {
		b.SetLimit(rate.Limit(perSecond))
		b.SetBurst(perSecond)
	}
	return b
}
