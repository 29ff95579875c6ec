package application

import (
	"sync"
	"time"
)

// TokenBucket is a fixed-window token bucket shared process-wide across all
// externally-facing test endpoints. It is a coarse global throttle, not
// per-key or per-user. The bucket refills to full capacity once a complete
// window has elapsed since the last refill.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	tokens     int
	window     time.Duration
	lastRefill time.Time
	now        func() time.Time
}

// NewTokenBucket creates a full bucket with the given capacity and refill window.
func NewTokenBucket(capacity int, window time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		window:     window,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// TryAcquire takes one token if any remain, returning false without blocking
// when the bucket is empty. Safe for concurrent use.
func (b *TokenBucket) TryAcquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.lastRefill) >= b.window {
		b.tokens = b.capacity
		b.lastRefill = now
	}

	if b.tokens == 0 {
		return false
	}
	b.tokens--
	return true
}
