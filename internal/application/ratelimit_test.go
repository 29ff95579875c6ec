package application

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucket_ExhaustsAfterCapacity(t *testing.T) {
	bucket := NewTokenBucket(5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, bucket.TryAcquire(), "call %d should succeed", i+1)
	}
	assert.False(t, bucket.TryAcquire(), "6th call within the window should be rejected")
}

func TestTokenBucket_RefillsAfterFullWindow(t *testing.T) {
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	bucket := NewTokenBucket(5, time.Minute)
	bucket.now = func() time.Time { return current }
	bucket.lastRefill = current

	for i := 0; i < 5; i++ {
		assert.True(t, bucket.TryAcquire())
	}
	assert.False(t, bucket.TryAcquire())

	// 59 seconds later the window has not elapsed.
	current = current.Add(59 * time.Second)
	assert.False(t, bucket.TryAcquire())

	// A full minute after the last refill the bucket fills again.
	current = current.Add(2 * time.Second)
	assert.True(t, bucket.TryAcquire())
}

func TestTokenBucket_ConcurrentAcquire(t *testing.T) {
	bucket := NewTokenBucket(5, time.Minute)

	var wg sync.WaitGroup
	granted := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted <- bucket.TryAcquire()
		}()
	}
	wg.Wait()
	close(granted)

	count := 0
	for ok := range granted {
		if ok {
			count++
		}
	}
	assert.Equal(t, 5, count, "exactly capacity acquisitions may succeed")
}
