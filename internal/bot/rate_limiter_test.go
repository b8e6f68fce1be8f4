package bot

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeLimiter(limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	for i := range DefaultCommandsPerWindow {
		ok, _ := rl.Allow("user-1")
		require.True(t, ok, "request %d should be allowed", i+1)
	}
	ok, retry := rl.Allow("user-1")
	assert.False(t, ok, "request beyond limit should be denied")
	assert.Positive(t, retry)
}

func TestRateLimiterIsolatesUsers(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	rl.Allow("user-1")
	rl.Allow("user-1")

	ok, _ := rl.Allow("user-1")
	assert.False(t, ok)
	ok, _ = rl.Allow("user-2")
	assert.True(t, ok, "different user should not be affected")
}

func TestRateLimiterRetryAfter(t *testing.T) {
	rl, clock := newFakeLimiter(2, time.Minute)

	rl.Allow("user-1")
	clock.advance(20 * time.Second)
	rl.Allow("user-1")
	clock.advance(10 * time.Second)

	ok, retry := rl.Allow("user-1")
	assert.False(t, ok)
	assert.Equal(t, 30*time.Second, retry)

	clock.advance(30*time.Second + time.Millisecond)
	ok, _ = rl.Allow("user-1")
	assert.True(t, ok, "oldest command left the window")

	ok, retry = rl.Allow("user-1")
	assert.False(t, ok)
	assert.Equal(t, 20*time.Second-time.Millisecond, retry)
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl, clock := newFakeLimiter(3, time.Minute)
	for range 3 {
		rl.Allow("user-1")
	}

	clock.advance(time.Minute + time.Second)
	for i := range 3 {
		ok, _ := rl.Allow("user-1")
		require.True(t, ok, "request %d should be allowed after the window", i+1)
	}
	ok, _ := rl.Allow("user-1")
	assert.False(t, ok)
	assert.Len(t, rl.requests["user-1"], 3)
}

func TestRateLimiterConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	var wg sync.WaitGroup
	allowed := make([]int, 10)

	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			for range DefaultCommandsPerWindow + 2 {
				if ok, _ := rl.Allow(userID); ok {
					allowed[i]++
				}
			}
		}()
	}
	wg.Wait()

	for i, count := range allowed {
		assert.Equal(t, DefaultCommandsPerWindow, count, "user-%d", i)
	}
}
