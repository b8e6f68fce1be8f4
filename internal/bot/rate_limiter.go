package bot

import (
	"sync"
	"time"
)

const (
	DefaultCommandsPerWindow = 5
	DefaultRateWindow        = 60 * time.Second
)

// RateLimiter is a sliding window of command timestamps per user.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
	requests map[string][]time.Time
}

// NewRateLimiter allows each user limit commands per window. Non-positive
// values fall back to the defaults.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultCommandsPerWindow
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		requests: make(map[string][]time.Time),
	}
}

// Allow records a command for userID. When the user is over the limit the
// command is not recorded and retryAfter is the time until the oldest
// command leaves the window.
func (r *RateLimiter) Allow(userID string) (ok bool, retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	timestamps := r.requests[userID]
	pruned := timestamps[:0]
	for _, t := range timestamps {
		if t.After(cutoff) {
			pruned = append(pruned, t)
		}
	}

	if len(pruned) >= r.limit {
		r.requests[userID] = pruned
		return false, pruned[0].Sub(cutoff)
	}

	r.requests[userID] = append(pruned, now)
	return true, 0
}
