package ratelimit

import (
	"sync"
	"time"

	"github.com/severedgames/mysteryparty/internal/dependencies/clock"
	"github.com/severedgames/mysteryparty/internal/model"
)

// DefaultPerMinute is the message cap per user per calendar minute
const DefaultPerMinute = 60

// PerMinuteLimiter counts sends per (user, wall-clock minute) and rejects
// once the cap is reached. Buckets live only for their minute: when the
// limiter first sees a later minute it drops every stale bucket, for all
// users, so the map stays bounded by the number of users active in the
// current minute. Sweep exists for deployments that prefer a timer.
//
// The minute key is the wall-clock minute boundary (time.Truncate), so a
// burst spanning a boundary starts a fresh count on the far side.
type PerMinuteLimiter struct {
	clock clock.Clock
	limit int

	mu      sync.Mutex
	minute  time.Time
	buckets map[model.Username]int
}

// NewPerMinute creates a limiter allowing limit sends per user per calendar
// minute
func NewPerMinute(clk clock.Clock, limit int) *PerMinuteLimiter {
	if limit <= 0 {
		limit = DefaultPerMinute
	}
	return &PerMinuteLimiter{
		clock:   clk,
		limit:   limit,
		buckets: make(map[model.Username]int),
	}
}

// Allow records one send for the user and reports whether it is within the
// cap. A rejected send is not counted.
func (l *PerMinuteLimiter) Allow(username model.Username) bool {
	now := l.clock.Now().Truncate(time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Equal(l.minute) {
		// Minute rolled over: all existing buckets are stale
		l.minute = now
		l.buckets = make(map[model.Username]int)
	}

	if l.buckets[username] >= l.limit {
		return false
	}
	l.buckets[username]++
	return true
}

// Sweep drops all buckets outside the current minute. Allow already does
// this lazily; Sweep is for callers that want cleanup on a timer even when
// no one is posting.
func (l *PerMinuteLimiter) Sweep() {
	now := l.clock.Now().Truncate(time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Equal(l.minute) {
		l.minute = now
		l.buckets = make(map[model.Username]int)
	}
}
