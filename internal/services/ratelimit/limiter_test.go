package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/severedgames/mysteryparty/internal/dependencies/mocks"
)

func newTestLimiter(limit int) (*PerMinuteLimiter, *mocks.MockClock) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC))
	return NewPerMinute(clk, limit), clk
}

func TestAllowUnderLimit(t *testing.T) {
	limiter, _ := newTestLimiter(3)

	assert.True(t, limiter.Allow("alice"))
	assert.True(t, limiter.Allow("alice"))
	assert.True(t, limiter.Allow("alice"))
}

func TestRejectsOverLimit(t *testing.T) {
	limiter, _ := newTestLimiter(60)

	for i := 0; i < 60; i++ {
		assert.True(t, limiter.Allow("alice"), "send %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow("alice"), "61st send in the same minute must be rejected")
}

func TestRejectionNotCounted(t *testing.T) {
	limiter, _ := newTestLimiter(2)

	assert.True(t, limiter.Allow("alice"))
	assert.True(t, limiter.Allow("alice"))
	assert.False(t, limiter.Allow("alice"))
	assert.False(t, limiter.Allow("alice"))
}

func TestLimitIsPerUser(t *testing.T) {
	limiter, _ := newTestLimiter(1)

	assert.True(t, limiter.Allow("alice"))
	assert.False(t, limiter.Allow("alice"))
	assert.True(t, limiter.Allow("bob"))
}

func TestResetsAtMinuteBoundary(t *testing.T) {
	limiter, clk := newTestLimiter(60)

	for i := 0; i < 60; i++ {
		assert.True(t, limiter.Allow("alice"))
	}
	assert.False(t, limiter.Allow("alice"))

	// 12:00:30 -> 12:01:00, crossing the wall-clock minute boundary
	clk.Set(time.Date(2024, 1, 1, 12, 1, 0, 0, time.UTC))
	assert.True(t, limiter.Allow("alice"), "first send in the next minute must succeed")
}

func TestBurstSpanningBoundary(t *testing.T) {
	limiter, clk := newTestLimiter(60)

	for i := 0; i < 30; i++ {
		assert.True(t, limiter.Allow("alice"))
	}

	clk.Advance(time.Minute)

	// Fresh bucket on the far side of the boundary
	for i := 0; i < 60; i++ {
		assert.True(t, limiter.Allow("alice"))
	}
	assert.False(t, limiter.Allow("alice"))
}

func TestRolloverDropsAllUsersBuckets(t *testing.T) {
	limiter, clk := newTestLimiter(60)

	limiter.Allow("alice")
	limiter.Allow("bob")

	clk.Advance(time.Minute)

	// Bob posting must not leave alice's stale bucket behind
	assert.True(t, limiter.Allow("bob"))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.buckets, 1)
}

func TestSweep(t *testing.T) {
	limiter, clk := newTestLimiter(60)

	limiter.Allow("alice")
	clk.Advance(time.Minute)
	limiter.Sweep()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.buckets)
}

func TestConcurrentSendsNoLostIncrements(t *testing.T) {
	limiter, _ := newTestLimiter(60)

	var wg sync.WaitGroup
	results := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- limiter.Allow("alice")
		}()
	}
	wg.Wait()
	close(results)

	allowed := 0
	for ok := range results {
		if ok {
			allowed++
		}
	}
	assert.Equal(t, 60, allowed, "exactly the cap may pass under concurrency")
}
