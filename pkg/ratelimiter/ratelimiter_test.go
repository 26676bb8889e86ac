package ratelimiter_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBucket(t *testing.T, clock *fakeClock, cfg ratelimiter.Config) (*ratelimiter.Bucket, *ratelimiter.MemoryStore) {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0), ratelimiter.WithClock(clock.Now))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, store
}

func TestBucket_AllowsUpToCapacity(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b, _ := newBucket(t, clock, ratelimiter.Window(5, 20*time.Minute))
	ctx := context.Background()

	for i := range 5 {
		res, err := b.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed(), "attempt %d", i+1)
		assert.Equal(t, 4-i, res.Remaining)
		assert.Equal(t, 5, res.Limit)
	}

	res, err := b.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, clock.Now().Add(20*time.Minute), res.ResetAt)

	// other keys are independent
	res, err = b.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestBucket_DeniedAttemptsDoNotDrainFurther(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b, _ := newBucket(t, clock, ratelimiter.Window(2, time.Minute))
	ctx := context.Background()

	for range 2 {
		_, err := b.Allow(ctx, "k")
		require.NoError(t, err)
	}
	for range 10 {
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, -1, res.Remaining)
	}

	clock.Advance(time.Minute)
	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 1, res.Remaining)
}

func TestBucket_Refill(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b, _ := newBucket(t, clock, ratelimiter.Config{Capacity: 4, RefillRate: 1, RefillInterval: time.Second})
	ctx := context.Background()

	for range 4 {
		_, err := b.Allow(ctx, "k")
		require.NoError(t, err)
	}

	clock.Advance(2500 * time.Millisecond)
	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining, "two tokens refilled, one taken")

	// partial interval progress is kept
	clock.Advance(500 * time.Millisecond)
	res, err = b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	clock.Advance(time.Hour)
	res, err = b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Remaining, "refill never exceeds capacity")
}

func TestBucket_Reset(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b, store := newBucket(t, clock, ratelimiter.Window(1, time.Hour))
	ctx := context.Background()

	_, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, clock.Now().Add(time.Hour), res.ResetAt)

	require.NoError(t, b.Reset(ctx, "k"))
	assert.Zero(t, store.Len())

	res, err = b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Zero(t, res.RetryAfter())
}

func TestBucket_SharedStore(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0), ratelimiter.WithClock(clock.Now))
	t.Cleanup(store.Close)

	perIP, err := ratelimiter.NewBucket(store, ratelimiter.Window(1, time.Hour))
	require.NoError(t, err)
	perUser, err := ratelimiter.NewBucket(store, ratelimiter.Window(1, time.Hour))
	require.NoError(t, err)

	ctx := context.Background()
	res, err := perIP.Allow(ctx, "ip:203.0.113.5")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	res, err = perUser.Allow(ctx, "user:42")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 2, store.Len())
}

func TestBucket_InvalidInput(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{"zero capacity", ratelimiter.Config{Capacity: 0, RefillRate: 1, RefillInterval: time.Second}},
		{"zero rate", ratelimiter.Config{Capacity: 1, RefillRate: 0, RefillInterval: time.Second}},
		{"zero interval", ratelimiter.Config{Capacity: 1, RefillRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(store, tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}

	_, err := ratelimiter.NewBucket(nil, ratelimiter.Window(1, time.Second))
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)

	b, err := ratelimiter.NewBucket(store, ratelimiter.Window(1, time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Allow(ctx, "k")
	assert.ErrorIs(t, err, ratelimiter.ErrContextCancelled)
}

func TestMemoryStore_RemoveExpired(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b, store := newBucket(t, clock, ratelimiter.Window(3, time.Minute))
	ctx := context.Background()

	_, err := b.Allow(ctx, "a")
	require.NoError(t, err)
	clock.Advance(90 * time.Second)
	_, err = b.Allow(ctx, "b")
	require.NoError(t, err)

	// "a" expires after capacity/rate+1 intervals of idleness
	clock.Advance(45 * time.Second)
	store.RemoveExpired()
	assert.Equal(t, 1, store.Len())
}

func TestBucket_Concurrent(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b, _ := newBucket(t, clock, ratelimiter.Window(50, time.Hour))

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowed.Load())
}
