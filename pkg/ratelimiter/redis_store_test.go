package ratelimiter_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/ratelimiter"
)

func newRedisClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	client := newRedisClient(t)
	prefix := "rl-test:" + uuid.NewString() + ":"
	b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client, prefix), ratelimiter.Window(3, time.Minute))
	require.NoError(t, err)
	ctx := context.Background()

	for i := range 3 {
		res, err := b.Allow(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := b.Allow(ctx, "user")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Positive(t, res.RetryAfter())

	ttl, err := client.PTTL(ctx, prefix+"user").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, b.Reset(ctx, "user"))
	res, err = b.Allow(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)
}
