package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/session"
)

func TestRedisStore(t *testing.T) {
	t.Parallel()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	prefix := "sess-test:" + uuid.NewString() + ":"
	store := session.NewRedisStore(client, prefix)

	uid := uuid.New()
	s := session.NewSession("tok", &uid, time.Now(), time.Minute)
	s.Set("second_factor", "totp")
	require.NoError(t, store.Create(ctx, s))
	assert.ErrorIs(t, store.Create(ctx, s), session.ErrInvalidSession, "tokens are unique")

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, uid, *got.UserID)
	marker, _ := got.GetString("second_factor")
	assert.Equal(t, "totp", marker)

	ttl, err := client.TTL(ctx, prefix+"tok").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	got.Delete("second_factor")
	require.NoError(t, store.Update(ctx, got))
	got, err = store.Get(ctx, "tok")
	require.NoError(t, err)
	_, ok := got.Get("second_factor")
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.ErrorIs(t, store.Update(ctx, s), session.ErrSessionNotFound)
}
