package mongostorage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/mongo"
	"github.com/dmitrymomot/twofactor/svc/twofactor"
	"github.com/dmitrymomot/twofactor/svc/twofactor/mongostorage"
)

func TestStorage_Mongo(t *testing.T) {
	url := os.Getenv("TEST_MONGODB_URL")
	if url == "" {
		t.Skip("TEST_MONGODB_URL not set")
	}
	ctx := context.Background()

	db, err := mongo.NewWithDatabase(ctx, mongo.Config{
		ConnectionURL:  url,
		Database:       "twofactor_test",
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    5,
		RetryAttempts:  1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Client().Disconnect(context.Background()) })

	coll := "users_" + uuid.NewString()[:8]
	t.Cleanup(func() { _ = db.Collection(coll).Drop(context.Background()) })

	storage := mongostorage.New(db, coll)
	require.NoError(t, storage.EnsureIndexes(ctx))

	id := uuid.New()
	_, err = storage.CreateUser(ctx, id, "a@example.com")
	require.NoError(t, err)
	_, err = storage.CreateUser(ctx, uuid.New(), "a@example.com")
	assert.ErrorIs(t, err, twofactor.ErrUserExists)

	at := time.Now().UTC().Truncate(time.Millisecond)
	pending := twofactor.Credential{Secret: "abcdefghij", Period: 30}
	require.NoError(t, storage.UpdateCredential(ctx, id, 1, pending, at))
	assert.ErrorIs(t, storage.UpdateCredential(ctx, id, 1, twofactor.Credential{}, at), twofactor.ErrVersionConflict)
	assert.ErrorIs(t, storage.UpdateCredential(ctx, uuid.New(), 1, twofactor.Credential{}, at), twofactor.ErrUserNotFound)

	got, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, pending, got.TwoFactor)
	assert.Equal(t, int64(2), got.Version)
	assert.True(t, at.Equal(got.LastUpdatedAt))

	_, err = storage.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, twofactor.ErrUserNotFound)
}
