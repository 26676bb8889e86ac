package pgstorage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/logger"
	"github.com/dmitrymomot/twofactor/pkg/pg"
	"github.com/dmitrymomot/twofactor/svc/twofactor"
	"github.com/dmitrymomot/twofactor/svc/twofactor/pgstorage"
)

func TestStorage_Postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	cfg := pg.Config{ConnectionString: url, RetryAttempts: 1, MigrationsTable: "twofactor_schema_migrations"}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.Migrate(ctx, pool, pgstorage.Migrations, pgstorage.MigrationsDir, cfg, logger.Discard()))

	storage := pgstorage.New(pool)
	id := uuid.New()
	user, err := storage.CreateUser(ctx, id, id.String()+"@example.com")
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", id) })

	_, err = storage.CreateUser(ctx, uuid.New(), user.Email)
	assert.ErrorIs(t, err, twofactor.ErrUserExists)

	at := time.Now().UTC().Truncate(time.Microsecond)
	pending := twofactor.Credential{Secret: "abcdefghij", Period: 30}
	require.NoError(t, storage.UpdateCredential(ctx, id, 1, pending, at))
	assert.ErrorIs(t, storage.UpdateCredential(ctx, id, 1, twofactor.Credential{}, at), twofactor.ErrVersionConflict)
	assert.ErrorIs(t, storage.UpdateCredential(ctx, uuid.New(), 1, twofactor.Credential{}, at), twofactor.ErrUserNotFound)

	got, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, pending, got.TwoFactor)
	assert.Equal(t, int64(2), got.Version)
	assert.True(t, at.Equal(got.LastUpdatedAt))

	// end to end through the service
	svc := twofactor.NewService(storage)
	status, err := svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, twofactor.StatePending, status.State)

	require.NoError(t, storage.UpdateCredential(ctx, id, 2, twofactor.Credential{Secret: "abcdefghij", Period: 30, Enabled: true}, at))
	require.NoError(t, svc.Disable(ctx, id))

	got, err = storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.TwoFactor.IsZero())
}
