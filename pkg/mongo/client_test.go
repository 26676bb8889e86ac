package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/mongo"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := mongo.New(context.Background(), mongo.Config{})
		assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
	})

	t.Run("live server", func(t *testing.T) {
		t.Parallel()
		url := os.Getenv("TEST_MONGODB_URL")
		if url == "" {
			t.Skip("TEST_MONGODB_URL not set")
		}
		db, err := mongo.NewWithDatabase(context.Background(), mongo.Config{
			ConnectionURL:  url,
			Database:       "twofactor_test",
			ConnectTimeout: 5 * time.Second,
			MaxPoolSize:    5,
			RetryAttempts:  1,
		})
		require.NoError(t, err)
		defer db.Client().Disconnect(context.Background())
		assert.Equal(t, "twofactor_test", db.Name())
		assert.NoError(t, mongo.Healthcheck(db.Client())(context.Background()))
	})
}
