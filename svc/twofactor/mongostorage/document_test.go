package mongostorage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/twofactor/svc/twofactor"
)

func TestUserDocument_BSON(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := userDocument{
		ID:               id.String(),
		Email:            "a@example.com",
		EnhancedSecurity: fromCredential(twofactor.Credential{Secret: "abcdefghij", Period: 30, Enabled: true}),
		Activity:         activity{LastUpdated: at},
		Version:          3,
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	assert.Equal(t, "abcdefghij", bson.Raw(raw).Lookup("enhancedSecurity", "token").StringValue())
	assert.True(t, bson.Raw(raw).Lookup("enhancedSecurity", "enabled").Boolean())
	assert.Equal(t, id.String(), bson.Raw(raw).Lookup("_id").StringValue())

	var back userDocument
	require.NoError(t, bson.Unmarshal(raw, &back))
	u, err := back.toUser()
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, twofactor.StateEnabled, u.TwoFactor.State())
	assert.Equal(t, int64(3), u.Version)
	assert.True(t, at.Equal(u.LastUpdatedAt))
}

func TestUserDocument_ClearedCredentialOmitsSecret(t *testing.T) {
	t.Parallel()

	raw, err := bson.Marshal(fromCredential(twofactor.Credential{}))
	require.NoError(t, err)

	doc := bson.Raw(raw)
	_, err = doc.LookupErr("token")
	assert.Error(t, err)
	_, err = doc.LookupErr("period")
	assert.Error(t, err)
	assert.False(t, doc.Lookup("enabled").Boolean())
}

func TestUserDocument_InvalidID(t *testing.T) {
	t.Parallel()

	_, err := userDocument{ID: "not-a-uuid"}.toUser()
	assert.Error(t, err)
}
