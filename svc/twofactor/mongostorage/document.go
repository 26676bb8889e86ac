package mongostorage

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/twofactor/svc/twofactor"
)

// userDocument mirrors the account documents the credential lives in.
type userDocument struct {
	ID               string           `bson:"_id"`
	Email            string           `bson:"email"`
	EnhancedSecurity enhancedSecurity `bson:"enhancedSecurity"`
	Activity         activity         `bson:"activity"`
	Version          int64            `bson:"version"`
}

type enhancedSecurity struct {
	Token   string `bson:"token,omitempty"`
	Period  int    `bson:"period,omitempty"`
	Enabled bool   `bson:"enabled"`
}

type activity struct {
	LastUpdated time.Time `bson:"last_updated"`
}

func (d userDocument) toUser() (*twofactor.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &twofactor.User{
		ID:    id,
		Email: d.Email,
		TwoFactor: twofactor.Credential{
			Secret:  d.EnhancedSecurity.Token,
			Period:  d.EnhancedSecurity.Period,
			Enabled: d.EnhancedSecurity.Enabled,
		},
		Version:       d.Version,
		LastUpdatedAt: d.Activity.LastUpdated,
	}, nil
}

func fromCredential(c twofactor.Credential) enhancedSecurity {
	return enhancedSecurity{Token: c.Secret, Period: c.Period, Enabled: c.Enabled}
}
