package twofactor

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPeriod is the code window, in seconds, assigned on enrollment.
const DefaultPeriod = 30

// User is the slice of the account record this package reads and writes.
// Version increments on every credential write and drives optimistic
// concurrency in Storage.UpdateCredential.
type User struct {
	ID            uuid.UUID
	Email         string
	TwoFactor     Credential
	Version       int64
	LastUpdatedAt time.Time
}

// Credential is the per-user TOTP enrollment. Enabled implies Secret and
// Period are set. Secret holds the raw generated secret; storages may keep
// it sealed.
type Credential struct {
	Secret  string
	Period  int
	Enabled bool
}

// State derives the enrollment state from the stored fields.
func (c Credential) State() State {
	switch {
	case c.Enabled:
		return StateEnabled
	case c.Secret != "":
		return StatePending
	default:
		return StateUnset
	}
}

// IsZero reports whether nothing is enrolled.
func (c Credential) IsZero() bool {
	return c == Credential{}
}

// AccountName is the label shown in authenticator apps.
func (u *User) AccountName() string {
	if u.Email != "" {
		return u.Email
	}
	return u.ID.String()
}
