package twofactor

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Storage is the persistence boundary for user records.
//
// UpdateCredential must be a single compare-and-set write: it replaces the
// credential, sets LastUpdatedAt to at and increments Version only when the
// stored Version equals expectedVersion. It returns ErrVersionConflict when
// it does not, and ErrUserNotFound when the user is missing.
type Storage interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateCredential(ctx context.Context, id uuid.UUID, expectedVersion int64, cred Credential, at time.Time) error
}

// Session is the login session the verification outcome is recorded on.
type Session interface {
	// MarkSecondFactor records that the second factor was satisfied.
	MarkSecondFactor(ctx context.Context, method string) error
	// PopRedirect returns and clears the URL stashed when the user was sent
	// to verification, or "" when none was stashed.
	PopRedirect(ctx context.Context) (string, error)
}
