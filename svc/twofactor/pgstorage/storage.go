package pgstorage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/twofactor/pkg/pg"
	"github.com/dmitrymomot/twofactor/svc/twofactor"
)

// DB is the subset of *pgxpool.Pool the storage needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage keeps users in PostgreSQL. It implements twofactor.Storage.
type Storage struct {
	db DB
}

func New(db DB) *Storage {
	return &Storage{db: db}
}

const createUserQuery = `
INSERT INTO users (id, email, version, last_updated_at)
VALUES ($1, $2, 1, $3)`

// CreateUser inserts a user with no two-factor credential.
func (s *Storage) CreateUser(ctx context.Context, id uuid.UUID, email string) (*twofactor.User, error) {
	now := time.Now().UTC()
	if _, err := s.db.Exec(ctx, createUserQuery, id, email, now); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, twofactor.ErrUserExists
		}
		return nil, err
	}
	return &twofactor.User{ID: id, Email: email, Version: 1, LastUpdatedAt: now}, nil
}

const getUserQuery = `
SELECT id, email, totp_secret, totp_period, totp_enabled, version, last_updated_at
FROM users
WHERE id = $1`

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*twofactor.User, error) {
	var (
		u      twofactor.User
		secret *string
		period *int32
	)
	err := s.db.QueryRow(ctx, getUserQuery, id).Scan(
		&u.ID, &u.Email, &secret, &period, &u.TwoFactor.Enabled, &u.Version, &u.LastUpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, twofactor.ErrUserNotFound
		}
		return nil, err
	}

	if secret != nil {
		u.TwoFactor.Secret = *secret
	}
	if period != nil {
		u.TwoFactor.Period = int(*period)
	}
	return &u, nil
}

const updateCredentialQuery = `
UPDATE users
SET totp_secret = $3, totp_period = $4, totp_enabled = $5,
    last_updated_at = $6, version = version + 1
WHERE id = $1 AND version = $2`

const userExistsQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

// UpdateCredential replaces the credential when the row still carries
// expectedVersion. An empty credential is stored as NULLs.
func (s *Storage) UpdateCredential(ctx context.Context, id uuid.UUID, expectedVersion int64, cred twofactor.Credential, at time.Time) error {
	tag, err := s.db.Exec(ctx, updateCredentialQuery,
		id, expectedVersion, nullString(cred.Secret), nullInt(cred.Period), cred.Enabled, at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRow(ctx, userExistsQuery, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return twofactor.ErrUserNotFound
	}
	return twofactor.ErrVersionConflict
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullInt(n int) *int32 {
	if n == 0 {
		return nil
	}
	v := int32(n)
	return &v
}
