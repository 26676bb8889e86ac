package session

import (
	"context"
)

// Store persists sessions by token.
type Store interface {
	Create(ctx context.Context, session *Session) error
	// Get returns ErrSessionNotFound for unknown tokens and ErrSessionExpired
	// for expired ones.
	Get(ctx context.Context, token string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
