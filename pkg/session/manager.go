package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager ties a Store to a Transport and drives the session lifecycle.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	now       func() time.Time
	resetKeys []string
}

// New creates a session manager. A transport is required; the store
// defaults to a MemoryStore.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config: DefaultConfig(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.transport == nil {
		return nil, ErrNoTransport
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	return m, nil
}

// Get loads the session referenced by the request.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.ExpiredAt(m.now()) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Ensure returns the request's session, creating an anonymous one when the
// request carries none or an invalid one.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if session, err := m.Get(ctx, r); err == nil {
		return session, nil
	}

	session, err := m.create(ctx, nil)
	if err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, session.Token, m.config.MaxAge); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}
	return session, nil
}

// Authenticate binds the session to userID after a primary login. The token
// is always rotated; data survives except the keys given to
// WithResetOnAuthenticate.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	session, err := m.Get(ctx, r)
	if err != nil {
		session, err = m.create(ctx, &userID)
		if err != nil {
			return nil, err
		}
	} else {
		token, err := generateToken()
		if err != nil {
			return nil, err
		}
		_ = m.store.Delete(ctx, session.Token)

		now := m.now()
		session.Token = token
		session.UserID = &userID
		session.CreatedAt = now
		session.LastActivityAt = now
		session.ExpiresAt = now.Add(m.config.MaxAge)
		for _, key := range m.resetKeys {
			session.Delete(key)
		}
		if err := m.store.Create(ctx, session); err != nil {
			return nil, err
		}
	}

	if err := m.transport.SetToken(w, session.Token, m.config.MaxAge); err != nil {
		return nil, err
	}
	return session, nil
}

// Save persists changes made to session data.
func (m *Manager) Save(ctx context.Context, session *Session) error {
	session.LastActivityAt = m.now()
	return m.store.Update(ctx, session)
}

// Destroy deletes the session and clears the client token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

func (m *Manager) create(ctx context.Context, userID *uuid.UUID) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	session := NewSession(token, userID, m.now(), m.config.MaxAge)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
