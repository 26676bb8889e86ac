package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state behind a session token.
type Session struct {
	ID             uuid.UUID      `json:"id"`
	Token          string         `json:"token"`
	UserID         *uuid.UUID     `json:"user_id,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewSession creates a session that expires ttl after now.
func NewSession(token string, userID *uuid.UUID, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		UserID:         userID,
		Data:           make(map[string]any),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsAuthenticated returns true if the session has a user ID
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != nil
}

// ExpiredAt reports whether the session has expired at t.
func (s *Session) ExpiredAt(t time.Time) bool {
	return s != nil && !t.Before(s.ExpiresAt)
}

func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clone returns a deep copy of the session's top-level data.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.UserID != nil {
		id := *s.UserID
		c.UserID = &id
	}
	if s.Data != nil {
		c.Data = maps.Clone(s.Data)
	}
	return &c
}
