package twofactor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-process Storage for tests and single-node
// development setups.
type MemoryStorage struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

func NewMemoryStorage(users ...User) *MemoryStorage {
	m := &MemoryStorage{users: make(map[uuid.UUID]User, len(users))}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

// CreateUser adds a user with an empty credential. IDs and emails are
// unique; a duplicate yields ErrUserExists.
func (m *MemoryStorage) CreateUser(_ context.Context, id uuid.UUID, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; ok {
		return nil, ErrUserExists
	}
	for _, existing := range m.users {
		if existing.Email == email {
			return nil, ErrUserExists
		}
	}

	u := User{ID: id, Email: email, Version: 1}
	m.users[id] = u
	return &u, nil
}

func (m *MemoryStorage) GetUserByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *MemoryStorage) UpdateCredential(_ context.Context, id uuid.UUID, expectedVersion int64, cred Credential, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if u.Version != expectedVersion {
		return ErrVersionConflict
	}

	u.TwoFactor = cred
	u.LastUpdatedAt = at
	u.Version++
	m.users[id] = u
	return nil
}
