package twofactor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/twofactor/pkg/ratelimiter"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	u := *args.Get(0).(*User)
	return &u, args.Error(1)
}

func (m *MockStorage) UpdateCredential(ctx context.Context, id uuid.UUID, expectedVersion int64, cred Credential, at time.Time) error {
	args := m.Called(ctx, id, expectedVersion, cred, at)
	return args.Error(0)
}

// MockSession is a mock implementation of Session.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) MarkSecondFactor(ctx context.Context, method string) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockSession) PopRedirect(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockRateLimiter is a mock implementation of ratelimiter.RateLimiter.
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (*ratelimiter.Result, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratelimiter.Result), args.Error(1)
}

func (m *MockRateLimiter) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
