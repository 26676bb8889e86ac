package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON values whose Redis TTL matches the
// session expiry, so no cleanup job is needed.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a store writing keys as prefix+token.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	return s.write(ctx, session, "NX")
}

func (s *RedisStore) Update(ctx context.Context, session *Session) error {
	return s.write(ctx, session, "XX")
}

func (s *RedisStore) write(ctx context.Context, session *Session, mode string) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrSessionExpired
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	err = s.client.SetArgs(ctx, s.prefix+session.Token, payload, redis.SetArgs{Mode: mode, TTL: ttl}).Err()
	switch {
	case errors.Is(err, redis.Nil):
		if mode == "XX" {
			return ErrSessionNotFound
		}
		return ErrInvalidSession
	case err != nil:
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	if session.ExpiredAt(s.now()) {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts keys when their TTL runs out.
func (s *RedisStore) DeleteExpired(context.Context) error {
	return nil
}
