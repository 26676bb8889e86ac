package redis

import "errors"

var (
	ErrEmptyURL   = errors.New("redis: REDIS_URL is empty")
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	// ErrNotReady is returned when no ping succeeded before the retries or
	// the connect timeout ran out.
	ErrNotReady  = errors.New("redis: server not ready")
	ErrUnhealthy = errors.New("redis: ping failed")
)
