package ratelimiter

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid rate limit configuration")
	ErrContextCancelled = errors.New("rate limit check cancelled")
	// ErrStoreUnavailable wraps backend failures; callers decide whether to
	// fail open or closed.
	ErrStoreUnavailable = errors.New("rate limit store unavailable")
)
