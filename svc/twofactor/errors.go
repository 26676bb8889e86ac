package twofactor

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("user already exists")
	ErrVersionConflict       = errors.New("user record changed since it was read")
	ErrPersistence           = errors.New("failed to persist two-factor credential")
	ErrInvalidState          = errors.New("operation not allowed in current two-factor state")
	ErrAlreadyEnabled        = fmt.Errorf("%w: two-factor authentication already enabled", ErrInvalidState)
	ErrNotPending            = fmt.Errorf("%w: no pending two-factor enrollment", ErrInvalidState)
	ErrNotEnabled            = fmt.Errorf("%w: two-factor authentication not enabled", ErrInvalidState)
	ErrRandomnessUnavailable = errors.New("secure randomness unavailable")
	ErrTooManyAttempts       = errors.New("too many verification attempts")
	ErrAttemptLimiter        = errors.New("attempt limiter unavailable")
	ErrSession               = errors.New("failed to update session")
	ErrSecretUnavailable     = errors.New("stored secret cannot be read")
)
