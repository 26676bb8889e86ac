package twofactor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/twofactor/pkg/logger"
	"github.com/dmitrymomot/twofactor/pkg/ratelimiter"
)

// Attempt is one submitted code.
type Attempt struct {
	UserID   uuid.UUID
	Code     string
	Identity string // client identity for throttling, usually the IP
}

// Verification is the outcome of a submitted code. A wrong code is
// Success=false with a nil error.
type Verification struct {
	Success    bool
	MarkerSet  bool
	RedirectTo string
	RetryAfter time.Duration // set with ErrTooManyAttempts
}

type attemptLimit struct {
	limiter ratelimiter.RateLimiter
	key     func(Attempt) string
}

// ByIdentity keys a limiter on the attempt identity.
func ByIdentity(a Attempt) string {
	if a.Identity == "" {
		return ""
	}
	return "ip:" + a.Identity
}

// ByUser keys a limiter on the user the code is submitted for.
func ByUser(a Attempt) string {
	if a.UserID == uuid.Nil {
		return ""
	}
	return "user:" + a.UserID.String()
}

// admit consumes one attempt from every limiter.
func (s *Service) admit(ctx context.Context, a Attempt) (time.Duration, error) {
	var (
		denied     bool
		retryAfter time.Duration
	)
	for _, l := range s.limits {
		key := l.key(a)
		if key == "" {
			continue
		}
		res, err := l.limiter.Allow(ctx, key)
		if err != nil {
			return 0, errors.Join(ErrAttemptLimiter, err)
		}
		if !res.Allowed() {
			denied = true
			retryAfter = max(retryAfter, res.RetryAfter())
		}
	}
	if denied {
		return retryAfter, ErrTooManyAttempts
	}
	return 0, nil
}

// forgive clears the limiter keys after a successful attempt.
func (s *Service) forgive(ctx context.Context, a Attempt) {
	for _, l := range s.limits {
		key := l.key(a)
		if key == "" {
			continue
		}
		if err := l.limiter.Reset(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to reset attempt limiter", slog.String("key", key), logger.Error(err))
		}
	}
}
