package twofactor

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/twofactor/pkg/qrcode"
	"github.com/dmitrymomot/twofactor/pkg/ratelimiter"
	"github.com/dmitrymomot/twofactor/pkg/totp"
)

type Option func(*Service)

// WithConfig replaces the TOTP settings: issuer, secret length, period and
// skew.
func WithConfig(cfg totp.Config) Option {
	return func(s *Service) {
		if cfg.Issuer != "" {
			s.issuer = cfg.Issuer
		}
		if cfg.SecretLength > 0 {
			s.secretLength = cfg.SecretLength
		}
		if cfg.Period > 0 {
			s.period = int(cfg.Period)
		}
		s.skew = cfg.Skew
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now for stamps and code windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSealer encrypts secrets before they reach Storage.
func WithSealer(sealer totp.Sealer) Option {
	return func(s *Service) {
		if sealer != nil {
			s.sealer = sealer
		}
	}
}

// WithQRRenderer sets how provisioning URIs become QR images.
func WithQRRenderer(r qrcode.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.qr = r
		}
	}
}

// WithDefaultRedirect sets where a verified login lands when no URL was
// stashed. Defaults to "/".
func WithDefaultRedirect(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.defaultRedirect = url
		}
	}
}

// WithAttemptLimit throttles code submissions. key maps an attempt to the
// limiter key, e.g. ByIdentity or ByUser; an empty key skips the limiter.
// Can be given several times; every limiter must admit the attempt. Keys are
// reset after a successful verification.
func WithAttemptLimit(limiter ratelimiter.RateLimiter, key func(Attempt) string) Option {
	return func(s *Service) {
		if limiter != nil && key != nil {
			s.limits = append(s.limits, attemptLimit{limiter: limiter, key: key})
		}
	}
}

// withSecretSource replaces the secret generator in tests.
func withSecretSource(gen func(int) (string, error)) Option {
	return func(s *Service) { s.generateSecret = gen }
}
