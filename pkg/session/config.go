package session

import "time"

// Config holds session configuration.
type Config struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	MaxAge          time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"` // memory store only, 0 disables
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
	RedisPrefix     string        `env:"SESSION_REDIS_PREFIX" envDefault:"sess:"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		MaxAge:          7 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		RedisPrefix:     "sess:",
	}
}
