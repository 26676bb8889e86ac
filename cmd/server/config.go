package main

import (
	"time"

	"github.com/dmitrymomot/twofactor/pkg/httpserver"
	"github.com/dmitrymomot/twofactor/pkg/session"
	"github.com/dmitrymomot/twofactor/pkg/totp"
)

const (
	driverMemory   = "memory"
	driverPostgres = "postgres"
	driverMongo    = "mongo"
	driverRedis    = "redis"
)

// Config enumerates every option the server recognizes. Backend connection
// settings are loaded separately, only for the selected drivers.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"twofactor"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"` // overrides the environment default when set

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"` // memory|postgres|mongo
	SessionStore  string `env:"SESSION_STORE" envDefault:"memory"`  // memory|redis
	SessionSecret string `env:"SESSION_SECRET,required"`            // signs the session cookie, 32+ chars

	LoginAttemptsForIP   int           `env:"LOGIN_ATTEMPTS_FOR_IP" envDefault:"50"`
	LoginAttemptsForUser int           `env:"LOGIN_ATTEMPTS_FOR_USER" envDefault:"5"`
	LoginAttemptsExpires time.Duration `env:"LOGIN_ATTEMPTS_EXPIRES" envDefault:"20m"`

	// TrustedProxyHeaders lists client IP headers set by a reverse proxy, in
	// priority order, e.g. "X-Forwarded-For". Leave empty only when clients
	// connect directly: behind a proxy every client would share one per-IP
	// attempt bucket.
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`

	DefaultRedirect string        `env:"DEFAULT_REDIRECT" envDefault:"/"`
	ReadyTimeout    time.Duration `env:"READY_TIMEOUT" envDefault:"3s"`

	Mail  MailConfig  `envPrefix:"SMTP_"`
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	HTTP    httpserver.Config
	Session session.Config
	TOTP    totp.Config
}

// MailConfig holds outgoing mail credentials used by account notifications.
type MailConfig struct {
	FromName    string `env:"FROM_NAME" envDefault:"Enhanced Security"`
	FromAddress string `env:"FROM_ADDRESS"`
	Username    string `env:"USERNAME"`
	Password    string `env:"PASSWORD"`
}

// OAuthConfig holds client credentials for the primary login providers.
type OAuthConfig struct {
	Facebook OAuthClient `envPrefix:"FACEBOOK_"`
	GitHub   OAuthClient `envPrefix:"GITHUB_"`
	Twitter  OAuthClient `envPrefix:"TWITTER_"`
	Google   OAuthClient `envPrefix:"GOOGLE_"`
}

type OAuthClient struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

func (c OAuthClient) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Providers lists the names of providers with complete credentials.
func (c OAuthConfig) Providers() []string {
	var names []string
	for _, p := range []struct {
		name   string
		client OAuthClient
	}{
		{"facebook", c.Facebook},
		{"github", c.GitHub},
		{"twitter", c.Twitter},
		{"google", c.Google},
	} {
		if p.client.Configured() {
			names = append(names, p.name)
		}
	}
	return names
}
