package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	twofactorhttp "github.com/dmitrymomot/twofactor/modules/twofactor"
	"github.com/dmitrymomot/twofactor/pkg/clientip"
	"github.com/dmitrymomot/twofactor/pkg/config"
	"github.com/dmitrymomot/twofactor/pkg/cookie"
	"github.com/dmitrymomot/twofactor/pkg/httpserver"
	"github.com/dmitrymomot/twofactor/pkg/logger"
	"github.com/dmitrymomot/twofactor/pkg/qrcode"
	"github.com/dmitrymomot/twofactor/pkg/ratelimiter"
	"github.com/dmitrymomot/twofactor/pkg/requestid"
	"github.com/dmitrymomot/twofactor/pkg/session"
	"github.com/dmitrymomot/twofactor/pkg/totp"
	"github.com/dmitrymomot/twofactor/svc/twofactor"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextExtractors(requestid.LogExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	sessions, err := newSessionManager(cfg, b.sessions)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, b, log)
	if err != nil {
		return err
	}

	if providers := cfg.OAuth.Providers(); len(providers) > 0 {
		log.InfoContext(ctx, "primary login providers configured", slog.Any("providers", providers))
	}
	if cfg.Mail.FromAddress == "" {
		log.WarnContext(ctx, "SMTP_FROM_ADDRESS is empty, account notifications are disabled")
	}

	mod := twofactorhttp.New(svc, sessions,
		twofactorhttp.WithLogger(log),
		twofactorhttp.WithIPResolver(newIPResolver(cfg)),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/livez", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, cfg.ReadyTimeout, b.checks...))
	if cfg.AppEnv == logger.EnvDevelopment {
		r.Post("/dev/login", devLogin(b.users, sessions, log))
	}
	r.Mount("/", mod.Handle())

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return server.Run(ctx, r)
}

// newIPResolver trusts only the configured proxy headers. With none, the
// TCP peer address identifies the client.
func newIPResolver(cfg Config) *clientip.Resolver {
	headers := make([]string, 0, len(cfg.TrustedProxyHeaders))
	for _, h := range cfg.TrustedProxyHeaders {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, h)
		}
	}
	return clientip.New(headers...)
}

func newSessionManager(cfg Config, store session.Store) (*session.Manager, error) {
	cookies, err := cookie.New([]string{cfg.SessionSecret},
		cookie.WithSecure(cfg.Session.SecureCookies),
		cookie.WithMaxAge(int(cfg.Session.MaxAge.Seconds())),
	)
	if err != nil {
		return nil, fmt.Errorf("session cookies: %w", err)
	}

	return session.New(
		session.WithStore(store),
		session.WithTransport(session.NewCookieTransport(cookies, cfg.Session.CookieName, cfg.Session.SecureCookies)),
		session.WithConfig(cfg.Session),
		session.WithResetOnAuthenticate(twofactorhttp.ResetKeys()...),
	)
}

func newService(cfg Config, b *backends, log *slog.Logger) (*twofactor.Service, error) {
	sealer, err := totp.NewSealer(cfg.TOTP)
	if err != nil {
		return nil, err
	}
	renderer, err := qrcode.NewRenderer(cfg.TOTP.QRMode, cfg.TOTP.QRRendererURL, cfg.TOTP.QRSize)
	if err != nil {
		return nil, err
	}

	perIP, err := ratelimiter.NewBucket(b.attempts,
		ratelimiter.Window(cfg.LoginAttemptsForIP, cfg.LoginAttemptsExpires))
	if err != nil {
		return nil, fmt.Errorf("per-ip attempt limit: %w", err)
	}
	perUser, err := ratelimiter.NewBucket(b.attempts,
		ratelimiter.Window(cfg.LoginAttemptsForUser, cfg.LoginAttemptsExpires))
	if err != nil {
		return nil, fmt.Errorf("per-user attempt limit: %w", err)
	}

	return twofactor.NewService(b.users,
		twofactor.WithConfig(cfg.TOTP),
		twofactor.WithLogger(log),
		twofactor.WithSealer(sealer),
		twofactor.WithQRRenderer(renderer),
		twofactor.WithDefaultRedirect(cfg.DefaultRedirect),
		twofactor.WithAttemptLimit(perIP, twofactor.ByIdentity),
		twofactor.WithAttemptLimit(perUser, twofactor.ByUser),
	), nil
}

// devLogin stands in for the primary login in development. It signs in the
// user given by user_id, or registers a new one for email.
func devLogin(users userStore, sessions *session.Manager, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var user *twofactor.User
		var err error
		if raw := r.PostFormValue("user_id"); raw != "" {
			id, perr := uuid.Parse(raw)
			if perr != nil {
				http.Error(w, "invalid user_id", http.StatusBadRequest)
				return
			}
			user, err = users.GetUserByID(ctx, id)
		} else {
			email := strings.TrimSpace(r.PostFormValue("email"))
			if email == "" {
				http.Error(w, "email or user_id is required", http.StatusBadRequest)
				return
			}
			user, err = users.CreateUser(ctx, uuid.New(), email)
		}
		switch {
		case errors.Is(err, twofactor.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
			return
		case errors.Is(err, twofactor.ErrUserExists):
			http.Error(w, "user already exists, sign in with user_id", http.StatusConflict)
			return
		case err != nil:
			log.ErrorContext(ctx, "dev login failed", logger.Error(err))
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}

		if _, err := sessions.Authenticate(ctx, w, r, user.ID); err != nil {
			log.ErrorContext(ctx, "dev login failed", logger.UserID(user.ID), logger.Error(err))
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, twofactorhttp.DefaultPaths.Account, http.StatusSeeOther)
	}
}
