package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Server.
type Option func(*settings)

// WithConfig merges the non-zero fields of cfg.
func WithConfig(cfg Config) Option {
	return func(s *settings) { s.Config.merge(cfg) }
}

func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty addr")
	}
	return WithConfig(Config{Addr: addr})
}

// WithTimeouts sets the read, write and idle timeouts. Zero keeps the
// current value.
func WithTimeouts(read, write, idle time.Duration) Option {
	if read < 0 || write < 0 || idle < 0 {
		panic("httpserver: negative timeout")
	}
	return WithConfig(Config{ReadTimeout: read, WriteTimeout: write, IdleTimeout: idle})
}

func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: shutdown timeout must be positive")
	}
	return WithConfig(Config{ShutdownTimeout: d})
}

// WithServer runs srv instead of a fresh http.Server. Fields already set on
// srv win over the configured ones; its Handler is always replaced.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("httpserver: nil server")
	}
	return func(s *settings) { s.server = srv }
}

// WithLogger sets the lifecycle logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithStartHook registers h to run once the listener is about to start.
func WithStartHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: nil start hook")
	}
	return func(s *settings) { s.startHooks = append(s.startHooks, h) }
}
