package httpserver

import (
	"net/http"
	"time"
)

// Config is the listener configuration read from HTTP_* variables.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig is New with cfg applied before opts.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// merge copies the non-zero fields of o into c.
func (c *Config) merge(o Config) {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	fill(&c.ReadHeaderTimeout, o.ReadHeaderTimeout, true)
	fill(&c.ReadTimeout, o.ReadTimeout, true)
	fill(&c.WriteTimeout, o.WriteTimeout, true)
	fill(&c.IdleTimeout, o.IdleTimeout, true)
	fill(&c.ShutdownTimeout, o.ShutdownTimeout, true)
}

// apply sets the fields srv leaves at zero.
func (c Config) apply(srv *http.Server) {
	if srv.Addr == "" {
		srv.Addr = c.Addr
	}
	fill(&srv.ReadHeaderTimeout, c.ReadHeaderTimeout, srv.ReadHeaderTimeout == 0)
	fill(&srv.ReadTimeout, c.ReadTimeout, srv.ReadTimeout == 0)
	fill(&srv.WriteTimeout, c.WriteTimeout, srv.WriteTimeout == 0)
	fill(&srv.IdleTimeout, c.IdleTimeout, srv.IdleTimeout == 0)
}

func fill(dst *time.Duration, v time.Duration, ok bool) {
	if ok && v > 0 {
		*dst = v
	}
}
