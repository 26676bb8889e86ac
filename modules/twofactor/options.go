package twofactor

import (
	"log/slog"

	"github.com/dmitrymomot/twofactor/pkg/clientip"
)

// Paths are the pages this module serves and redirects to. Every redirect
// the module issues lands on one of them.
type Paths struct {
	Account  string // account security page
	Setup    string // begins or resumes enrollment
	Confirm  string // enrollment code form; a failed confirmation returns here
	Complete string // shown after enrollment is confirmed
	Verify   string // login code form
}

var DefaultPaths = Paths{
	Account:  "/account",
	Setup:    "/setup-otp",
	Confirm:  "/verify-otp-first",
	Complete: "/complete-otp",
	Verify:   "/verify-otp",
}

type Option func(*Module)

func WithPaths(p Paths) Option {
	return func(m *Module) {
		if p.Account != "" {
			m.paths.Account = p.Account
		}
		if p.Setup != "" {
			m.paths.Setup = p.Setup
		}
		if p.Confirm != "" {
			m.paths.Confirm = p.Confirm
		}
		if p.Complete != "" {
			m.paths.Complete = p.Complete
		}
		if p.Verify != "" {
			m.paths.Verify = p.Verify
		}
	}
}

// WithIPResolver sets how the attempt identity is derived. Defaults to the
// TCP peer address.
func WithIPResolver(r *clientip.Resolver) Option {
	return func(m *Module) {
		if r != nil {
			m.ips = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}
