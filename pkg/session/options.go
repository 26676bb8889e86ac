package session

import "time"

// Option configures the Manager.
type Option func(*Manager)

func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithResetOnAuthenticate lists data keys dropped when a primary login
// authenticates the session. Everything else carries over to the rotated
// token.
func WithResetOnAuthenticate(keys ...string) Option {
	return func(m *Manager) {
		m.resetKeys = append(m.resetKeys, keys...)
	}
}
