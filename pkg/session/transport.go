package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/twofactor/pkg/cookie"
)

// Transport defines how session tokens travel between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport carries the token in a signed cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	secure  bool
}

func NewCookieTransport(cookies *cookie.Manager, name string, secure bool) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name, secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetSigned(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	t.cookies.SetSigned(w, t.name, token,
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(t.secure),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.name)
	return nil
}

// HeaderTransport carries the token in a request header, for API clients.
// The token is echoed in the response header of the same name.
type HeaderTransport struct {
	header string
	prefix string
}

func NewHeaderTransport(header, prefix string) *HeaderTransport {
	return &HeaderTransport{header: header, prefix: prefix}
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimPrefix(r.Header.Get(t.header), t.prefix)
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, _ time.Duration) error {
	w.Header().Set(t.header, t.prefix+token)
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.header)
	return nil
}

// CompositeTransport reads from the first transport that yields a token and
// writes to all of them.
type CompositeTransport []Transport

func (c CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, t := range c {
		if token, err := t.GetToken(r); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (c CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	var lastErr error
	for _, t := range c {
		if err := t.SetToken(w, token, ttl); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (c CompositeTransport) ClearToken(w http.ResponseWriter) error {
	var lastErr error
	for _, t := range c {
		if err := t.ClearToken(w); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
