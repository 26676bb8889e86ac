package twofactor

import (
	"context"
	"strings"

	"github.com/dmitrymomot/twofactor/pkg/session"
)

// Session data keys owned by this module.
const (
	MarkerKey   = "second_factor"
	MethodKey   = "second_factor_method"
	RedirectKey = "second_factor_return_to"
)

// ResetKeys are the session keys a primary login must clear; pass them to
// session.WithResetOnAuthenticate so every new login starts without the
// marker.
func ResetKeys() []string {
	return []string{MarkerKey, MethodKey, RedirectKey}
}

// HasSecondFactor reports whether the session carries the marker.
func HasSecondFactor(s *session.Session) bool {
	ok, _ := s.GetBool(MarkerKey)
	return ok
}

// sessionBridge adapts a stored session to twofactor.Session.
type sessionBridge struct {
	manager *session.Manager
	session *session.Session
}

func (b sessionBridge) MarkSecondFactor(ctx context.Context, method string) error {
	b.session.Set(MarkerKey, true)
	b.session.Set(MethodKey, method)
	return b.manager.Save(ctx, b.session)
}

func (b sessionBridge) PopRedirect(ctx context.Context) (string, error) {
	url, ok := b.session.GetString(RedirectKey)
	if !ok {
		return "", nil
	}
	b.session.Delete(RedirectKey)
	if err := b.manager.Save(ctx, b.session); err != nil {
		return "", err
	}
	if !isLocalPath(url) {
		return "", nil
	}
	return url, nil
}

// isLocalPath rejects anything that could leave the site.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
