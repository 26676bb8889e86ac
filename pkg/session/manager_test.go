package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/cookie"
	"github.com/dmitrymomot/twofactor/pkg/session"
)

const testSecret = "test-session-secret-that-is-long-enough"

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newManager(t *testing.T, opts ...session.Option) (*session.Manager, *session.MemoryStore, *clock) {
	t.Helper()
	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	c := &clock{now: time.Now()}

	base := []session.Option{
		session.WithStore(store),
		session.WithTransport(session.NewCookieTransport(cookies, "sid", false)),
		session.WithClock(c.Now),
	}
	m, err := session.New(append(base, opts...)...)
	require.NoError(t, err)
	return m, store, c
}

// follow copies response cookies into a new request.
func follow(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestNew_RequiresTransport(t *testing.T) {
	t.Parallel()
	_, err := session.New()
	assert.ErrorIs(t, err, session.ErrNoTransport)
}

func TestManager_Ensure(t *testing.T) {
	t.Parallel()

	m, store, _ := newManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	s, err := m.Ensure(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 1, store.Len())

	// the same session comes back on the next request
	again, err := m.Ensure(ctx, httptest.NewRecorder(), follow(rec))
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
	assert.Equal(t, 1, store.Len())
}

func TestManager_AuthenticateRotatesTokenAndResetsKeys(t *testing.T) {
	t.Parallel()

	m, store, _ := newManager(t, session.WithResetOnAuthenticate("second_factor"))
	ctx := context.Background()

	rec := httptest.NewRecorder()
	s, err := m.Ensure(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	s.Set("second_factor", "totp")
	s.Set("return_to", "/billing")
	require.NoError(t, m.Save(ctx, s))
	oldToken := s.Token

	userID := uuid.New()
	rec2 := httptest.NewRecorder()
	authed, err := m.Authenticate(ctx, rec2, follow(rec), userID)
	require.NoError(t, err)

	assert.NotEqual(t, oldToken, authed.Token)
	assert.Equal(t, userID, *authed.UserID)
	_, marked := authed.Get("second_factor")
	assert.False(t, marked, "second factor flag must not survive a new login")
	got, _ := authed.GetString("return_to")
	assert.Equal(t, "/billing", got)

	_, err = store.Get(ctx, oldToken)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	loaded, err := m.Get(ctx, follow(rec2))
	require.NoError(t, err)
	assert.True(t, loaded.IsAuthenticated())
}

func TestManager_AuthenticateWithoutSession(t *testing.T) {
	t.Parallel()

	m, _, _ := newManager(t)
	rec := httptest.NewRecorder()
	s, err := m.Authenticate(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/", nil), uuid.New())
	require.NoError(t, err)
	assert.True(t, s.IsAuthenticated())
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestManager_Expiry(t *testing.T) {
	t.Parallel()

	m, _, c := newManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	_, err := m.Ensure(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	c.now = c.now.Add(session.DefaultConfig().MaxAge)
	_, err = m.Get(ctx, follow(rec))
	assert.Error(t, err)
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()

	m, store, _ := newManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	_, err := m.Ensure(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	out := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, out, follow(rec)))
	assert.Zero(t, store.Len())
	require.Len(t, out.Result().Cookies(), 1)
	assert.Equal(t, -1, out.Result().Cookies()[0].MaxAge)
}

func TestManager_Middleware(t *testing.T) {
	t.Parallel()

	m, _, _ := newManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	_, err := m.Authenticate(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil), uuid.New())
	require.NoError(t, err)

	var seen bool
	h := m.Middleware(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = session.UserIDFromContext(r.Context())
	})))

	out := httptest.NewRecorder()
	h.ServeHTTP(out, follow(rec))
	assert.Equal(t, http.StatusOK, out.Code)
	assert.True(t, seen)

	out = httptest.NewRecorder()
	h.ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, out.Code)
}

func TestHeaderTransport(t *testing.T) {
	t.Parallel()

	tr := session.NewHeaderTransport("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	require.NoError(t, tr.SetToken(rec, "abc", time.Hour))
	assert.Equal(t, "Bearer abc", rec.Header().Get("Authorization"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	token, err := tr.GetToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = tr.GetToken(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	composite := session.CompositeTransport{session.NewHeaderTransport("X-Missing", ""), tr}
	token, err = composite.GetToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
