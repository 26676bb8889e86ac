package twofactor

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/twofactor/pkg/clientip"
	"github.com/dmitrymomot/twofactor/pkg/logger"
	"github.com/dmitrymomot/twofactor/pkg/session"
	"github.com/dmitrymomot/twofactor/svc/twofactor"
)

// Module exposes the two-factor service over HTTP.
type Module struct {
	svc      *twofactor.Service
	sessions *session.Manager
	ips      *clientip.Resolver
	logger   *slog.Logger
	paths    Paths
}

func New(svc *twofactor.Service, sessions *session.Manager, opts ...Option) *Module {
	m := &Module{
		svc:      svc,
		sessions: sessions,
		ips:      clientip.New(),
		logger:   logger.Discard(),
		paths:    DefaultPaths,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("twofactor_http"))
	return m
}

// Handle returns the module routes. Mount it at the site root. With
// DefaultPaths:
//
//	GET  /account               account security page
//	GET  /setup-otp             begin or resume enrollment
//	GET  /verify-otp-first      enrollment code form
//	POST /verify-otp-first      confirm enrollment with a code
//	GET  /complete-otp          enrollment done
//	POST /account/disable-otp   disable two-factor
//	GET  /verify-otp            login code form
//	POST /verify-otp            verify a login
//	GET  /account/otp-status    enrollment state
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(m.sessions.Middleware)

	r.Group(func(r chi.Router) {
		r.Use(m.sessions.RequireAuth)

		// verifying a login is the one place the marker is not required yet
		r.Get(m.paths.Verify, m.verifyPage)
		r.Post(m.paths.Verify, m.verify)

		r.Group(func(r chi.Router) {
			r.Use(m.RequireSecondFactor)
			r.Get(m.paths.Account, m.accountPage)
			r.Get(m.paths.Setup, m.setup)
			r.Get(m.paths.Confirm, m.confirmPage)
			r.Post(m.paths.Confirm, m.confirm)
			r.Get(m.paths.Complete, m.completePage)
			r.Post("/account/disable-otp", m.disable)
			r.Get("/account/otp-status", m.status)
		})
	})

	return r
}

// RequireSecondFactor sends users with two-factor enabled to the verify page
// until the session carries the marker, stashing the URL they asked for.
// Anonymous requests pass through; pair it with session.RequireAuth.
func (m *Module) RequireSecondFactor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.IsAuthenticated() || HasSecondFactor(sess) {
			next.ServeHTTP(w, r)
			return
		}

		status, err := m.svc.Status(r.Context(), *sess.UserID)
		if err != nil {
			m.writeError(w, r, err, 0)
			return
		}
		if !status.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodGet {
			sess.Set(RedirectKey, r.URL.RequestURI())
			if err := m.sessions.Save(r.Context(), sess); err != nil {
				m.writeError(w, r, err, 0)
				return
			}
		}
		http.Redirect(w, r, m.paths.Verify, http.StatusSeeOther)
	})
}

type enrollmentResponse struct {
	Secret  string `json:"secret"`
	URI     string `json:"uri"`
	QRImage string `json:"qr_image"`
	Period  int    `json:"period"`
}

func (m *Module) setup(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserIDFromContext(r.Context())

	enrollment, err := m.svc.BeginEnrollment(r.Context(), userID)
	if errors.Is(err, twofactor.ErrAlreadyEnabled) {
		http.Redirect(w, r, m.paths.Account, http.StatusSeeOther)
		return
	}
	if err != nil {
		m.writeError(w, r, err, 0)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, response{Data: enrollmentResponse{
		Secret:  enrollment.Secret,
		URI:     enrollment.URI,
		QRImage: enrollment.QRImage,
		Period:  enrollment.Period,
	}})
}

func (m *Module) confirm(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	res, err := m.svc.ConfirmEnrollment(r.Context(), m.attempt(r, *sess.UserID), sessionBridge{m.sessions, sess})
	switch {
	case errors.Is(err, twofactor.ErrNotPending):
		http.Redirect(w, r, m.paths.Account, http.StatusSeeOther)
	case res.Success && errors.Is(err, twofactor.ErrSession):
		// enabled, but the marker was not stored: the gate asks for a code
		m.logger.WarnContext(r.Context(), "enrollment confirmed without session marker",
			logger.UserID(*sess.UserID),
			logger.Error(err),
		)
		http.Redirect(w, r, m.paths.Verify, http.StatusSeeOther)
	case err != nil:
		m.writeError(w, r, err, res.RetryAfter)
	case !res.Success:
		http.Redirect(w, r, m.paths.Confirm, http.StatusSeeOther)
	default:
		http.Redirect(w, r, m.paths.Complete, http.StatusSeeOther)
	}
}

func (m *Module) disable(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserIDFromContext(r.Context())

	if err := m.svc.Disable(r.Context(), userID); err != nil {
		m.writeError(w, r, err, 0)
		return
	}
	http.Redirect(w, r, m.paths.Account, http.StatusSeeOther)
}

func (m *Module) verify(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	res, err := m.svc.Verify(r.Context(), m.attempt(r, *sess.UserID), sessionBridge{m.sessions, sess})
	switch {
	case errors.Is(err, twofactor.ErrNotEnabled):
		http.Redirect(w, r, m.svc.DefaultRedirect(), http.StatusSeeOther)
	case err != nil:
		m.writeError(w, r, err, res.RetryAfter)
	case !res.Success:
		http.Redirect(w, r, m.paths.Verify, http.StatusSeeOther)
	default:
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
	}
}

type statusResponse struct {
	State   string `json:"state"`
	Enabled bool   `json:"enabled"`
	Period  int    `json:"period,omitempty"`
}

func (m *Module) status(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.UserIDFromContext(r.Context())

	status, err := m.svc.Status(r.Context(), userID)
	if err != nil {
		m.writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: statusResponse{
		State:   status.State.Name(),
		Enabled: status.Enabled(),
		Period:  status.Period,
	}})
}

// page describes a step of the flow. Action is where the step's form posts
// or, on the account page, the next step to take.
type page struct {
	Step     string `json:"step"`
	State    string `json:"state,omitempty"`
	Enabled  bool   `json:"enabled"`
	Verified bool   `json:"second_factor_verified"`
	Action   string `json:"action,omitempty"`
}

func (m *Module) verifyPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, response{Data: page{
		Step:     "verify",
		Verified: HasSecondFactor(sess),
		Action:   m.paths.Verify,
	}})
}

func (m *Module) accountPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	status, err := m.svc.Status(r.Context(), *sess.UserID)
	if err != nil {
		m.writeError(w, r, err, 0)
		return
	}

	action := m.paths.Setup
	if status.Enabled() {
		action = "/account/disable-otp"
	}
	writeJSON(w, http.StatusOK, response{Data: page{
		Step:     "account",
		State:    status.State.Name(),
		Enabled:  status.Enabled(),
		Verified: HasSecondFactor(sess),
		Action:   action,
	}})
}

// confirmPage is only reachable while enrollment is pending.
func (m *Module) confirmPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	status, err := m.svc.Status(r.Context(), *sess.UserID)
	if err != nil {
		m.writeError(w, r, err, 0)
		return
	}
	switch status.State {
	case twofactor.StateUnset:
		http.Redirect(w, r, m.paths.Setup, http.StatusSeeOther)
		return
	case twofactor.StateEnabled:
		http.Redirect(w, r, m.paths.Account, http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: page{
		Step:   "confirm",
		State:  status.State.Name(),
		Action: m.paths.Confirm,
	}})
}

func (m *Module) completePage(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	status, err := m.svc.Status(r.Context(), *sess.UserID)
	if err != nil {
		m.writeError(w, r, err, 0)
		return
	}
	if !status.Enabled() {
		http.Redirect(w, r, m.paths.Setup, http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: page{
		Step:     "complete",
		State:    status.State.Name(),
		Enabled:  true,
		Verified: HasSecondFactor(sess),
		Action:   m.paths.Account,
	}})
}

func (m *Module) attempt(r *http.Request, userID uuid.UUID) twofactor.Attempt {
	return twofactor.Attempt{
		UserID:   userID,
		Code:     r.PostFormValue("code"),
		Identity: m.ips.IP(r),
	}
}
