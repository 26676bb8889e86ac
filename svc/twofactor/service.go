package twofactor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/twofactor/pkg/base32"
	"github.com/dmitrymomot/twofactor/pkg/logger"
	"github.com/dmitrymomot/twofactor/pkg/qrcode"
	"github.com/dmitrymomot/twofactor/pkg/statemachine"
	"github.com/dmitrymomot/twofactor/pkg/totp"
)

// MethodTOTP is the method recorded on the session marker.
const MethodTOTP = "totp"

// Enrollment is the provisioning payload shown once the user starts or
// resumes enrollment. Secret is the base32 form; the raw secret is never
// returned.
type Enrollment struct {
	Secret  string
	URI     string
	QRImage string
	Period  int
}

// Status describes a user's enrollment without revealing the secret.
type Status struct {
	State         State
	Period        int
	LastUpdatedAt time.Time
}

// Enabled reports whether logins require a second factor.
func (s Status) Enabled() bool {
	return s.State == StateEnabled
}

// Service drives TOTP enrollment and login verification for users held in
// Storage.
type Service struct {
	storage         Storage
	machine         statemachine.Machine
	sealer          totp.Sealer
	qr              qrcode.Renderer
	logger          *slog.Logger
	now             func() time.Time
	generateSecret  func(int) (string, error)
	limits          []attemptLimit
	issuer          string
	secretLength    int
	period          int
	skew            uint
	defaultRedirect string
}

// NewService creates a two-factor service over storage.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:         storage,
		sealer:          totp.NopSealer{},
		qr:              qrcode.NewChartRenderer(qrcode.DefaultChartURL),
		logger:          logger.Discard(),
		now:             time.Now,
		generateSecret:  totp.GenerateSecret,
		issuer:          "Enhanced Security",
		secretLength:    totp.DefaultSecretLength,
		period:          DefaultPeriod,
		skew:            totp.DefaultSkew,
		defaultRedirect: "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("twofactor"))
	s.machine = newEnrollmentMachine(s.persist)
	return s
}

// DefaultRedirect is where a verified login lands when no URL was stashed.
func (s *Service) DefaultRedirect() string {
	return s.defaultRedirect
}

// BeginEnrollment starts enrollment from unset, or returns the pending
// secret again. An enabled user gets ErrAlreadyEnabled and no secret.
// When a concurrent request wins the write, the record is read once more
// and the secret it persisted is returned, so the secret shown is always
// the one stored.
func (s *Service) BeginEnrollment(ctx context.Context, userID uuid.UUID) (*Enrollment, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := user.TwoFactor
	if user.TwoFactor.State() == StateUnset {
		secret, err := s.generateSecret(s.secretLength)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to generate secret", logger.UserID(userID), logger.Error(err))
			return nil, errors.Join(ErrRandomnessUnavailable, err)
		}
		next = Credential{Secret: secret, Period: s.period}
	}

	_, err = s.fire(ctx, user, EventBegin, &step{user: user, next: next})
	if errors.Is(err, ErrVersionConflict) {
		if user, err = s.loadUser(ctx, userID); err != nil {
			return nil, err
		}
		switch user.TwoFactor.State() {
		case StatePending:
			return s.enrollment(user)
		case StateEnabled:
			return nil, ErrAlreadyEnabled
		default:
			return nil, ErrVersionConflict
		}
	}
	if err != nil {
		return nil, err
	}

	return s.enrollment(&User{ID: user.ID, Email: user.Email, TwoFactor: next})
}

// ConfirmEnrollment enables two-factor when the attempt's code matches the
// pending secret, then marks the session. A wrong code leaves the
// enrollment pending with the same secret.
func (s *Service) ConfirmEnrollment(ctx context.Context, attempt Attempt, session Session) (Verification, error) {
	if retryAfter, err := s.admit(ctx, attempt); err != nil {
		return Verification{RetryAfter: retryAfter}, err
	}

	user, err := s.loadUser(ctx, attempt.UserID)
	if err != nil {
		return Verification{}, err
	}
	if user.TwoFactor.State() != StatePending {
		return Verification{}, ErrNotPending
	}

	ok, err := s.check(user.TwoFactor, attempt.Code)
	if err != nil {
		return Verification{}, err
	}
	if !ok {
		s.logger.InfoContext(ctx, "enrollment code rejected", logger.UserID(user.ID))
		return Verification{}, nil
	}

	next := user.TwoFactor
	next.Enabled = true
	if _, err := s.fire(ctx, user, EventConfirm, &step{user: user, next: next, verified: true}); err != nil {
		return Verification{}, err
	}
	s.forgive(ctx, attempt)

	if err := session.MarkSecondFactor(ctx, MethodTOTP); err != nil {
		return Verification{Success: true}, errors.Join(ErrSession, err)
	}
	return Verification{Success: true, MarkerSet: true}, nil
}

// Disable clears the credential of an enabled user. It is a no-op in any
// other state. Callers must have authenticated the user already.
func (s *Service) Disable(ctx context.Context, userID uuid.UUID) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	_, err = s.fire(ctx, user, EventDisable, &step{user: user})
	if errors.Is(err, ErrNotEnabled) {
		return nil
	}
	return err
}

// Verify checks a login code for an enabled user. On success the session is
// marked and the stashed URL, or the default redirect, is returned.
func (s *Service) Verify(ctx context.Context, attempt Attempt, session Session) (Verification, error) {
	if retryAfter, err := s.admit(ctx, attempt); err != nil {
		s.logger.WarnContext(ctx, "verification throttled",
			logger.UserID(attempt.UserID),
			logger.RemoteIP(attempt.Identity),
		)
		return Verification{RetryAfter: retryAfter}, err
	}

	user, err := s.loadUser(ctx, attempt.UserID)
	if err != nil {
		return Verification{}, err
	}
	if !user.TwoFactor.Enabled {
		return Verification{}, ErrNotEnabled
	}

	ok, err := s.check(user.TwoFactor, attempt.Code)
	if err != nil {
		return Verification{}, err
	}
	if !ok {
		s.logger.InfoContext(ctx, "verification code rejected", logger.UserID(user.ID))
		return Verification{}, nil
	}
	s.forgive(ctx, attempt)

	if err := session.MarkSecondFactor(ctx, MethodTOTP); err != nil {
		return Verification{Success: true}, errors.Join(ErrSession, err)
	}
	redirect, err := session.PopRedirect(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read stashed redirect", logger.UserID(user.ID), logger.Error(err))
	}
	if redirect == "" {
		redirect = s.defaultRedirect
	}

	s.logger.InfoContext(ctx, "second factor verified", logger.UserID(user.ID))
	return Verification{Success: true, MarkerSet: true, RedirectTo: redirect}, nil
}

// Status returns the enrollment state of a user.
func (s *Service) Status(ctx context.Context, userID uuid.UUID) (Status, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return Status{}, err
	}
	return Status{
		State:         user.TwoFactor.State(),
		Period:        user.TwoFactor.Period,
		LastUpdatedAt: user.LastUpdatedAt,
	}, nil
}

func (s *Service) fire(ctx context.Context, user *User, event statemachine.Event, st *step) (statemachine.State, error) {
	from := user.TwoFactor.State()
	st.at = s.now()

	to, err := s.machine.Fire(ctx, from, event, st)
	if err != nil {
		return from, stateError(event, err)
	}

	s.logger.InfoContext(ctx, "two-factor state changed",
		logger.UserID(user.ID),
		logger.Event(event.Name()),
		logger.State(from.Name(), to.Name()),
	)
	return to, nil
}

// persist is the machine action for every transition. The machine only
// reports the new state once the write succeeded.
func (s *Service) persist(ctx context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	st, ok := data.(*step)
	if !ok {
		return ErrInvalidState
	}

	cred := st.next
	if cred.Secret != "" {
		sealed, err := s.sealer.Seal(cred.Secret)
		if err != nil {
			return errors.Join(ErrPersistence, err)
		}
		cred.Secret = sealed
	}

	err := s.storage.UpdateCredential(ctx, st.user.ID, st.user.Version, cred, st.at)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrVersionConflict), errors.Is(err, ErrUserNotFound):
		return err
	default:
		s.logger.ErrorContext(ctx, "failed to update credential", logger.UserID(st.user.ID), logger.Error(err))
		return errors.Join(ErrPersistence, err)
	}
}

func (s *Service) check(cred Credential, code string) (bool, error) {
	v := totp.Validator{Period: uint(cred.Period), Skew: s.skew, Now: s.now}
	ok, err := v.Validate(base32.Encode([]byte(cred.Secret)), code)
	if err != nil {
		return false, errors.Join(ErrSecretUnavailable, err)
	}
	return ok, nil
}

func (s *Service) enrollment(user *User) (*Enrollment, error) {
	encoded := base32.Encode([]byte(user.TwoFactor.Secret))
	uri, err := totp.ProvisioningURI(totp.URIParams{
		Issuer:      s.issuer,
		AccountName: user.AccountName(),
		Secret:      encoded,
		Period:      user.TwoFactor.Period,
	})
	if err != nil {
		return nil, err
	}
	img, err := s.qr.Render(uri)
	if err != nil {
		return nil, err
	}
	return &Enrollment{Secret: encoded, URI: uri, QRImage: img, Period: user.TwoFactor.Period}, nil
}

// getUser reads the record without touching the secret.
func (s *Service) getUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Join(ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// loadUser reads the record and unseals the secret.
func (s *Service) loadUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.TwoFactor.Secret != "" {
		secret, err := s.sealer.Open(user.TwoFactor.Secret)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to open stored secret", logger.UserID(id), logger.Error(err))
			return nil, errors.Join(ErrSecretUnavailable, err)
		}
		user.TwoFactor.Secret = secret
	}
	return user, nil
}
