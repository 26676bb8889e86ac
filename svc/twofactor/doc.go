// Package twofactor implements TOTP ("enhanced security") enrollment and
// login verification on top of a user Storage.
//
// A user's credential moves through three states:
//
//	unset --begin--> pending --confirm--> enabled --disable--> unset
//
// BeginEnrollment generates a secret and returns its provisioning payload;
// calling it again while pending returns the same secret. ConfirmEnrollment
// enables the credential once a code from the authenticator app matches.
// Verify gates a login that passed the primary factor: on success it marks
// the Session and returns where to send the user next.
//
//	svc := twofactor.NewService(storage,
//		twofactor.WithConfig(totpCfg),
//		twofactor.WithAttemptLimit(perIP, twofactor.ByIdentity),
//		twofactor.WithAttemptLimit(perUser, twofactor.ByUser),
//	)
//
//	res, err := svc.Verify(ctx, twofactor.Attempt{UserID: id, Code: code, Identity: ip}, sess)
//	switch {
//	case errors.Is(err, twofactor.ErrTooManyAttempts):
//		// 429
//	case err != nil:
//		// 500
//	case !res.Success:
//		// ask again
//	default:
//		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
//	}
//
// Every credential write is a compare-and-set on User.Version, so
// concurrent requests never enable a secret the user was not shown.
package twofactor
