// Package twofactor mounts the TOTP enrollment and login verification routes
// and the RequireSecondFactor gate on a chi router.
//
//	sessions, _ := session.New(
//		session.WithTransport(transport),
//		session.WithResetOnAuthenticate(twofactorhttp.ResetKeys()...),
//	)
//	mod := twofactorhttp.New(svc, sessions, twofactorhttp.WithIPResolver(ips))
//
//	r := chi.NewRouter()
//	r.Mount("/", mod.Handle())
//	r.With(sessions.Middleware, sessions.RequireAuth, mod.RequireSecondFactor).
//		Get("/billing", billingPage)
//
// The module serves every page in Paths, so each redirect it issues has a
// handler. Pages answer JSON describing the step and where its form posts.
// The session must be loaded by session.Manager.Middleware before the gate
// runs. Throttled submissions answer 429 with Retry-After.
package twofactor
