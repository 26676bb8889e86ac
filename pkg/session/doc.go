// Package session manages server-side sessions referenced by an opaque
// token.
//
// A Manager combines a Store (MemoryStore or RedisStore) with a Transport
// (a signed cookie, a header, or both through CompositeTransport). Sessions
// start anonymous; Authenticate binds one to a user after the primary login
// and rotates its token. Keys registered with WithResetOnAuthenticate are
// dropped at that point so that per-login flags, such as a completed second
// factor, never carry over from an earlier login.
//
//	mgr, err := session.New(
//		session.WithStore(session.NewRedisStore(client, "sess:")),
//		session.WithTransport(session.NewCookieTransport(cookies, "sid", true)),
//		session.WithResetOnAuthenticate("second_factor"),
//	)
//
//	r := chi.NewRouter()
//	r.Use(mgr.Middleware)
//
// Handlers read the session with FromContext, modify Data and call Save.
package session
