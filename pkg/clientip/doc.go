// Package clientip resolves the originating client address of a request.
// The address is the per-IP identity used to throttle second-factor
// attempts, so only proxy headers the deployment actually sets should be
// trusted:
//
//	ips := clientip.New("X-Forwarded-For")
//	r.Use(ips.Middleware)
//
//	ip := clientip.GetIPFromContext(r.Context())
//
// New() with no headers trusts only RemoteAddr. GetIP and Middleware use
// DefaultHeaders (Cloudflare, DigitalOcean, X-Forwarded-For, X-Real-IP).
package clientip
