package clientip

import "net/http"

// Middleware stores the client IP resolved with DefaultHeaders in the
// request context.
func Middleware(next http.Handler) http.Handler {
	return New(DefaultHeaders...).Middleware(next)
}
