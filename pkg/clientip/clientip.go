package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are consulted in order before falling back to RemoteAddr.
var DefaultHeaders = []string{"CF-Connecting-IP", "DO-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Resolver extracts the client address from a request. Proxy headers are
// only honoured when listed; an empty list trusts RemoteAddr alone, which is
// what a service exposed without a reverse proxy must use.
type Resolver struct {
	headers []string
}

// New returns a Resolver trusting headers in the given order.
func New(headers ...string) *Resolver {
	return &Resolver{headers: headers}
}

// IP returns the normalized client IP, or "" when nothing valid is found.
func (r *Resolver) IP(req *http.Request) string {
	for _, h := range r.headers {
		v := req.Header.Get(h)
		if v == "" {
			continue
		}
		// X-Forwarded-For may carry a chain; the first valid entry is the client
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return parseIP(req.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved IP in the request context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := SetIPToContext(req.Context(), r.IP(req))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// GetIP resolves the client IP using DefaultHeaders.
func GetIP(req *http.Request) string {
	return New(DefaultHeaders...).IP(req)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
