// Package cookie writes and reads HTTP cookies with shared default
// attributes and optional HMAC-SHA256 signatures.
//
//	m, err := cookie.New([]string{secret}, cookie.WithSecure(true))
//	m.SetSigned(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := m.GetSigned(r, "sid")
//
// Several secrets may be given for rotation: the first signs new cookies and
// all of them are tried when verifying. Secrets must be at least 32
// characters long.
package cookie
