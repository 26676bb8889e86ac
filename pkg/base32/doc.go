// Package base32 implements the RFC 4648 base32 alphabet (A-Z, 2-7) with
// trailing "=" padding.
//
// The encoder walks the input as one big-endian bit stream and emits one
// character per 5-bit group. When the current byte has fewer than five bits
// left, the missing low-order bits of the group are borrowed from the high end
// of the next byte (or zero-filled past the end of input). Output is padded
// with "=" to a multiple of 8 characters, except for empty input, which encodes
// to the empty string.
//
// The package exists to render TOTP secrets inside provisioning URIs, so the
// API is intentionally small:
//
//	s := base32.Encode([]byte("foobar")) // "MZXW6YTBOI======"
//	b, err := base32.Decode(s)           // []byte("foobar"), nil
//
// Decode is the exact inverse of Encode and rejects anything Encode could not
// have produced: characters outside the alphabet, padding in the middle of the
// data, non-zero trailing bits and lengths that are not a multiple of 8.
package base32
