package totp

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

// SecretAlphabet is the character set secrets are drawn from.
const SecretAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultSecretLength is the number of characters in a freshly generated secret.
const DefaultSecretLength = 10

var alphabetSize = big.NewInt(int64(len(SecretAlphabet)))

// GenerateSecret returns length characters drawn uniformly and independently
// from SecretAlphabet using the system's cryptographic random source.
// The raw characters are the HMAC key; encode them with base32 for display.
func GenerateSecret(length int) (string, error) {
	return generateSecret(rand.Reader, length)
}

func generateSecret(r io.Reader, length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidSecretLength
	}

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(r, alphabetSize)
		if err != nil {
			return "", errors.Join(ErrRandomnessUnavailable, err)
		}
		out[i] = SecretAlphabet[n.Int64()]
	}
	return string(out), nil
}
