package twofactor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/base32"
	"github.com/dmitrymomot/twofactor/pkg/totp"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

const (
	testSecret    = "abcdefghij"
	testSecretB32 = "MFRGGZDFMZTWQ2LK"
	testEmail     = "user@example.com"
)

func fixedSecret(secret string) func(int) (string, error) {
	return func(int) (string, error) { return secret, nil }
}

func newTestService(storage Storage, opts ...Option) *Service {
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		withSecretSource(fixedSecret(testSecret)),
	}
	return NewService(storage, append(base, opts...)...)
}

func testUser(cred Credential) User {
	return User{ID: uuid.New(), Email: testEmail, TwoFactor: cred, Version: 3}
}

func pendingCredential() Credential {
	return Credential{Secret: testSecret, Period: DefaultPeriod}
}

func enabledCredential() Credential {
	return Credential{Secret: testSecret, Period: DefaultPeriod, Enabled: true}
}

func codeAt(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	code, err := totp.Validator{}.Code(base32.Encode([]byte(secret)), at)
	require.NoError(t, err)
	return code
}

// wrongCode returns a well-formed code matching none of the windows around at.
func wrongCode(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	valid := map[string]bool{}
	for _, d := range []time.Duration{-30 * time.Second, 0, 30 * time.Second} {
		valid[codeAt(t, secret, at.Add(d))] = true
	}
	for _, c := range []string{"000000", "111111", "222222", "333333"} {
		if !valid[c] {
			return c
		}
	}
	t.Fatal("no wrong code candidate")
	return ""
}
