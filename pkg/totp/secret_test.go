package totp_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/totp"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	t.Run("default length", func(t *testing.T) {
		t.Parallel()
		secret, err := totp.GenerateSecret(totp.DefaultSecretLength)
		require.NoError(t, err)
		assert.Len(t, secret, 10)
		assert.Regexp(t, `^[a-z0-9]{10}$`, secret)
	})

	t.Run("arbitrary lengths", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{1, 7, 32, 100} {
			secret, err := totp.GenerateSecret(n)
			require.NoError(t, err)
			assert.Len(t, secret, n)
			for _, c := range secret {
				assert.True(t, strings.ContainsRune(totp.SecretAlphabet, c), "unexpected character %q", c)
			}
		}
	})

	t.Run("non-positive length", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{0, -1} {
			secret, err := totp.GenerateSecret(n)
			assert.ErrorIs(t, err, totp.ErrInvalidSecretLength)
			assert.Empty(t, secret)
		}
	})

	t.Run("randomness failure does not fall back", func(t *testing.T) {
		t.Parallel()
		secret, err := totp.GenerateSecretFrom(failingReader{}, 10)
		assert.ErrorIs(t, err, totp.ErrRandomnessUnavailable)
		assert.Empty(t, secret)
	})
}

func TestGenerateSecret_Distribution(t *testing.T) {
	t.Parallel()

	const draws = 2000
	counts := make(map[rune]int)
	for range draws {
		secret, err := totp.GenerateSecret(totp.DefaultSecretLength)
		require.NoError(t, err)
		for _, c := range secret {
			counts[c]++
		}
	}

	// every symbol appears; the expected count per symbol is ~555
	assert.Len(t, counts, len(totp.SecretAlphabet))
	for c, n := range counts {
		assert.Greater(t, n, 350, "symbol %q is underrepresented", c)
		assert.Less(t, n, 800, "symbol %q is overrepresented", c)
	}
}

func TestGenerateSecret_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 1000 {
		secret, err := totp.GenerateSecret(totp.DefaultSecretLength)
		require.NoError(t, err)
		_, dup := seen[secret]
		require.False(t, dup, "duplicate secret generated")
		seen[secret] = struct{}{}
	}
}
