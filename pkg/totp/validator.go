package totp

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"
)

// DefaultSkew is the number of adjacent windows accepted on either side of
// the current one.
const DefaultSkew = 1

const codeDigits = 6

// Validator checks submitted codes against a base32-encoded secret.
// A zero Period means 30 seconds. Now defaults to time.Now.
type Validator struct {
	Period uint
	Skew   uint
	Now    func() time.Time
}

// NewValidator returns a Validator with the given period and skew.
func NewValidator(period, skew uint) Validator {
	return Validator{Period: period, Skew: skew}
}

func (v Validator) opts() pqtotp.ValidateOpts {
	period := v.Period
	if period == 0 {
		period = DefaultPeriod
	}
	return pqtotp.ValidateOpts{
		Period:    period,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

func (v Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

// Code returns the code for the window containing t.
func (v Validator) Code(secret string, t time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	code, err := pqtotp.GenerateCodeCustom(secret, t, v.opts())
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateCode, err)
	}
	return code, nil
}

// Validate reports whether code matches the current window or any window
// within Skew periods of it. Every window is evaluated and compared in
// constant time. Malformed codes are a mismatch, not an error.
func (v Validator) Validate(secret, code string) (bool, error) {
	return v.ValidateAt(secret, code, v.now())
}

// ValidateAt is Validate evaluated at t.
func (v Validator) ValidateAt(secret, code string, t time.Time) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}

	code = strings.TrimSpace(code)
	wellFormed := len(code) == codeDigits && isDigits(code)
	submitted := []byte(code)
	if !wellFormed {
		// keep the comparison work constant for malformed input
		submitted = make([]byte, codeDigits)
	}

	opts := v.opts()
	step := time.Duration(opts.Period) * time.Second
	skew := int(v.Skew)

	match := 0
	for i := -skew; i <= skew; i++ {
		expected, err := pqtotp.GenerateCodeCustom(secret, t.Add(time.Duration(i)*step), opts)
		if err != nil {
			return false, errors.Join(ErrFailedToGenerateCode, err)
		}
		match |= subtle.ConstantTimeCompare([]byte(expected), submitted)
	}

	return wellFormed && match == 1, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
