package totp

import "errors"

var (
	ErrInvalidSecretLength        = errors.New("secret length must be greater than 0")
	ErrRandomnessUnavailable      = errors.New("secure randomness source unavailable")
	ErrMissingSecret              = errors.New("missing secret")
	ErrMissingAccountName         = errors.New("missing account name")
	ErrMissingIssuer              = errors.New("missing issuer")
	ErrInvalidPeriod              = errors.New("period must be greater than 0")
	ErrFailedToGenerateCode       = errors.New("failed to generate TOTP code")
	ErrFailedToSealSecret         = errors.New("failed to encrypt TOTP secret")
	ErrFailedToOpenSecret         = errors.New("failed to decrypt TOTP secret")
	ErrInvalidCipherTooShort      = errors.New("cipher text too short")
	ErrInvalidEncryptionKeyLength = errors.New("invalid encryption key length")
	ErrFailedToLoadEncryptionKey  = errors.New("failed to load encryption key")
	ErrFailedToGenerateKey        = errors.New("failed to generate encryption key")
)
