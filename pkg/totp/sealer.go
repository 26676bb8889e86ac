package totp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// AESKeySize is the key size for AES-256.
const AESKeySize = 32

// Sealer protects secrets at rest.
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// NopSealer stores secrets unchanged.
type NopSealer struct{}

func (NopSealer) Seal(plain string) (string, error)  { return plain, nil }
func (NopSealer) Open(sealed string) (string, error) { return sealed, nil }

// AESSealer encrypts secrets with AES-256-GCM and base64-encodes the
// nonce-prefixed ciphertext.
type AESSealer struct {
	aead cipher.AEAD
}

// NewAESSealer creates a sealer from a 32 byte key.
func NewAESSealer(key []byte) (*AESSealer, error) {
	if len(key) != AESKeySize {
		return nil, ErrInvalidEncryptionKeyLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESSealer{aead: aead}, nil
}

// Seal encrypts plain with a fresh random nonce.
func (s *AESSealer) Seal(plain string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrFailedToSealSecret, err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *AESSealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Join(ErrFailedToOpenSecret, err)
	}
	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", errors.Join(ErrFailedToOpenSecret, ErrInvalidCipherTooShort)
	}
	plain, err := s.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", errors.Join(ErrFailedToOpenSecret, err)
	}
	return string(plain), nil
}

// GenerateEncodedEncryptionKey returns a random AES-256 key, base64-encoded
// for use as TOTP_ENCRYPTION_KEY.
func GenerateEncodedEncryptionKey() (string, error) {
	key := make([]byte, AESKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", errors.Join(ErrFailedToGenerateKey, err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// NewSealer returns an AESSealer when cfg carries an encryption key and a
// NopSealer otherwise.
func NewSealer(cfg Config) (Sealer, error) {
	if cfg.EncryptionKey == "" {
		return NopSealer{}, nil
	}
	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, err)
	}
	s, err := NewAESSealer(key)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, err)
	}
	return s, nil
}
