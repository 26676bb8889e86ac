package qrcode

import "errors"

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
	// ErrUnknownMode is returned by NewRenderer for an unsupported mode.
	ErrUnknownMode = errors.New("unknown QR render mode")
)
