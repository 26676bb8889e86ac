package base32

import "errors"

var (
	ErrInvalidLength    = errors.New("base32: input length is not a multiple of 8")
	ErrInvalidCharacter = errors.New("base32: invalid character")
	ErrInvalidPadding   = errors.New("base32: invalid padding")
)
