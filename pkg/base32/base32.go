package base32

import "strings"

// Alphabet is the RFC 4648 base32 alphabet.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

const padChar = '='

var decodeMap = func() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = 0xff
	}
	for i := 0; i < len(Alphabet); i++ {
		m[Alphabet[i]] = byte(i)
	}
	return m
}()

// EncodedLen returns the length of the padded encoding of n input bytes.
func EncodedLen(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + 4) / 5 * 8
}

// Encode returns the padded base32 encoding of src.
func Encode(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	quintets := (len(src)*8 + 4) / 5
	out := make([]byte, EncodedLen(len(src)))

	// idx points at the byte being consumed, offset is how many of its
	// high-order bits are already used.
	idx, offset := 0, 0
	for i := range quintets {
		var digit byte
		cur := src[idx]

		if offset > 3 {
			digit = cur & (0xff >> offset)
			offset = (offset + 5) % 8
			digit <<= offset
			if idx+1 < len(src) {
				digit |= src[idx+1] >> (8 - offset)
			}
			idx++
		} else {
			digit = (cur >> (3 - offset)) & 0x1f
			offset = (offset + 5) % 8
			if offset == 0 {
				idx++
			}
		}

		out[i] = Alphabet[digit]
	}

	for i := quintets; i < len(out); i++ {
		out[i] = padChar
	}

	return string(out)
}

// EncodeString is a convenience wrapper around Encode for text secrets.
func EncodeString(s string) string {
	return Encode([]byte(s))
}

// Decode returns the bytes represented by the padded base32 string s.
func Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	if len(s)%8 != 0 {
		return nil, ErrInvalidLength
	}

	data := s
	if i := strings.IndexByte(s, padChar); i >= 0 {
		data = s[:i]
		if strings.Trim(s[i:], string(padChar)) != "" {
			return nil, ErrInvalidPadding
		}
	}

	switch len(s) - len(data) {
	case 0, 1, 3, 4, 6:
	default:
		return nil, ErrInvalidPadding
	}

	out := make([]byte, 0, len(data)*5/8)
	var buf uint16
	bits := 0
	for i := 0; i < len(data); i++ {
		v := decodeMap[data[i]]
		if v == 0xff {
			return nil, ErrInvalidCharacter
		}
		buf = buf<<5 | uint16(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
			buf &= 1<<bits - 1
		}
	}

	// Leftover bits are the zero fill added by Encode.
	if buf != 0 {
		return nil, ErrInvalidPadding
	}

	return out, nil
}
