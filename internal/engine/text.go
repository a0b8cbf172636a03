package engine

import (
	"encoding/hex"
	"strings"

	"github.com/louisbranch/randomix/internal/rng"
)

// Charset alphabets for the pattern placeholders.
const (
	charsetUpper        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	charsetLower        = "abcdefghijklmnopqrstuvwxyz"
	charsetDigits       = "0123456789"
	charsetAlphanumeric = charsetUpper + charsetLower + charsetDigits
	charsetSymbols      = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

func charsetFor(c byte) string {
	switch c {
	case 'X':
		return charsetUpper
	case 'x':
		return charsetLower
	case '9':
		return charsetDigits
	case 'A':
		return charsetAlphanumeric
	case '!':
		return charsetSymbols
	}
	return ""
}

// Format renders pattern with its placeholder characters replaced by
// uniformly drawn characters: 'X' uppercase, 'x' lowercase, '9' digit,
// 'A' alphanumeric, '!' symbol. A backslash escapes the following
// character; everything else passes through verbatim. The result is
// truncated to size-1 characters, mirroring the destination-buffer
// contract of the original host interface.
func (e *Engine) Format(t Tier, pattern string, size int) (string, error) {
	if size <= 0 || size > maxBytes {
		return "", ErrInvalidSize
	}

	var b strings.Builder
	e.atomically(t, "format", func(src rng.Source) {
		for i := 0; i < len(pattern) && b.Len() < size-1; i++ {
			c := pattern[i]
			if charset := charsetFor(c); charset != "" {
				b.WriteByte(charset[src.Bounded(uint32(len(charset)))])
				continue
			}
			if c == '\\' && i+1 < len(pattern) {
				i++
				c = pattern[i]
			}
			b.WriteByte(c)
		}
	})
	return b.String(), nil
}

// Bytes returns n random bytes built from the low byte of successive
// draws. Spending a full draw per byte is wasteful but keeps every byte
// identically distributed with no cross-byte structure.
func (e *Engine) Bytes(t Tier, n int) ([]byte, error) {
	if n <= 0 || n > maxBytes {
		return nil, ErrInvalidSize
	}
	buf := make([]byte, n)
	e.atomically(t, "bytes", func(src rng.Source) {
		for i := range buf {
			buf[i] = byte(src.Uint32())
		}
	})
	return buf, nil
}

// Token returns n random bytes rendered as 2n lowercase hex characters.
func (e *Engine) Token(t Tier, n int) (string, error) {
	if n <= 0 || n > maxBytes {
		return "", ErrInvalidSize
	}
	buf := make([]byte, n)
	e.atomically(t, "token", func(src rng.Source) {
		src.Read(buf)
	})
	return hex.EncodeToString(buf), nil
}

// UUID returns a version 4 UUID in canonical 8-4-4-4-12 lowercase hex
// form. Byte 6 carries the version nibble and byte 8 the 10xx variant
// bits, per RFC 4122.
func (e *Engine) UUID(t Tier) string {
	var raw [16]byte
	e.atomically(t, "uuid", func(src rng.Source) {
		src.Read(raw[:])
	})
	raw[6] = raw[6]&0x0F | 0x40
	raw[8] = raw[8]&0x3F | 0x80

	var out [36]byte
	hex.Encode(out[:8], raw[:4])
	out[8] = '-'
	hex.Encode(out[9:13], raw[4:6])
	out[13] = '-'
	hex.Encode(out[14:18], raw[6:8])
	out[18] = '-'
	hex.Encode(out[19:23], raw[8:10])
	out[23] = '-'
	hex.Encode(out[24:], raw[10:])
	return string(out[:])
}
