package manuscript

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding reports transcript bytes that cannot be decoded as text.
var ErrInvalidEncoding = errors.New("invalid transcript encoding")

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Decode turns raw transcript bytes into text with LF line endings.
//
// UTF-16 input is accepted when it carries a byte order mark; a UTF-8 BOM is
// dropped. Anything else must be valid UTF-8.
func Decode(raw []byte) (string, error) {
	switch {
	case bytes.HasPrefix(raw, utf16LEBOM), bytes.HasPrefix(raw, utf16BEBOM):
		if offset := invalidUTF16Offset(raw); offset >= 0 {
			return "", fmt.Errorf("%w: not utf-16 at byte %d", ErrInvalidEncoding, offset)
		}
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, raw)
		if err != nil {
			return "", fmt.Errorf("%w: utf-16: %v", ErrInvalidEncoding, err)
		}
		raw = decoded
	default:
		raw = bytes.TrimPrefix(raw, utf8BOM)
	}

	if offset := invalidUTF8Offset(raw); offset >= 0 {
		return "", fmt.Errorf("%w: not utf-8 at byte %d", ErrInvalidEncoding, offset)
	}
	return normalizeNewlines(string(raw)), nil
}

// invalidUTF16Offset checks BOM-prefixed UTF-16 for a truncated code unit or
// an unpaired surrogate, which the x/text decoder would turn into U+FFFD.
func invalidUTF16Offset(raw []byte) int {
	if len(raw)%2 != 0 {
		return len(raw) - 1
	}
	unit := func(i int) uint16 {
		if raw[0] == 0xFF {
			return uint16(raw[i]) | uint16(raw[i+1])<<8
		}
		return uint16(raw[i])<<8 | uint16(raw[i+1])
	}
	for i := 2; i < len(raw); i += 2 {
		u := unit(i)
		if !utf16.IsSurrogate(rune(u)) {
			continue
		}
		if u >= 0xDC00 || i+2 >= len(raw) {
			return i
		}
		if next := unit(i + 2); next < 0xDC00 || next > 0xDFFF {
			return i
		}
		i += 2
	}
	return -1
}

func invalidUTF8Offset(raw []byte) int {
	if utf8.Valid(raw) {
		return -1
	}
	for offset := 0; offset < len(raw); {
		r, size := utf8.DecodeRune(raw[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
	}
	return -1
}
