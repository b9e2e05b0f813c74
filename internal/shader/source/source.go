// Package source turns shader file bytes into text.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// EncodingUTF8 decodes strictly as UTF-8 and keeps a leading BOM.
	EncodingUTF8 = "utf-8"
	// EncodingAuto honors a UTF-8 or UTF-16 byte order mark.
	EncodingAuto = "auto"
)

// ErrInvalidUTF8 is returned when decoded text is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 text")

// Decoder converts raw file contents to a string.
type Decoder interface {
	Decode(data []byte) (string, error)
}

// StrictUTF8 accepts valid UTF-8 only and returns it byte for byte.
type StrictUTF8 struct{}

// Decode implements Decoder.
func (StrictUTF8) Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", invalidAt(data)
	}
	return string(data), nil
}

// BOMAware transcodes UTF-16 input carrying a byte order mark and strips a
// UTF-8 BOM. Input without a BOM is treated as UTF-8.
type BOMAware struct{}

// Decode implements Decoder.
func (BOMAware) Decode(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	// The UTF-8 decoder substitutes U+FFFD for bad bytes instead of failing.
	if !isUTF16(data) {
		body := bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(body) {
			return "", invalidAt(body)
		}
	}
	return string(out), nil
}

// ForName returns the decoder for an encoding name.
func ForName(name string) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return StrictUTF8{}, nil
	case EncodingAuto:
		return BOMAware{}, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q (want %q or %q)", name, EncodingUTF8, EncodingAuto)
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func isUTF16(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

func invalidAt(data []byte) error {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, i)
		}
		i += size
	}
	return ErrInvalidUTF8
}
