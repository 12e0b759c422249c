// Package textio decodes raw input into validated UTF-8 text.
//
// Counting functions assume their input is well-formed; this is where that
// is enforced before anything reaches them.
package textio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Encoding names how input bytes are interpreted.
type Encoding int

const (
	// Auto sniffs a byte order mark and falls back to UTF-8.
	Auto Encoding = iota
	UTF8
	UTF16LE
	UTF16BE
)

var (
	// ErrInvalidUTF8 is returned when decoded input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// ErrInvalidUTF16 is returned for UTF-16 input holding an unpaired surrogate.
	ErrInvalidUTF16 = errors.New("invalid UTF-16")
)

func (e Encoding) String() string {
	switch e {
	case Auto:
		return "auto"
	case UTF8:
		return "utf-8"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding parses an encoding name. Case and dashes are ignored.
func ParseEncoding(s string) (Encoding, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	switch norm {
	case "", "auto":
		return Auto, nil
	case "utf8":
		return UTF8, nil
	case "utf16le", "utf16":
		return UTF16LE, nil
	case "utf16be":
		return UTF16BE, nil
	}
	return Auto, fmt.Errorf("unknown encoding %q (want auto, utf-8, utf-16le or utf-16be)", s)
}

// Decode converts data to a string according to enc and validates the result.
func Decode(data []byte, enc Encoding) (string, error) {
	if enc == Auto {
		enc = sniff(data)
	}

	var text string
	switch enc {
	case UTF16LE:
		out, err := decodeUTF16(data, unicode.LittleEndian)
		if err != nil {
			return "", err
		}
		text = out
	case UTF16BE:
		out, err := decodeUTF16(data, unicode.BigEndian)
		if err != nil {
			return "", err
		}
		text = out
	default:
		text = string(trimUTF8BOM(data))
	}

	if err := Validate(text); err != nil {
		return "", err
	}
	return text, nil
}

// Validate reports the offset of the first invalid UTF-8 sequence in s.
func Validate(s string) error {
	if utf8.ValidString(s) {
		return nil
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, i)
		}
		i += size
	}
	return ErrInvalidUTF8
}

// ReadAll reads r to EOF and decodes it.
func ReadAll(r io.Reader, enc Encoding) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Decode(data, enc)
}

// ReadFile reads and decodes the named file.
func ReadFile(path string, enc Encoding) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := Decode(data, enc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// StripNewline removes a single trailing "\n" or "\r\n".
func StripNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

func sniff(data []byte) Encoding {
	if len(data) >= 2 {
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			return UTF16LE
		case data[0] == 0xFE && data[1] == 0xFF:
			return UTF16BE
		}
	}
	return UTF8
}

func trimUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func decodeUTF16(data []byte, endian unicode.Endianness) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("odd UTF-16 input length %d", len(data))
	}
	// The x/text decoder replaces unpaired surrogates with U+FFFD silently.
	if err := checkSurrogates(data, endian); err != nil {
		return "", err
	}
	decoder := unicode.UTF16(endian, unicode.UseBOM).NewDecoder()
	out, err := decoder.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16: %w", err)
	}
	return string(out), nil
}

// checkSurrogates reports the first unpaired surrogate in data, by 16-bit
// unit offset. A leading BOM selects the byte order, as it does for decoding.
func checkSurrogates(data []byte, endian unicode.Endianness) error {
	start := 0
	if len(data) >= 2 {
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			endian, start = unicode.LittleEndian, 2
		case data[0] == 0xFE && data[1] == 0xFF:
			endian, start = unicode.BigEndian, 2
		}
	}
	unit := func(i int) uint16 {
		if endian == unicode.BigEndian {
			return uint16(data[i])<<8 | uint16(data[i+1])
		}
		return uint16(data[i+1])<<8 | uint16(data[i])
	}

	for i := start; i < len(data); i += 2 {
		u := unit(i)
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+2 < len(data) {
				if next := unit(i + 2); next >= 0xDC00 && next < 0xE000 {
					i += 2
					continue
				}
			}
			return fmt.Errorf("%w: unpaired high surrogate %#04x at unit %d", ErrInvalidUTF16, u, i/2)
		case u >= 0xDC00 && u < 0xE000:
			return fmt.Errorf("%w: unpaired low surrogate %#04x at unit %d", ErrInvalidUTF16, u, i/2)
		}
	}
	return nil
}
