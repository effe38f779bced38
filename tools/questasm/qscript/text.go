package qscript

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is an on-wire text encoding.
type Encoding uint8

const (
	ShiftJIS    Encoding = iota // Japanese clients
	ISO8859_1                   // DC clients in other languages
	Windows1252                 // GC and Xbox clients in other languages
	UTF16                       // PC and BB clients
)

func (e Encoding) String() string {
	switch e {
	case ShiftJIS:
		return "Shift_JIS"
	case ISO8859_1:
		return "ISO-8859-1"
	case Windows1252:
		return "Windows-1252"
	case UTF16:
		return "UTF-16LE"
	default:
		return "Other"
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case ISO8859_1:
		return charmap.ISO8859_1
	case Windows1252:
		return charmap.Windows1252
	case UTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	default:
		return japanese.ShiftJIS
	}
}

// UnitSize is the size of one NUL terminator in e.
func (e Encoding) UnitSize() int {
	if e == UTF16 {
		return 2
	}
	return 1
}

// TextEncoding returns the encoding used for strings on version v when the
// header's language byte is language. Language 0 is Japanese.
func TextEncoding(v Version, language uint8) Encoding {
	switch {
	case v.UsesUTF16():
		return UTF16
	case v == DCNTE || v == DC112000 || language == 0:
		return ShiftJIS
	case v == DCV1 || v == DCV2:
		return ISO8859_1
	default:
		return Windows1252
	}
}

var errUndecodable = errors.New("text is not valid in its encoding")

// Decode converts b to UTF-8. It fails if b does not survive a
// decode/encode cycle, since replacement characters would lose bytes.
func (e Encoding) Decode(b []byte) (string, error) {
	out, _, err := transform.Bytes(e.codec().NewDecoder(), b)
	if err != nil {
		return "", err
	}
	back, err := e.Encode(string(out))
	if err != nil || !bytes.Equal(back, b) {
		return "", errUndecodable
	}
	return string(out), nil
}

// Encode converts UTF-8 text to e.
func (e Encoding) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%s: invalid UTF-8", e)
	}
	out, _, err := transform.Bytes(e.codec().NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e, err)
	}
	return out, nil
}

// Text is a string as stored in a script. Raw is set instead of Str when
// the stored bytes are not valid in their encoding.
type Text struct {
	Str string
	Raw []byte
}

// DecodeText decodes b, keeping the raw bytes if they cannot be decoded.
func (e Encoding) DecodeText(b []byte) Text {
	s, err := e.Decode(b)
	if err != nil {
		return Text{Raw: bytes.Clone(b)}
	}
	return Text{Str: s}
}

// EncodeText returns the on-wire bytes of t without a terminator.
func (e Encoding) EncodeText(t Text) ([]byte, error) {
	if t.Raw != nil {
		return t.Raw, nil
	}
	return e.Encode(t.Str)
}

// decodeField reads a fixed-capacity field, stopping at the first NUL.
func (e Encoding) decodeField(b []byte) Text {
	return e.DecodeText(b[:terminatedLen(b, e.UnitSize())])
}

// encodeField writes t into a zeroed field of size bytes. Text that does
// not fit is cut at a character boundary.
func (e Encoding) encodeField(field []byte, t Text) error {
	if t.Raw != nil {
		copy(field, t.Raw)
		return nil
	}
	b, err := e.Encode(t.Str)
	if err != nil {
		return err
	}
	for s := t.Str; len(b) > len(field); {
		_, n := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-n]
		if b, err = e.Encode(s); err != nil {
			return err
		}
	}
	copy(field, b)
	return nil
}

// terminatedLen returns the length of b up to its first NUL unit.
func terminatedLen(b []byte, unit int) int {
	for i := 0; i+unit <= len(b); i += unit {
		if b[i] == 0 && (unit == 1 || b[i+1] == 0) {
			return i
		}
	}
	return len(b) - len(b)%unit
}

func (t Text) String() string {
	if t.Raw != nil {
		return `x"` + strings.ToUpper(hex.EncodeToString(t.Raw)) + `"`
	}
	return strconv.Quote(t.Str)
}

// ParseText parses a quoted string or an x"HEX" raw literal.
func ParseText(s string) (Text, error) {
	if strings.HasPrefix(s, `x"`) {
		if len(s) < 3 || s[len(s)-1] != '"' {
			return Text{}, fmt.Errorf("unterminated raw string %s", s)
		}
		raw, err := hex.DecodeString(s[2 : len(s)-1])
		if err != nil {
			return Text{}, fmt.Errorf("raw string %s: %w", s, err)
		}
		if raw == nil {
			raw = []byte{}
		}
		return Text{Raw: raw}, nil
	}
	str, err := strconv.Unquote(s)
	if err != nil || !strings.HasPrefix(s, `"`) {
		return Text{}, fmt.Errorf("invalid string literal %s", s)
	}
	return Text{Str: str}, nil
}
