// internal/encoding/codepage.go
package encoding

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoder turns text into printer bytes for a named codepage
type Encoder interface {
	Encode(text, codepage string) ([]byte, error)
}

// EncodingError reports a character the codepage cannot represent
type EncodingError struct {
	Char     rune
	Offset   int
	Codepage string
	Invalid  bool
}

func (e *EncodingError) Error() string {
	if e.Invalid {
		return fmt.Sprintf("invalid UTF-8 at byte %d for codepage %s", e.Offset, e.Codepage)
	}
	return fmt.Sprintf("character %q (U+%04X) at byte %d cannot be encoded in codepage %s", e.Char, e.Char, e.Offset, e.Codepage)
}

// UnknownCodepageError is returned for codepage names with no table
type UnknownCodepageError struct {
	Codepage string
}

func (e *UnknownCodepageError) Error() string {
	return fmt.Sprintf("unknown codepage %q", e.Codepage)
}

var codepages = map[string]*charmap.Charmap{
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"cp852":        charmap.CodePage852,
	"cp858":        charmap.CodePage858,
	"cp866":        charmap.CodePage866,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
}

// CharmapEncoder encodes text with the single-byte tables from x/text
type CharmapEncoder struct{}

// NewCharmapEncoder returns the default codepage encoder
func NewCharmapEncoder() *CharmapEncoder {
	return &CharmapEncoder{}
}

// Encode maps every rune of text through the codepage table. Nothing is
// substituted: the first unmappable rune aborts with an *EncodingError.
func (CharmapEncoder) Encode(text, codepage string) ([]byte, error) {
	cm, ok := codepages[strings.ToLower(codepage)]
	if !ok {
		return nil, &UnknownCodepageError{Codepage: codepage}
	}

	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, &EncodingError{Char: r, Offset: i, Codepage: codepage, Invalid: true}
		}
		b, ok := cm.EncodeRune(r)
		if !ok {
			return nil, &EncodingError{Char: r, Offset: i, Codepage: codepage}
		}
		out = append(out, b)
		i += size
	}
	return out, nil
}

// Codepages lists the supported codepage names
func Codepages() []string {
	names := make([]string, 0, len(codepages))
	for name := range codepages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
