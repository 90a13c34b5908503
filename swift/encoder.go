// Package swift renders parsed storyboards into Swift support source.
package swift

import (
	"encoding"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wpsteak/Natalie/storyboard"
)

// Encoder renders a set of storyboards into a textual form.
type Encoder interface {
	encoding.TextMarshaler
	Encode(storyboards []*storyboard.Storyboard) error
}

// TextEncoder writes the canonical tree rendering of each storyboard. It
// backs the dump command and is useful when diffing what the parser saw.
type TextEncoder struct {
	w           io.Writer
	storyboards []*storyboard.Storyboard
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(storyboards []*storyboard.Storyboard) error {
	e.storyboards = storyboards
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, s := range e.storyboards {
		fmt.Fprintf(&sb, "// %s.storyboard\n", s.Name)
		sb.WriteString(s.Doc.String())
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

// identifier turns an arbitrary storyboard string into a Swift type-level
// identifier: non-alphanumeric runs split words, each word is capitalized,
// and a leading digit gets an underscore prefix.
func identifier(s string) string {
	var b strings.Builder
	capitalize := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capitalize = true
			continue
		}
		if capitalize {
			r = unicode.ToUpper(r)
			capitalize = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "_" + out
	}
	return out
}

// caseName is identifier with a lowered first letter, for enum cases.
func caseName(s string) string {
	id := identifier(s)
	r, size := utf8.DecodeRuneInString(id)
	return string(unicode.ToLower(r)) + id[size:]
}
