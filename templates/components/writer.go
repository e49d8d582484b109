package components

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments and keeps the first error.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes s unescaped.
func (hw *Writer) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Text writes s with HTML escaping.
func (hw *Writer) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Printf formats like fmt.Sprintf, escaping every string argument.
func (hw *Writer) Printf(format string, args ...interface{}) {
	escaped := make([]interface{}, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			escaped[i] = templ.EscapeString(s)
		} else {
			escaped[i] = a
		}
	}
	hw.Raw(fmt.Sprintf(format, escaped...))
}

// Component renders a nested component into the same stream.
func (hw *Writer) Component(r func(io.Writer) error) {
	if hw.err != nil {
		return
	}
	hw.err = r(hw.w)
}

// Err returns the first write error.
func (hw *Writer) Err() error {
	return hw.err
}
