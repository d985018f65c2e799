package emitter

import (
	"fmt"
	"strings"
)

// writer is a small indent-tracking text buffer. Every line the emitter
// produces goes through it so nested JS blocks come out looking like
// ordinary hand-formatted source rather than a flat instruction stream.
type writer struct {
	buf    strings.Builder
	indent int
}

func (w *writer) line(s string) {
	if s == "" {
		w.buf.WriteByte('\n')
		return
	}
	w.buf.WriteString(strings.Repeat("  ", w.indent))
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

func (w *writer) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

// raw writes s verbatim, with no indent prefix or trailing newline. Used
// for the fixed preamble block, which carries its own formatting.
func (w *writer) raw(s string) {
	w.buf.WriteString(s)
}

func (w *writer) push() { w.indent++ }

func (w *writer) pop() {
	if w.indent > 0 {
		w.indent--
	}
}

func (w *writer) String() string { return w.buf.String() }
