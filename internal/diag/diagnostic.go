package diag

import (
	"fmt"

	"kimchi/internal/source"
)

// Note attaches supplementary context to a Diagnostic at a secondary span.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the uniform error record every core pass produces:
// severity, a categorized code, a message, and the primary source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote returns a copy of d with an additional note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Format renders d in the user-visible "Kind at L:C: message" form.
func (d Diagnostic) Format(fs *source.FileSet) string {
	start, _ := fs.Resolve(d.Primary)
	return fmt.Sprintf("%s at %d:%d: %s", d.Code.Category, start.Line, start.Col, d.Message)
}
