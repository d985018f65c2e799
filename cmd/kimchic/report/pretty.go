// Package report renders a diag.Bag as human-readable CLI output: a
// colorized "Kind at L:C: message" line per diagnostic, followed by the
// offending source line with a caret span underneath, column-aligned via
// rune width so multibyte source text still lines up. This is CLI-only
// rendering — the core packages never format for a terminal, they only
// produce diag.Bag values.
package report

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"kimchi/internal/diag"
	"kimchi/internal/source"
)

// Options configures one Pretty call.
type Options struct {
	// Color enables ANSI styling; callers gate this on term.IsTerminal
	// themselves, since the package has no business deciding that.
	Color bool
	// Context is how many lines of source to show under each
	// diagnostic. 0 suppresses source preview entirely.
	Context int
	// MaxDiagnostics stops rendering after this many diagnostics,
	// printing a one-line summary of how many were suppressed. 0 means
	// unlimited.
	MaxDiagnostics int
}

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow, color.Bold)
	infoStyle    = color.New(color.FgCyan)
	caretStyle   = color.New(color.FgRed, color.Bold)
	dimStyle     = color.New(color.FgHiBlack)
)

// Pretty writes one formatted block per diagnostic in bag to w, in the
// order the bag holds them (call bag.Sort() first for a stable order).
// When opts.MaxDiagnostics is positive and bag holds more than that many
// diagnostics, only the first MaxDiagnostics are rendered and a trailing
// line reports how many were left out.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	items := bag.Items()
	shown := items
	if opts.MaxDiagnostics > 0 && len(items) > opts.MaxDiagnostics {
		shown = items[:opts.MaxDiagnostics]
	}
	for _, d := range shown {
		writeDiagnostic(w, d, fs, opts)
	}
	if hidden := len(items) - len(shown); hidden > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) suppressed (--max-diagnostics)\n", hidden)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts Options) {
	start, _ := fs.Resolve(d.Primary)
	header := fmt.Sprintf("%s at %d:%d: %s", d.Code.Category, start.Line, start.Col, d.Message)
	fmt.Fprintln(w, styled(header, styleFor(d.Severity), opts.Color))

	if opts.Context > 0 {
		writeSourcePreview(w, d, fs, opts)
	}
	for _, note := range d.Notes {
		ns, _ := fs.Resolve(note.Span)
		line := fmt.Sprintf("  note at %d:%d: %s", ns.Line, ns.Col, note.Msg)
		fmt.Fprintln(w, styled(line, dimStyle, opts.Color))
	}
}

func styled(s string, c *color.Color, enabled bool) string {
	if !enabled {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func styleFor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorStyle
	case diag.SevWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// writeSourcePreview renders the primary span's start line, underlining
// the span's extent on that line with carets. Multi-line spans only
// underline the portion on the first line, since a diagnostic's source
// preview is meant to orient the reader, not reproduce the whole range.
func writeSourcePreview(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts Options) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(d.Primary)
	line := f.Line(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	caretStart := columnWidth(line, 1, start.Col)
	caretLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		width, err := safecast.Conv[int](end.Col - start.Col)
		if err == nil {
			caretLen = width
		}
	}
	caret := strings.Repeat(" ", caretStart) + strings.Repeat("^", caretLen)
	fmt.Fprintf(w, "  %s\n", styled(caret, caretStyle, opts.Color))
}

// columnWidth returns the rendered terminal width of line up to (but not
// including) targetCol, a 1-based column index — the caret offset a
// naive byte-count would get wrong for wide or combining runes.
func columnWidth(line string, fromCol, targetCol uint32) int {
	if targetCol <= fromCol {
		return 0
	}
	runes := []rune(line)
	n := int(targetCol - fromCol)
	if n > len(runes) {
		n = len(runes)
	}
	return runewidth.StringWidth(string(runes[:n]))
}
