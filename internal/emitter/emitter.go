// Package emitter turns a checked, linted AST into JavaScript (ES module)
// source text: a fixed runtime preamble, followed by a module-factory
// function wrapping the program's declarations, argument/environment
// extraction, dependency resolution, and exported bindings.
package emitter

import "kimchi/internal/ast"

// Options configures one Emit call.
type Options struct {
	// ModulePath is this module's own dotted export path. Emit does not
	// read it, so it has no effect on the output. Empty is fine for a
	// module with no registry identity.
	ModulePath string
}

// Emitter holds the accumulating output buffer and the bookkeeping the
// module wrapper's multi-phase body needs (which deps were imported, what
// the final export object lists).
type Emitter struct {
	w    writer
	opts Options
}

// New constructs an Emitter. Most callers should use the package-level
// Emit instead; New exists for callers that want to interleave additional
// raw output around a single Emitter's buffer.
func New(opts Options) *Emitter {
	return &Emitter{opts: opts}
}

// Emit lowers prog into a complete JS module's source text.
func Emit(prog *ast.Program, opts Options) string {
	e := New(opts)
	e.emitPreamble(prog.Statements)
	e.emitModule(prog.Statements)
	return e.w.String()
}

func (e *Emitter) emitPreamble(stmts []ast.Stmt) {
	e.w.raw(runtimePreamble)
	if usesShellBlocks(stmts) {
		e.w.raw(shellRuntimeHelper)
	}
	e.w.line("")
}
