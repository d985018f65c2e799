// Package compiler implements the orchestrator that sequences scanning,
// parsing, dependency-override validation, type-checking, linting, and
// emission into the single `compile(source, options) -> text | Diagnostics`
// contract the rest of the toolchain builds on.
package compiler

import (
	"strings"

	"kimchi/internal/ast"
	"kimchi/internal/checker"
	"kimchi/internal/diag"
	"kimchi/internal/emitter"
	"kimchi/internal/lint"
	"kimchi/internal/parser"
	"kimchi/internal/registry"
	"kimchi/internal/source"
)

// Options configures one Compile call.
type Options struct {
	// Debug has no effect on output today; it exists so callers (the CLI)
	// have a stable place to thread a verbosity flag through without the
	// orchestrator's signature changing later.
	Debug bool
	// SkipTypeCheck bypasses the checker pass entirely.
	SkipTypeCheck bool
	// SkipLint bypasses the linter pass entirely.
	SkipLint bool
	// LintOptions is forwarded to lint.New when the lint pass runs.
	LintOptions lint.Options
	// ModulePath, when non-empty, is this module's own dotted export
	// path: the identity under which its export shape and required-arg
	// set are published for later DepStmt resolution. It is also passed
	// on in emitter.Options, which does not change the emitted text.
	ModulePath string
	// Registry is consulted for DepStmt shape lookups and, on a clean
	// check, published into. A nil Registry gets a fresh one.
	Registry *registry.Registry
	// RequiredArgs is consulted for DepStmt override-arity validation and,
	// after a successful parse, published into under ModulePath. A nil
	// RequiredArgs gets a fresh one.
	RequiredArgs *RequiredArgs
}

// Result bundles a Compile call's output text, diagnostics, and the
// FileSet the diagnostics' spans are relative to — a caller formatting
// them (report.Pretty, an LSP-style consumer) needs the FileSet to
// resolve a Span back to line/column and source text.
type Result struct {
	Text    string
	Bag     *diag.Bag
	FileSet *source.FileSet
}

// Compile runs the full pipeline over source and returns the generated
// JavaScript text, or the diagnostics gathered before the first fatal
// failure. Each stage short-circuits: a scan or parse error returns
// immediately; dep-override arity, type, and lint errors are collected
// into one bag and halt emission only if any of them is fatal.
func Compile(src []byte, opts Options) Result {
	reg := opts.Registry
	if reg == nil {
		reg = registry.New()
	}
	req := opts.RequiredArgs
	if req == nil {
		req = NewRequiredArgs()
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("<compile>", src)

	prog, perr := parser.Parse(fs, id)
	if perr != nil {
		bag := diag.NewBag(1)
		bag.Add(*perr)
		return Result{Bag: bag, FileSet: fs}
	}

	if opts.ModulePath != "" {
		req.Register(opts.ModulePath, collectRequiredNames(prog.Statements))
	}

	bag := diag.NewBag(512)
	validateDepOverrides(prog.Statements, req, bag)

	if !opts.SkipTypeCheck {
		c := checker.New(checker.Options{ModulePath: opts.ModulePath, Registry: reg})
		bag.Merge(c.Check(prog))
	}

	if !opts.SkipLint {
		l := lint.New(opts.LintOptions)
		bag.Merge(l.Lint(prog))
	}

	bag.Sort()
	if bag.HasErrors() {
		return Result{Bag: bag, FileSet: fs}
	}

	out := emitter.Emit(prog, emitter.Options{ModulePath: opts.ModulePath})
	return Result{Text: out, Bag: bag, FileSet: fs}
}

// collectRequiredNames gathers every top-level ArgDecl/EnvDecl name marked
// Required, in source order, for publication into the RequiredArgs map.
func collectRequiredNames(stmts []ast.Stmt) []string {
	var names []string
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.ArgDecl:
			if d.Required {
				names = append(names, d.Name)
			}
		case *ast.EnvDecl:
			if d.Required {
				names = append(names, d.Name)
			}
		}
	}
	return names
}

// validateDepOverrides implements the orchestrator's own dep-arity check:
// distinct from the checker's checkDepOverride (which validates a given
// override key's value shape), this verifies the override object actually
// supplies every required arg the target module declared, per its entry
// in the RequiredArgs map. A target with no registered entry (never
// compiled with a ModulePath, or genuinely has no required args) is
// skipped rather than flagged, since an unregistered dependency is the
// checker's concern, not this one's.
func validateDepOverrides(stmts []ast.Stmt, req *RequiredArgs, bag *diag.Bag) {
	for _, s := range stmts {
		dep, ok := s.(*ast.DepStmt)
		if !ok {
			continue
		}
		path := strings.Join(dep.PathParts, ".")
		required, ok := req.Lookup(path)
		if !ok || len(required) == 0 {
			continue
		}
		supplied := overrideKeys(dep.Override)
		for _, name := range required {
			if !supplied[name] {
				bag.Add(diag.NewError(diag.CodeMissingRequiredArg, dep.Span(),
					"dep '"+dep.Alias+"' is missing required arg '"+name+"' for "+path))
			}
		}
	}
}

// overrideKeys flattens a DepStmt's override expression (nil, or an
// ast.ObjectLiteral) into the set of plain (non-dotted) keys it supplies.
func overrideKeys(override ast.Expr) map[string]bool {
	keys := make(map[string]bool)
	obj, ok := override.(*ast.ObjectLiteral)
	if !ok {
		return keys
	}
	for _, m := range obj.Members {
		prop, ok := m.(ast.Property)
		if !ok || prop.Computed {
			continue
		}
		if !strings.Contains(prop.Key, ".") {
			keys[prop.Key] = true
		}
	}
	return keys
}
