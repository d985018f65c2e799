// Package lint implements the Linter: a three-pass AST walk reporting
// unused/shadowed bindings, unreachable code, empty blocks, constant
// conditions, and duplicate object keys.
package lint

import (
	"strings"

	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/source"
)

// Options configure one Lint call. The linter currently has no tunables,
// but keeps the struct for the same reason Checker and Compiler do: a
// stable call shape future rule toggles can extend without breaking
// callers.
type Options struct{}

// Linter accumulates diagnostics across its three passes over one
// program: hoist top-level declarations, walk tracking uses and nested
// scopes, then report what never got used.
type Linter struct {
	bag         *diag.Bag
	allBindings []*binding
}

// New constructs a Linter ready to Lint a single program.
func New(Options) *Linter {
	return &Linter{bag: diag.NewBag(512)}
}

// Lint runs all three passes over prog and returns the accumulated
// diagnostics, sorted for stable display. Only duplicate-key is error
// severity; everything else is warning or info, matching the rule table.
func (l *Linter) Lint(prog *ast.Program) *diag.Bag {
	root := newLintScope(nil)
	l.hoistTopLevel(prog.Statements, root)
	l.walkStmtsInScope(prog.Statements, root)
	l.reportUnused()
	l.bag.Sort()
	return l.bag
}

// hoistTopLevel is pass one: function and enum names are visible to every
// sibling statement regardless of source order, matching the checker's
// own hoist pass so the two don't disagree about what's in scope.
func (l *Linter) hoistTopLevel(stmts []ast.Stmt, sc *lintScope) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			l.declare(sc, s.Name, s.Span(), s.Exposed)
		case *ast.EnumDecl:
			l.declare(sc, s.Name, s.Span(), false)
		}
	}
}

// reportUnused is pass three: any binding nobody ever referenced, that
// isn't exposed and doesn't start with '_', is a warning.
func (l *Linter) reportUnused() {
	for _, b := range l.allBindings {
		if b.used || b.exported || strings.HasPrefix(b.name, "_") {
			continue
		}
		l.bag.Add(diag.NewWarning(diag.CodeUnusedBinding, b.span, "'"+b.name+"' is declared but never used"))
	}
}

// declare registers name in sc, reporting shadow-variable when it hides
// an outer binding, and records it for the final unused-binding pass.
func (l *Linter) declare(sc *lintScope, name string, span source.Span, exported bool) {
	if name == "" {
		return
	}
	shadowed, shadows, isNew := sc.declare(name, span, exported)
	if shadows {
		_ = shadowed
		l.bag.Add(diag.NewWarning(diag.CodeShadowedBinding, span, "'"+name+"' shadows an outer binding"))
	}
	if isNew {
		l.allBindings = append(l.allBindings, sc.bindings[name])
	}
}
