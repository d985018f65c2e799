// Package checker implements the TypeChecker: a two-pass structural
// analysis over an AST that reports shape errors and, on success,
// publishes the module's export shape to a process-wide registry.
package checker

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/registry"
	"kimchi/internal/source"
	"kimchi/internal/types"
)

// Options configure one Check call.
type Options struct {
	// ModulePath, when non-empty, is the dotted path under which the
	// module's export shape is published to Registry on success.
	ModulePath string
	// Registry is consulted for DepStmt lookups and, on a successful
	// check with ModulePath set, written back into. A nil Registry is
	// replaced with a fresh, empty one for the duration of the check.
	Registry *registry.Registry
}

// Checker walks one program's AST, threading a lexical scope stack and
// accumulating diagnostics into a bounded Bag.
type Checker struct {
	bag        *diag.Bag
	reg        *registry.Registry
	modulePath string
	scope      *scope
	exports    map[string]*types.Shape
}

// New constructs a Checker ready to Check a single program.
func New(opts Options) *Checker {
	reg := opts.Registry
	if reg == nil {
		reg = registry.New()
	}
	return &Checker{
		bag:        diag.NewBag(512),
		reg:        reg,
		modulePath: opts.ModulePath,
		scope:      newScope(nil),
		exports:    make(map[string]*types.Shape),
	}
}

// Check performs the hoist-then-visit pass over prog and returns the
// accumulated diagnostics. On success (no errors), if a ModulePath was
// supplied the module's export shape is published to the registry.
func (c *Checker) Check(prog *ast.Program) *diag.Bag {
	c.hoist(prog.Statements)
	c.visitStmts(prog.Statements)
	if c.modulePath != "" && !c.bag.HasErrors() {
		c.reg.Register(c.modulePath, types.NewObject(c.exports))
	}
	return c.bag
}

// ExportShape returns the export object accumulated so far, for callers
// that want it independent of registry publication (e.g. the compiler
// orchestrator validating a DepStmt override's arity before type-check).
func (c *Checker) ExportShape() *types.Shape {
	return types.NewObject(c.exports)
}

// hoist registers every top-level function and enum declaration's shape
// before any statement is visited, so forward references between
// sibling declarations resolve.
func (c *Checker) hoist(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			shape := functionHoistShape(s)
			c.scope.define(s.Name, shape)
			if s.Exposed {
				c.exports[s.Name] = shape
			}
		case *ast.EnumDecl:
			shape := enumShape(s)
			c.scope.define(s.Name, shape)
		}
	}
}

func functionHoistShape(fn *ast.FunctionDecl) *types.Shape {
	params := make([]*types.Shape, len(fn.Params))
	for i := range fn.Params {
		params[i] = types.AnyShape()
	}
	return types.NewFunction(params, types.AnyShape())
}

func enumShape(e *ast.EnumDecl) *types.Shape {
	members := make(map[string]int64, len(e.Members))
	var next int64
	for _, m := range e.Members {
		if m.ExplicitValue != nil {
			next = *m.ExplicitValue
		}
		members[m.Name] = next
		next++
	}
	return types.NewEnum(e.Name, members)
}

func (c *Checker) errorf(sp source.Span, code diag.Code, msg string) {
	c.bag.Add(diag.NewError(code, sp, msg))
}

func (c *Checker) pushScope() { c.scope = newScope(c.scope) }
func (c *Checker) popScope()  { c.scope = c.scope.parent }
