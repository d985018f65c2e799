package checker

import (
	"strings"

	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/types"
)

func (c *Checker) visitStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		c.visitStmt(s)
	}
}

func (c *Checker) visitBlock(b *ast.BlockStmt) {
	c.pushScope()
	c.visitStmts(b.Statements)
	c.popScope()
}

func (c *Checker) visitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.DecBinding:
		shape := c.inferExpr(s.Init)
		if s.Secret {
			shape = wrapSecret(shape)
		}
		if s.Destructure != nil {
			c.bindPattern(s.Destructure, shape)
		} else {
			c.scope.define(s.Name, shape)
			if s.Exposed {
				c.exports[s.Name] = shape
			}
		}

	case *ast.FunctionDecl:
		c.pushScope()
		for _, p := range s.Params {
			c.scope.define(p.Name, types.AnyShape())
			if p.Default != nil {
				c.inferExpr(p.Default)
			}
		}
		c.visitStmts(s.Body.Statements)
		c.popScope()

	case *ast.EnumDecl:
		// Shape already hoisted; no statements inside to visit.

	case *ast.ArgDecl:
		shape := types.AnyShape()
		if s.Default != nil {
			shape = c.inferExpr(s.Default)
		}
		if s.Secret {
			shape = wrapSecret(shape)
		}
		c.scope.define(s.Name, shape)
		c.exports[s.Name] = shape

	case *ast.EnvDecl:
		shape := types.AnyShape()
		if s.Default != nil {
			shape = c.inferExpr(s.Default)
		}
		if s.Secret {
			shape = wrapSecret(shape)
		}
		c.scope.define(s.Name, shape)
		c.exports[s.Name] = shape

	case *ast.DepStmt:
		c.visitDepStmt(s)

	case *ast.BlockStmt:
		c.visitBlock(s)

	case *ast.IfStmt:
		c.checkConditionIsBoolLike(c.inferExpr(s.Cond))
		c.visitBlock(s.Then)
		if s.Else != nil {
			c.visitStmt(s.Else)
		}

	case *ast.WhileStmt:
		c.checkConditionIsBoolLike(c.inferExpr(s.Cond))
		c.visitBlock(s.Body)

	case *ast.ForInStmt:
		iterShape := c.inferExpr(s.Iterable)
		elemShape := types.AnyShape()
		if iterShape != nil && iterShape.Kind == types.Array && iterShape.Elem != nil {
			elemShape = iterShape.Elem
		}
		c.pushScope()
		if s.Destructure != nil {
			c.bindPattern(s.Destructure, elemShape)
		} else {
			c.scope.define(s.Var, elemShape)
		}
		c.visitStmts(s.Body.Statements)
		c.popScope()

	case *ast.ReturnStmt:
		if s.Value != nil {
			c.inferExpr(s.Value)
		}

	case *ast.BreakStmt, *ast.ContinueStmt:
		// No shape to check.

	case *ast.TryStmt:
		c.visitBlock(s.Block)
		if s.HasCatch {
			c.pushScope()
			if s.CatchParam != "" {
				c.scope.define(s.CatchParam, types.AnyShape())
			}
			c.visitStmts(s.CatchBody.Statements)
			c.popScope()
		}
		if s.Finally != nil {
			c.visitBlock(s.Finally)
		}

	case *ast.ThrowStmt:
		c.inferExpr(s.Value)

	case *ast.PatternMatchStmt:
		for _, arm := range s.Arms {
			if !arm.IsRegex {
				c.inferExpr(arm.Guard)
			}
			c.visitStmt(arm.Body)
		}

	case *ast.PrintStmt:
		for _, a := range s.Args {
			c.inferExpr(a)
		}

	case *ast.ExpressionStmt:
		c.inferExpr(s.X)

	case *ast.JSBlock:
		// Raw embedded JS is opaque to the structural checker.

	case *ast.ShellBlock:
		// Raw embedded shell is opaque to the structural checker.

	case *ast.TestBlock:
		c.visitBlock(s.Body)

	case *ast.DescribeBlock:
		c.visitStmts(s.Body)

	case *ast.ExpectStmt:
		c.inferExpr(s.Actual)
		if s.Expected != nil {
			c.inferExpr(s.Expected)
		}

	case *ast.AssertStmt:
		c.inferExpr(s.Cond)
		if s.Message != nil {
			c.inferExpr(s.Message)
		}

	case *ast.FlowExpr:
		c.visitFlowExpr(s)
	}
}

// checkConditionIsBoolLike is a hook for future "non-boolean condition"
// diagnostics; the structural model currently treats every shape as
// usable in a boolean context, matching JS truthiness, so it is a no-op.
func (c *Checker) checkConditionIsBoolLike(*types.Shape) {}

func (c *Checker) visitDepStmt(s *ast.DepStmt) {
	path := strings.Join(s.PathParts, ".")
	shape, found := c.reg.Lookup(path)
	if !found {
		shape = types.AnyShape()
	}
	if s.Override != nil {
		c.checkDepOverride(path, shape, found, s.Override)
	}
	c.scope.define(s.Alias, shape)
}

// checkDepOverride validates each non-dotted key of an override literal
// against the target module's exported member shape; dotted-path keys
// address inner-dep overrides and are skipped, per the structural
// checker's contract.
func (c *Checker) checkDepOverride(path string, target *types.Shape, found bool, override ast.Expr) {
	overrideShape := c.inferExpr(override)
	if !found || overrideShape == nil || overrideShape.Kind != types.Object || target.Kind != types.Object {
		return
	}
	for key, valShape := range overrideShape.Props {
		if strings.Contains(key, ".") {
			continue
		}
		wantShape, exists := target.Props[key]
		if exists && !types.Compatible(wantShape, valShape) {
			c.errorf(override.Span(), diag.CodeDepOverrideMismatch,
				"override for '"+key+"' is incompatible with "+path+"'s exported shape")
		}
	}
}

func (c *Checker) bindPattern(pat ast.Pattern, shape *types.Shape) {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		c.scope.define(p.Name, shape)

	case *ast.ObjectPattern:
		for _, prop := range p.Props {
			propShape := types.AnyShape()
			if shape != nil && shape.Kind == types.Object {
				if s, ok := shape.Props[prop.Key]; ok {
					propShape = s
				} else if len(shape.Props) > 0 {
					c.errorf(p.Span(), diag.CodeMissingProperty,
						"destructured property '"+prop.Key+"' is missing")
				}
			}
			c.bindPattern(prop.Bind, propShape)
		}

	case *ast.ArrayPattern:
		elemShape := types.AnyShape()
		if shape != nil && shape.Kind == types.Array && shape.Elem != nil {
			elemShape = shape.Elem
		}
		for _, el := range p.Elements {
			if el == nil {
				continue // explicit hole
			}
			c.bindPattern(el, elemShape)
		}
	}
}

// wrapSecret returns shape unchanged: secrecy is a runtime _Secret
// wrapping the emitter applies, not a distinct structural shape, so the
// checker's only obligation here is to preserve the underlying shape for
// subsequent member/compatibility checks.
func wrapSecret(shape *types.Shape) *types.Shape { return shape }
