package lint

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
)

// walkExpr recurses through expr marking every identifier it finds as
// used in sc's chain, descending into nested function scopes for arrow
// bodies and flagging duplicate object-literal keys along the way.
func (l *Linter) walkExpr(expr ast.Expr, sc *lintScope) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Literal:
		// No sub-expressions, nothing to use.

	case *ast.TemplateLiteral:
		for _, sub := range e.Expressions {
			l.walkExpr(sub, sc)
		}

	case *ast.Identifier:
		sc.markUsed(e.Name)

	case *ast.MemberAccess:
		l.walkExpr(e.Object, sc)
		if e.Computed {
			l.walkExpr(e.Index, sc)
		}

	case *ast.CallExpr:
		l.walkExpr(e.Callee, sc)
		for _, a := range e.Args {
			l.walkExpr(a, sc)
		}

	case *ast.UnaryExpr:
		l.walkExpr(e.Operand, sc)

	case *ast.BinaryExpr:
		l.walkExpr(e.Left, sc)
		l.walkExpr(e.Right, sc)

	case *ast.AssignmentExpr:
		l.walkExpr(e.Target, sc)
		l.walkExpr(e.Value, sc)

	case *ast.ConditionalExpr:
		l.checkConstantCondition(e.Test)
		l.walkExpr(e.Test, sc)
		l.walkExpr(e.Then, sc)
		l.walkExpr(e.Else, sc)

	case *ast.ArrowFunction:
		inner := newLintScope(sc)
		for _, p := range e.Params {
			l.declare(inner, p.Name, e.Span(), false)
			if p.Default != nil {
				l.walkExpr(p.Default, inner)
			}
		}
		switch {
		case e.BodyExpr != nil:
			l.walkExpr(e.BodyExpr, inner)
		case e.BodyBlock != nil:
			l.walkBlockBody(e.BodyBlock, inner)
		}

	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			l.walkExpr(el, sc)
		}

	case *ast.ObjectLiteral:
		l.checkDuplicateKeys(e)
		for _, m := range e.Members {
			switch mem := m.(type) {
			case ast.Property:
				if mem.Computed {
					l.walkExpr(mem.ComputedKey, sc)
				}
				l.walkExpr(mem.Value, sc)
			case *ast.SpreadElement:
				l.walkExpr(mem.Argument, sc)
			}
		}

	case *ast.SpreadElement:
		l.walkExpr(e.Argument, sc)

	case *ast.AwaitExpr:
		l.walkExpr(e.X, sc)

	case *ast.RangeExpr:
		l.walkExpr(e.Start, sc)
		l.walkExpr(e.End, sc)

	case *ast.FlowExpr:
		l.declare(sc, e.Name, e.Span(), false)
		for _, fname := range e.Functions {
			sc.markUsed(fname)
		}

	case *ast.PipeExpr:
		l.walkExpr(e.Left, sc)
		l.walkExpr(e.Right, sc)

	case *ast.RegexLiteral, *ast.JSBlock, *ast.ShellBlock:
		// Regex literals carry no sub-expressions; js/shell blocks hold
		// raw text the linter does not parse.
	}
}

// checkDuplicateKeys flags a repeated non-computed property name in a
// single object literal as an error, per the one error-severity rule.
func (l *Linter) checkDuplicateKeys(obj *ast.ObjectLiteral) {
	seen := make(map[string]bool)
	for _, m := range obj.Members {
		prop, ok := m.(ast.Property)
		if !ok || prop.Computed {
			continue
		}
		if seen[prop.Key] {
			l.bag.Add(diag.NewError(diag.CodeDuplicateKey, obj.Span(),
				"duplicate key '"+prop.Key+"' in object literal"))
			continue
		}
		seen[prop.Key] = true
	}
}
