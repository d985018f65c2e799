package lint

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
)

// walkStmtsInScope is pass two over one statement sequence: it declares,
// descends into nested scopes, tracks uses, and reports unreachable-code
// (any statement after a return/throw/break/continue in the same block).
func (l *Linter) walkStmtsInScope(stmts []ast.Stmt, sc *lintScope) {
	terminalSeen := false
	for _, s := range stmts {
		if terminalSeen {
			l.bag.Add(diag.NewWarning(diag.CodeUnreachableCode, s.Span(), "unreachable statement"))
		}
		l.walkStmt(s, sc)
		if isTerminalStmt(s) {
			terminalSeen = true
		}
	}
}

func isTerminalStmt(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.ReturnStmt, *ast.ThrowStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	default:
		return false
	}
}

// walkBlock opens a fresh child scope for a `{ … }` block.
func (l *Linter) walkBlock(b *ast.BlockStmt, parent *lintScope) {
	l.walkBlockBody(b, newLintScope(parent))
}

// walkBlockBody walks b's statements directly in sc, for callers (function
// bodies, for-loops, catch clauses) that already opened sc to hold
// parameters or a bound loop/catch variable alongside the body.
func (l *Linter) walkBlockBody(b *ast.BlockStmt, sc *lintScope) {
	if len(b.Statements) == 0 {
		l.bag.Add(diag.NewInfo(diag.CodeEmptyBlock, b.Span(), "empty block"))
		return
	}
	l.walkStmtsInScope(b.Statements, sc)
}

func (l *Linter) declarePattern(sc *lintScope, pat ast.Pattern, exported bool) {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		l.declare(sc, p.Name, p.Span(), exported)
	case *ast.ObjectPattern:
		for _, prop := range p.Props {
			l.declarePattern(sc, prop.Bind, exported)
		}
	case *ast.ArrayPattern:
		for _, el := range p.Elements {
			if el != nil {
				l.declarePattern(sc, el, exported)
			}
		}
	}
}

func (l *Linter) checkConstantCondition(cond ast.Expr) {
	lit, ok := cond.(*ast.Literal)
	if !ok || lit.Kind != ast.LitBool {
		return
	}
	word := "false"
	if lit.Bool {
		word = "true"
	}
	l.bag.Add(diag.NewWarning(diag.CodeConstantCondition, lit.Span(), "condition is always "+word))
}

func (l *Linter) walkStmt(stmt ast.Stmt, sc *lintScope) {
	switch s := stmt.(type) {
	case *ast.DecBinding:
		l.walkExpr(s.Init, sc)
		if s.Destructure != nil {
			l.declarePattern(sc, s.Destructure, s.Exposed)
		} else {
			l.declare(sc, s.Name, s.Span(), s.Exposed)
		}

	case *ast.FunctionDecl:
		l.declare(sc, s.Name, s.Span(), s.Exposed)
		inner := newLintScope(sc)
		for _, p := range s.Params {
			l.declare(inner, p.Name, s.Span(), false)
			if p.Default != nil {
				l.walkExpr(p.Default, inner)
			}
		}
		l.walkBlockBody(s.Body, inner)

	case *ast.EnumDecl:
		l.declare(sc, s.Name, s.Span(), false)

	case *ast.ArgDecl:
		l.declare(sc, s.Name, s.Span(), true)
		if s.Default != nil {
			l.walkExpr(s.Default, sc)
		}

	case *ast.EnvDecl:
		l.declare(sc, s.Name, s.Span(), true)
		if s.Default != nil {
			l.walkExpr(s.Default, sc)
		}

	case *ast.DepStmt:
		l.declare(sc, s.Alias, s.Span(), false)
		if s.Override != nil {
			l.walkExpr(s.Override, sc)
		}

	case *ast.BlockStmt:
		l.walkBlock(s, sc)

	case *ast.IfStmt:
		l.checkConstantCondition(s.Cond)
		l.walkExpr(s.Cond, sc)
		l.walkBlock(s.Then, sc)
		if s.Else != nil {
			l.walkStmt(s.Else, sc)
		}

	case *ast.WhileStmt:
		l.checkConstantCondition(s.Cond)
		l.walkExpr(s.Cond, sc)
		l.walkBlock(s.Body, sc)

	case *ast.ForInStmt:
		l.walkExpr(s.Iterable, sc)
		inner := newLintScope(sc)
		if s.Destructure != nil {
			l.declarePattern(inner, s.Destructure, false)
		} else {
			l.declare(inner, s.Var, s.Span(), false)
		}
		l.walkBlockBody(s.Body, inner)

	case *ast.ReturnStmt:
		if s.Value != nil {
			l.walkExpr(s.Value, sc)
		}

	case *ast.BreakStmt, *ast.ContinueStmt:
		// Nothing to track.

	case *ast.TryStmt:
		l.walkBlock(s.Block, sc)
		if s.HasCatch {
			inner := newLintScope(sc)
			if s.CatchParam != "" {
				l.declare(inner, s.CatchParam, s.Span(), false)
			}
			l.walkBlockBody(s.CatchBody, inner)
		}
		if s.Finally != nil {
			l.walkBlock(s.Finally, sc)
		}

	case *ast.ThrowStmt:
		l.walkExpr(s.Value, sc)

	case *ast.PatternMatchStmt:
		for _, arm := range s.Arms {
			if !arm.IsRegex {
				l.checkConstantCondition(arm.Guard)
				l.walkExpr(arm.Guard, sc)
			}
			l.walkStmt(arm.Body, sc)
		}

	case *ast.PrintStmt:
		for _, a := range s.Args {
			l.walkExpr(a, sc)
		}

	case *ast.ExpressionStmt:
		l.walkExpr(s.X, sc)

	case *ast.JSBlock, *ast.ShellBlock:
		// Raw embedded text carries no bindings to track.

	case *ast.TestBlock:
		l.walkBlock(s.Body, sc)

	case *ast.DescribeBlock:
		l.walkStmtsInScope(s.Body, newLintScope(sc))

	case *ast.ExpectStmt:
		l.walkExpr(s.Actual, sc)
		if s.Expected != nil {
			l.walkExpr(s.Expected, sc)
		}

	case *ast.AssertStmt:
		l.walkExpr(s.Cond, sc)
		if s.Message != nil {
			l.walkExpr(s.Message, sc)
		}

	case *ast.FlowExpr:
		l.declare(sc, s.Name, s.Span(), false)
		for _, fname := range s.Functions {
			sc.markUsed(fname)
		}
	}
}
