package emitter

import "kimchi/internal/ast"

// usesShellBlocks reports whether any shell(...) { … } block appears
// anywhere in stmts, determining whether the shell runtime helper needs
// to be appended to the preamble.
func usesShellBlocks(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		if stmtUsesShell(s) {
			return true
		}
	}
	return false
}

func stmtUsesShell(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ShellBlock:
		return true
	case *ast.DecBinding:
		return exprUsesShell(n.Init)
	case *ast.FunctionDecl:
		return usesShellBlocks(n.Body.Statements)
	case *ast.BlockStmt:
		return usesShellBlocks(n.Statements)
	case *ast.IfStmt:
		if exprUsesShell(n.Cond) || usesShellBlocks(n.Then.Statements) {
			return true
		}
		return n.Else != nil && stmtUsesShell(n.Else)
	case *ast.WhileStmt:
		return exprUsesShell(n.Cond) || usesShellBlocks(n.Body.Statements)
	case *ast.ForInStmt:
		return exprUsesShell(n.Iterable) || usesShellBlocks(n.Body.Statements)
	case *ast.TryStmt:
		if usesShellBlocks(n.Block.Statements) {
			return true
		}
		if n.HasCatch && usesShellBlocks(n.CatchBody.Statements) {
			return true
		}
		return n.Finally != nil && usesShellBlocks(n.Finally.Statements)
	case *ast.ThrowStmt:
		return exprUsesShell(n.Value)
	case *ast.PatternMatchStmt:
		for _, arm := range n.Arms {
			if stmtUsesShell(arm.Body) {
				return true
			}
		}
		return false
	case *ast.PrintStmt:
		for _, a := range n.Args {
			if exprUsesShell(a) {
				return true
			}
		}
		return false
	case *ast.ExpressionStmt:
		return exprUsesShell(n.X)
	case *ast.TestBlock:
		return usesShellBlocks(n.Body.Statements)
	case *ast.DescribeBlock:
		return usesShellBlocks(n.Body)
	case *ast.ExpectStmt:
		return exprUsesShell(n.Actual) || exprUsesShell(n.Expected)
	case *ast.AssertStmt:
		return exprUsesShell(n.Cond)
	case *ast.ReturnStmt:
		return exprUsesShell(n.Value)
	default:
		return false
	}
}

func exprUsesShell(e ast.Expr) bool {
	switch n := e.(type) {
	case nil:
		return false
	case *ast.ShellBlock:
		return true
	case *ast.TemplateLiteral:
		for _, sub := range n.Expressions {
			if exprUsesShell(sub) {
				return true
			}
		}
		return false
	case *ast.MemberAccess:
		return exprUsesShell(n.Object) || exprUsesShell(n.Index)
	case *ast.CallExpr:
		if exprUsesShell(n.Callee) {
			return true
		}
		for _, a := range n.Args {
			if exprUsesShell(a) {
				return true
			}
		}
		return false
	case *ast.UnaryExpr:
		return exprUsesShell(n.Operand)
	case *ast.BinaryExpr:
		return exprUsesShell(n.Left) || exprUsesShell(n.Right)
	case *ast.AssignmentExpr:
		return exprUsesShell(n.Target) || exprUsesShell(n.Value)
	case *ast.ConditionalExpr:
		return exprUsesShell(n.Test) || exprUsesShell(n.Then) || exprUsesShell(n.Else)
	case *ast.ArrowFunction:
		if n.BodyExpr != nil {
			return exprUsesShell(n.BodyExpr)
		}
		return usesShellBlocks(n.BodyBlock.Statements)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			if exprUsesShell(el) {
				return true
			}
		}
		return false
	case *ast.ObjectLiteral:
		for _, m := range n.Members {
			switch mem := m.(type) {
			case ast.Property:
				if exprUsesShell(mem.Value) {
					return true
				}
			case *ast.SpreadElement:
				if exprUsesShell(mem.Argument) {
					return true
				}
			}
		}
		return false
	case *ast.SpreadElement:
		return exprUsesShell(n.Argument)
	case *ast.AwaitExpr:
		return exprUsesShell(n.X)
	case *ast.RangeExpr:
		return exprUsesShell(n.Start) || exprUsesShell(n.End)
	case *ast.PipeExpr:
		return exprUsesShell(n.Left) || exprUsesShell(n.Right)
	default:
		return false
	}
}
