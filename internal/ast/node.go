// Package ast defines the KimchiLang abstract syntax tree as a set of
// sealed interfaces (Decl, Stmt, Expr, Pattern) over concrete struct
// types, switched on exhaustively by the checker, linter, and emitter.
package ast

import "kimchi/internal/source"

// Node is implemented by every AST node; Span locates it in its source file.
type Node interface {
	Span() source.Span
}

// Decl is a top-level or block-level declaration form.
type Decl interface {
	Node
	declNode()
}

// Stmt is any statement, including declarations (every Decl is also a Stmt).
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any expression.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a destructuring target inside a DecBinding.
type Pattern interface {
	Node
	patternNode()
}

// base embeds into every concrete node to supply Span() and a source
// position without repeating the field and method on each type.
type base struct {
	Sp source.Span
}

func (b base) Span() source.Span { return b.Sp }

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	base
	Statements []Stmt
}

func NewProgram(sp source.Span, stmts []Stmt) *Program {
	return &Program{base: base{sp}, Statements: stmts}
}
