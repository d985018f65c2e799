package ast

import "kimchi/internal/source"

func (*DecBinding) declNode()   {}
func (*FunctionDecl) declNode() {}
func (*EnumDecl) declNode()     {}
func (*ArgDecl) declNode()      {}
func (*EnvDecl) declNode()      {}
func (*DepStmt) declNode()      {}

func (*DecBinding) stmtNode()   {}
func (*FunctionDecl) stmtNode() {}
func (*EnumDecl) stmtNode()     {}
func (*ArgDecl) stmtNode()      {}
func (*EnvDecl) stmtNode()      {}
func (*DepStmt) stmtNode()      {}

// DecBinding is a `dec`/`expose dec`/`secret dec` binding. Exactly one of
// Name or Destructure is set (never both); Init is always present.
type DecBinding struct {
	base
	Name        string
	Destructure Pattern
	Init        Expr
	Exposed     bool
	Secret      bool
}

// Param is a single function parameter; Default is non-nil for an
// optional parameter, Rest marks a trailing `...name` spread parameter.
type Param struct {
	Name    string
	Default Expr
	Rest    bool
}

// FunctionDecl is an `fn`/`memo fn`/`expose fn` declaration.
type FunctionDecl struct {
	base
	Name     string
	Params   []Param
	Body     *BlockStmt
	Async    bool
	Memoized bool
	Exposed  bool
}

// EnumMember is one member of an EnumDecl; ExplicitValue resets the
// emitter's running auto-increment counter when non-nil.
type EnumMember struct {
	Name          string
	ExplicitValue *int64
}

// EnumDecl is an `enum Name { A, B = 10, C }` declaration.
type EnumDecl struct {
	base
	Name    string
	Members []EnumMember
}

// ArgDecl is a top-level `arg name` / `arg !name` / `arg name = default` declaration.
type ArgDecl struct {
	base
	Name     string
	Required bool
	Default  Expr
	Secret   bool
}

// EnvDecl is a top-level `env name` declaration, symmetric to ArgDecl.
type EnvDecl struct {
	base
	Name     string
	Required bool
	Default  Expr
	Secret   bool
}

// DepStmt is `as Alias dep a.b.c(overrides?)`.
type DepStmt struct {
	base
	Alias      string
	PathParts  []string
	Override   Expr // nil, or an ObjectLiteral
}

func NewDepStmt(sp source.Span, alias string, path []string, override Expr) *DepStmt {
	return &DepStmt{base: base{sp}, Alias: alias, PathParts: path, Override: override}
}
