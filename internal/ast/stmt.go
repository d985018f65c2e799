package ast

func (*BlockStmt) stmtNode()         {}
func (*IfStmt) stmtNode()            {}
func (*WhileStmt) stmtNode()         {}
func (*ForInStmt) stmtNode()         {}
func (*ReturnStmt) stmtNode()        {}
func (*BreakStmt) stmtNode()         {}
func (*ContinueStmt) stmtNode()      {}
func (*TryStmt) stmtNode()           {}
func (*ThrowStmt) stmtNode()         {}
func (*PatternMatchStmt) stmtNode()  {}
func (*PrintStmt) stmtNode()         {}
func (*ExpressionStmt) stmtNode()    {}
func (*JSBlock) stmtNode()           {}
func (*ShellBlock) stmtNode()        {}
func (*TestBlock) stmtNode()         {}
func (*DescribeBlock) stmtNode()     {}
func (*ExpectStmt) stmtNode()        {}
func (*AssertStmt) stmtNode()        {}

// JSBlock and ShellBlock also double as expressions when AsExpression is
// set, per the "expression form yields the same IIFE used as a value" rule.
func (*JSBlock) exprNode()    {}
func (*ShellBlock) exprNode() {}

// BlockStmt is a `{ … }` sequence of statements introducing a new scope.
type BlockStmt struct {
	base
	Statements []Stmt
}

// IfStmt's Else is nil, a *BlockStmt, or a nested *IfStmt (an `elif`/`else
// if` chain rewritten flat by the parser into nesting).
type IfStmt struct {
	base
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

type WhileStmt struct {
	base
	Cond Expr
	Body *BlockStmt
}

// ForInStmt iterates Iterable, binding each element to Var or destructuring
// it via Destructure (exactly one of the two is set).
type ForInStmt struct {
	base
	Var         string
	Destructure Pattern
	Iterable    Expr
	Body        *BlockStmt
}

type ReturnStmt struct {
	base
	Value Expr // nil for a bare `return`
}

type BreakStmt struct{ base }

type ContinueStmt struct{ base }

// TryStmt's CatchBody is non-nil only when a catch clause was present;
// CatchParam is the optional bound exception name. Finally is nil when
// no finally clause was written.
type TryStmt struct {
	base
	Block      *BlockStmt
	CatchParam string
	HasCatch   bool
	CatchBody  *BlockStmt
	Finally    *BlockStmt
}

type ThrowStmt struct {
	base
	Value Expr
}

// MatchArm is one guarded case of a PatternMatchStmt. Exactly one of Guard
// or the Regex* fields is meaningful, selected by IsRegex.
type MatchArm struct {
	Guard      Expr
	IsRegex    bool
	RegexPat   string
	RegexFlags string
	Body       Stmt
}

// PatternMatchStmt holds ≥1 ordered guarded arms; InFunction records
// whether the match sits directly in a function body, which governs
// whether the emitter appends a trailing `return;` to each arm.
type PatternMatchStmt struct {
	base
	Arms       []MatchArm
	InFunction bool
}

type PrintStmt struct {
	base
	Args []Expr
}

// ExpressionStmt wraps an expression used for its side effect.
type ExpressionStmt struct {
	base
	X Expr
}

// JSBlock is a `js(inputs…) { raw js }` block; Raw is the reassembled
// source text after the parser's token-to-source conversion pass.
type JSBlock struct {
	base
	Inputs       []string
	Raw          string
	AsExpression bool
}

// ShellBlock is a `shell(inputs…) { … }` block whose Raw body was captured
// verbatim by the scanner's raw-capture mode.
type ShellBlock struct {
	base
	Inputs       []string
	Raw          string
	AsExpression bool
}

// TestBlock is `test "name" { … }`.
type TestBlock struct {
	base
	Name string
	Body *BlockStmt
}

// DescribeBlock is `describe "name" { … }`, typically containing nested TestBlocks.
type DescribeBlock struct {
	base
	Name string
	Body []Stmt
}

// ExpectStmt is `expect(actual).matcher(expected?)`.
type ExpectStmt struct {
	base
	Actual   Expr
	Matcher  string
	Expected Expr // nil when the matcher takes no argument
}

// AssertStmt is `assert(cond, message?)`.
type AssertStmt struct {
	base
	Cond    Expr
	Message Expr // nil when no message was given
}
