package ast

func (*Literal) exprNode()        {}
func (*TemplateLiteral) exprNode() {}
func (*Identifier) exprNode()      {}
func (*MemberAccess) exprNode()    {}
func (*CallExpr) exprNode()        {}
func (*UnaryExpr) exprNode()       {}
func (*BinaryExpr) exprNode()      {}
func (*AssignmentExpr) exprNode()  {}
func (*ConditionalExpr) exprNode() {}
func (*ArrowFunction) exprNode()   {}
func (*ArrayLiteral) exprNode()    {}
func (*ObjectLiteral) exprNode()   {}
func (*SpreadElement) exprNode()   {}
func (*AwaitExpr) exprNode()       {}
func (*RangeExpr) exprNode()       {}
func (*FlowExpr) exprNode()        {}
func (*PipeExpr) exprNode()        {}
func (*RegexLiteral) exprNode()    {}

// FlowExpr additionally behaves as a statement: `name >> f g` both
// defines and binds `name`, with no separate `dec`.
func (*FlowExpr) stmtNode() {}

// LitKind classifies a Literal's value.
type LitKind uint8

const (
	LitNumber LitKind = iota
	LitString
	LitBool
	LitNull
)

// Literal is a number, string, boolean, or null constant. Raw preserves
// the scanner's exact textual form for numbers (e.g. "0xFF"); for strings
// it holds the already-escape-decoded value. Bool is meaningful only when
// Kind == LitBool.
type Literal struct {
	base
	Kind LitKind
	Raw  string
	Bool bool
}

// TemplateLiteral alternates literal text parts with embedded expression
// children: len(Parts) == len(Expressions)+1. A plain backtick literal
// (no interpolation) is represented with a single Part and no Expressions.
type TemplateLiteral struct {
	base
	Parts       []string
	Expressions []Expr
}

type Identifier struct {
	base
	Name string
}

// MemberAccess is `object.property` (Computed == false, Property holds the
// name) or `object[expr]` (Computed == true, Index holds the expression).
type MemberAccess struct {
	base
	Object   Expr
	Property string
	Index    Expr
	Computed bool
}

type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

// UnaryExpr covers the prefix operators `! - ~ not`.
type UnaryExpr struct {
	base
	Op      string
	Operand Expr
}

// BinaryExpr's Op includes the identity operators "is" and "is not" in
// addition to the usual arithmetic/logical/bitwise/relational set.
type BinaryExpr struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

// AssignmentExpr's Op is "=" or a compound form ("+=", "-=", "*=", "/=").
type AssignmentExpr struct {
	base
	Op     string
	Target Expr
	Value  Expr
}

type ConditionalExpr struct {
	base
	Test Expr
	Then Expr
	Else Expr
}

// ArrowFunction's body is either a single expression (BodyExpr set) or a
// block (BodyBlock set), never both.
type ArrowFunction struct {
	base
	Params    []Param
	BodyExpr  Expr
	BodyBlock *BlockStmt
	Async     bool
}

// ArrayLiteral's Elements may themselves be *SpreadElement values.
type ArrayLiteral struct {
	base
	Elements []Expr
}

// ObjectMember is implemented by Property and *SpreadElement, the two
// forms an ObjectLiteral's members can take.
type ObjectMember interface {
	objectMember()
}

func (Property) objectMember()       {}
func (*SpreadElement) objectMember() {}

// Property is `key: value` or, when Shorthand, bare `key` (value is the
// same-named identifier). ComputedKey is set instead of Key when the
// property name was written as `[expr]:`.
type Property struct {
	Key         string
	ComputedKey Expr
	Computed    bool
	Value       Expr
	Shorthand   bool
}

type ObjectLiteral struct {
	base
	Members []ObjectMember
}

// SpreadElement is `...argument`, valid inside array literals, object
// literals, and call argument lists.
type SpreadElement struct {
	base
	Argument Expr
}

type AwaitExpr struct {
	base
	X Expr
}

// RangeExpr is `start..end`, the half-open sequence [start, end).
type RangeExpr struct {
	base
	Start Expr
	End   Expr
}

// FlowExpr is `name >> f1 f2 … fn`: binds Name to the composition of
// Functions applied left-to-right (f1 innermost).
type FlowExpr struct {
	base
	Name      string
	Functions []string
}

// PipeExpr is `left ~> right`, left-associative: emits right(left).
type PipeExpr struct {
	base
	Left  Expr
	Right Expr
}

type RegexLiteral struct {
	base
	Pattern string
	Flags   string
}
