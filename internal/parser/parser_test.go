package parser

import (
	"testing"

	"kimchi/internal/ast"
	"kimchi/internal/source"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(src))
	prog, diagErr := Parse(fs, id)
	if diagErr != nil {
		t.Fatalf("unexpected parse error: %s", diagErr.Message)
	}
	if prog == nil {
		t.Fatal("expected a non-nil program")
	}
	return prog
}

func firstDecInit(t *testing.T, prog *ast.Program) ast.Expr {
	t.Helper()
	if len(prog.Statements) == 0 {
		t.Fatal("expected at least one statement")
	}
	dec, ok := prog.Statements[0].(*ast.DecBinding)
	if !ok {
		t.Fatalf("expected *ast.DecBinding, got %T", prog.Statements[0])
	}
	return dec.Init
}

func TestParseAdditiveBindsLooserThanMultiplicative(t *testing.T) {
	prog := mustParse(t, "dec x = 1 + 2 * 3\n")
	bin, ok := firstDecInit(t, prog).(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level *ast.BinaryExpr, got %T", firstDecInit(t, prog))
	}
	if bin.Op != "+" {
		t.Fatalf("expected top-level op '+', got %q", bin.Op)
	}
	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected right operand *ast.BinaryExpr, got %T", bin.Right)
	}
	if right.Op != "*" {
		t.Fatalf("expected right op '*', got %q", right.Op)
	}
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	prog := mustParse(t, "dec x = 2 ** 3 ** 2\n")
	bin, ok := firstDecInit(t, prog).(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", firstDecInit(t, prog))
	}
	if bin.Op != "**" {
		t.Fatalf("expected op '**', got %q", bin.Op)
	}
	if _, ok := bin.Left.(*ast.Literal); !ok {
		t.Fatalf("expected a literal left operand for right-associativity, got %T", bin.Left)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected a nested binary right operand for right-associativity, got %T", bin.Right)
	}
}

func TestParseFlowExprRequiresBareIdentifierBeforeShr(t *testing.T) {
	prog := mustParse(t, "dec y = value >> trim upper\n")
	flow, ok := firstDecInit(t, prog).(*ast.FlowExpr)
	if !ok {
		t.Fatalf("expected *ast.FlowExpr, got %T", firstDecInit(t, prog))
	}
	if flow.Name != "value" {
		t.Fatalf("expected flow source 'value', got %q", flow.Name)
	}
	if len(flow.Functions) != 2 || flow.Functions[0] != "trim" || flow.Functions[1] != "upper" {
		t.Fatalf("unexpected flow functions: %v", flow.Functions)
	}
}

func TestParseShrFallsBackToShiftWhenLeftIsNotBareIdentifier(t *testing.T) {
	prog := mustParse(t, "dec z = (1 + 1) >> 2\n")
	bin, ok := firstDecInit(t, prog).(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr for a parenthesized left operand, got %T", firstDecInit(t, prog))
	}
	if bin.Op != ">>" {
		t.Fatalf("expected shift op '>>', got %q", bin.Op)
	}
}

func TestParsePipeExprIsLeftAssociative(t *testing.T) {
	prog := mustParse(t, "dec w = a ~> b ~> c\n")
	outer, ok := firstDecInit(t, prog).(*ast.PipeExpr)
	if !ok {
		t.Fatalf("expected *ast.PipeExpr, got %T", firstDecInit(t, prog))
	}
	if _, ok := outer.Left.(*ast.PipeExpr); !ok {
		t.Fatalf("expected a nested pipe on the left for left-associativity, got %T", outer.Left)
	}
}

func TestParseDepStmtWithDottedPathAndNoOverride(t *testing.T) {
	prog := mustParse(t, "as http dep net.http\n")
	dep, ok := prog.Statements[0].(*ast.DepStmt)
	if !ok {
		t.Fatalf("expected *ast.DepStmt, got %T", prog.Statements[0])
	}
	if dep.Alias != "http" {
		t.Fatalf("expected alias 'http', got %q", dep.Alias)
	}
	wantPath := []string{"net", "http"}
	if len(dep.PathParts) != len(wantPath) {
		t.Fatalf("expected path %v, got %v", wantPath, dep.PathParts)
	}
	for i, seg := range wantPath {
		if dep.PathParts[i] != seg {
			t.Fatalf("expected path %v, got %v", wantPath, dep.PathParts)
		}
	}
	if dep.Override != nil {
		t.Fatalf("expected no override, got %#v", dep.Override)
	}
}

func TestParseDepStmtWithOverride(t *testing.T) {
	prog := mustParse(t, "as http dep net.http({timeout: 30})\n")
	dep, ok := prog.Statements[0].(*ast.DepStmt)
	if !ok {
		t.Fatalf("expected *ast.DepStmt, got %T", prog.Statements[0])
	}
	obj, ok := dep.Override.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("expected override *ast.ObjectLiteral, got %T", dep.Override)
	}
	if len(obj.Members) != 1 {
		t.Fatalf("expected one override member, got %d", len(obj.Members))
	}
}

func TestParseDestructuringDecBindingObjectPattern(t *testing.T) {
	prog := mustParse(t, "dec { a, b: x } = obj\n")
	dec, ok := prog.Statements[0].(*ast.DecBinding)
	if !ok {
		t.Fatalf("expected *ast.DecBinding, got %T", prog.Statements[0])
	}
	pat, ok := dec.Destructure.(*ast.ObjectPattern)
	if !ok {
		t.Fatalf("expected *ast.ObjectPattern, got %T", dec.Destructure)
	}
	if len(pat.Props) != 2 {
		t.Fatalf("expected 2 destructured props, got %d", len(pat.Props))
	}
	if pat.Props[0].Key != "a" {
		t.Fatalf("expected first prop key 'a', got %q", pat.Props[0].Key)
	}
	if pat.Props[1].Key != "b" {
		t.Fatalf("expected second prop key 'b', got %q", pat.Props[1].Key)
	}
}

func TestParseIfElifElseNestsAsChainedElseIf(t *testing.T) {
	prog := mustParse(t, "if a {\n  dec x = 1\n} elif b {\n  dec y = 2\n} else {\n  dec z = 3\n}\n")
	top, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", prog.Statements[0])
	}
	elif, ok := top.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected the 'elif' arm to lower to a nested *ast.IfStmt, got %T", top.Else)
	}
	if elif.Else == nil {
		t.Fatal("expected the trailing 'else' block to be attached to the nested if")
	}
}

func TestParsePatternMatchGuardThenRegexArm(t *testing.T) {
	src := "|x is 1| => print(\"one\")\n/^a/ => print(\"starts with a\")\n"
	prog := mustParse(t, src)
	m, ok := prog.Statements[0].(*ast.PatternMatchStmt)
	if !ok {
		t.Fatalf("expected *ast.PatternMatchStmt, got %T", prog.Statements[0])
	}
	if len(m.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(m.Arms))
	}
	if m.Arms[0].IsRegex {
		t.Fatal("expected the first arm to be a guard arm, not regex")
	}
	if !m.Arms[1].IsRegex {
		t.Fatal("expected the second arm to be a regex arm")
	}
	if m.Arms[1].RegexPat != "^a" {
		t.Fatalf("expected regex pattern '^a', got %q", m.Arms[1].RegexPat)
	}
}
