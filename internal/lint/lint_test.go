package lint_test

import (
	"testing"

	"kimchi/internal/diag"
	"kimchi/internal/lint"
	"kimchi/internal/parser"
	"kimchi/internal/source"
)

func lintSource(t *testing.T, src string) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.km", []byte(src))
	prog, err := parser.Parse(fs, id)
	if err != nil {
		t.Fatalf("parse error: %s", err.Message)
	}
	return lint.New(lint.Options{}).Lint(prog)
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestUnusedVariableWarns(t *testing.T) {
	bag := lintSource(t, "dec x = 1\nprint(\"hi\")\n")
	if !hasCode(bag, diag.CodeUnusedBinding) {
		t.Fatalf("expected unused-binding warning, got %+v", bag.Items())
	}
}

func TestUnderscorePrefixSuppressesUnused(t *testing.T) {
	bag := lintSource(t, "dec _ignored = 1\nprint(\"hi\")\n")
	if hasCode(bag, diag.CodeUnusedBinding) {
		t.Fatalf("did not expect unused-binding warning, got %+v", bag.Items())
	}
}

func TestExposedBindingSuppressesUnused(t *testing.T) {
	bag := lintSource(t, "expose dec y = 1\n")
	if hasCode(bag, diag.CodeUnusedBinding) {
		t.Fatalf("did not expect unused-binding warning, got %+v", bag.Items())
	}
}

func TestShadowedVariableWarns(t *testing.T) {
	bag := lintSource(t, `
dec x = 1
if true {
  dec x = 2
  print(x)
}
print(x)
`)
	if !hasCode(bag, diag.CodeShadowedBinding) {
		t.Fatalf("expected shadow-variable warning, got %+v", bag.Items())
	}
}

func TestUnreachableCodeAfterReturnWarns(t *testing.T) {
	bag := lintSource(t, `
fn f() {
  return 1
  print("dead")
}
`)
	if !hasCode(bag, diag.CodeUnreachableCode) {
		t.Fatalf("expected unreachable-code warning, got %+v", bag.Items())
	}
}

func TestEmptyBlockIsInfo(t *testing.T) {
	bag := lintSource(t, "if true {}\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeEmptyBlock && d.Severity == diag.SevInfo {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected empty-block info, got %+v", bag.Items())
	}
}

func TestConstantConditionWarns(t *testing.T) {
	bag := lintSource(t, "if true {\n  print(\"always\")\n}\n")
	if !hasCode(bag, diag.CodeConstantCondition) {
		t.Fatalf("expected constant-condition warning, got %+v", bag.Items())
	}
}

func TestDuplicateKeyIsError(t *testing.T) {
	bag := lintSource(t, `dec o = {a: 1, a: 2}` + "\n")
	if !hasCode(bag, diag.CodeDuplicateKey) {
		t.Fatalf("expected duplicate-key error, got %+v", bag.Items())
	}
	if !bag.HasErrors() {
		t.Fatal("duplicate-key must be error severity")
	}
}

func TestForwardFunctionCallIsNotUnused(t *testing.T) {
	bag := lintSource(t, `
fn a() {
  return b()
}
fn b() {
  return 1
}
print(a())
`)
	if hasCode(bag, diag.CodeUnusedBinding) {
		t.Fatalf("did not expect unused-binding warning, got %+v", bag.Items())
	}
}
