package emitter_test

import (
	"strings"
	"testing"

	"kimchi/internal/emitter"
	"kimchi/internal/parser"
	"kimchi/internal/source"
)

func emit(t *testing.T, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.km", []byte(src))
	prog, err := parser.Parse(fs, id)
	if err != nil {
		t.Fatalf("parse error: %s", err.Message)
	}
	return emitter.Emit(prog, emitter.Options{})
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, out)
	}
}

func TestNumericLiteralPreservesRadix(t *testing.T) {
	out := emit(t, "dec x = 0xFF\n")
	assertContains(t, out, "const x = _deepFreeze(0xFF);")
}

func TestFunctionDeclEmitsParenthesizedBinary(t *testing.T) {
	out := emit(t, "fn add(a, b) {\n  return a + b\n}\n")
	assertContains(t, out, "function add(a, b) {")
	assertContains(t, out, "return (a + b);")
}

func TestRangeLowersToArrayFrom(t *testing.T) {
	out := emit(t, "dec sum = 0..5\n")
	assertContains(t, out, "Array.from({ length: 5 - 0 }, (_, i) => 0 + i)")
}

func TestPipeChainIsLeftAssociative(t *testing.T) {
	out := emit(t, "fn double(x) { return x * 2 }\nfn addOne(x) { return x + 1 }\ndec r = 5 ~> double ~> addOne\n")
	assertContains(t, out, "addOne(double(5))")
}

func TestFlowComposesRightToLeftOverApplication(t *testing.T) {
	out := emit(t, "fn addOne(x) { return x + 1 }\nfn double(x) { return x * 2 }\ntransform >> addOne double\n")
	assertContains(t, out, "const transform = (..._args) => double(addOne(..._args));")
}

func TestEnumAutoIncrementsAndResetsOnExplicitValue(t *testing.T) {
	out := emit(t, "enum C {\n  A,\n  B = 10,\n  C\n}\n")
	assertContains(t, out, "A: 0,")
	assertContains(t, out, "B: 10,")
	assertContains(t, out, "C: 11,")
}

func TestEqualityLowersToStrictJS(t *testing.T) {
	out := emit(t, "dec ok = 1 == 1\ndec no = 1 != 2\n")
	assertContains(t, out, "(1 === 1)")
	assertContains(t, out, "(1 !== 2)")
}

func TestIdentityOperatorsCompareTaggedId(t *testing.T) {
	out := emit(t, "dec same = a is b\ndec diff = a is not b\n")
	assertContains(t, out, "(a?._id === b?._id)")
	assertContains(t, out, "(a?._id !== b?._id)")
}

func TestMemberAccessIsAlwaysOptional(t *testing.T) {
	out := emit(t, "dec v = a.b.c\n")
	assertContains(t, out, "a?.b?.c")
}

func TestSecretDecWrapsBeforeFreeze(t *testing.T) {
	out := emit(t, "secret dec token = \"abc\"\n")
	assertContains(t, out, `const token = _deepFreeze(_secret("abc"));`)
}

func TestExposedArgAndDecAppearInReturnObject(t *testing.T) {
	out := emit(t, "arg name = \"world\"\nexpose dec greeting = \"hi\"\n")
	assertContains(t, out, "return { name, greeting };")
}

func TestMemoizedFunctionWrapsWithCache(t *testing.T) {
	out := emit(t, "memo fn slow(n) {\n  return n\n}\n")
	assertContains(t, out, "const slow = (function () {")
	assertContains(t, out, "const _cache = new Map();")
	assertContains(t, out, "JSON.stringify(Array.from(arguments))")
}

func TestPatternMatchInFunctionReturnsEachArm(t *testing.T) {
	out := emit(t, "fn classify(n) {\n  | n > 0 | => print(\"pos\")\n  /x/ => print(\"default\")\n}\n")
	assertContains(t, out, "if ((n > 0)) {")
	assertContains(t, out, "else if (/x/) {")
	assertContains(t, out, "return;")
}

func TestDepResolutionPrefersOverrideOpt(t *testing.T) {
	out := emit(t, "as g dep pkg.greeting\n")
	assertContains(t, out, `import _dep_g from "./pkg/greeting.km";`)
	assertContains(t, out, `const g = _opts["pkg.greeting"] || _dep_g();`)
}

func TestPreambleDefinesRuntimeHelpers(t *testing.T) {
	out := emit(t, "dec x = 1\n")
	assertContains(t, out, "function _deepFreeze(value)")
	assertContains(t, out, "class _Secret")
	assertContains(t, out, "function _runTests()")
}

func TestShellBlockOnlyAddsHelperWhenUsed(t *testing.T) {
	withShell := emit(t, "dec out = shell() { \"echo hi\" }\n")
	assertContains(t, withShell, "function _shell(command, vars)")

	withoutShell := emit(t, "dec x = 1\n")
	if strings.Contains(withoutShell, "function _shell(") {
		t.Fatal("did not expect _shell helper when no shell block is present")
	}
}
