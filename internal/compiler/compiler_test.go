package compiler_test

import (
	"strings"
	"testing"

	"kimchi/internal/compiler"
	"kimchi/internal/diag"
	"kimchi/internal/registry"
)

func TestCompileScanErrorShortCircuits(t *testing.T) {
	res := compiler.Compile([]byte("dec x = \"unterminated\n"), compiler.Options{})
	if res.Text != "" {
		t.Fatalf("expected no output on scan error, got:\n%s", res.Text)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected a scan error")
	}
}

func TestCompileParseErrorShortCircuits(t *testing.T) {
	res := compiler.Compile([]byte("fn ( {\n"), compiler.Options{})
	if res.Text != "" {
		t.Fatalf("expected no output on parse error, got:\n%s", res.Text)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected a parse error")
	}
}

func TestCompileMissingRequiredDepArgFails(t *testing.T) {
	reg := registry.New()
	req := compiler.NewRequiredArgs()

	depRes := compiler.Compile([]byte("arg! name\nexpose dec greet = name\n"), compiler.Options{
		ModulePath:   "pkg.greeting",
		Registry:     reg,
		RequiredArgs: req,
	})
	if depRes.Bag.HasErrors() {
		t.Fatalf("unexpected errors compiling the dependency itself: %+v", depRes.Bag.Items())
	}

	res := compiler.Compile([]byte("as g dep pkg.greeting\n"), compiler.Options{
		Registry:     reg,
		RequiredArgs: req,
	})
	if !res.Bag.HasErrors() {
		t.Fatal("expected a missing-required-arg compile error")
	}
	if res.Bag.Items()[0].Code != diag.CodeMissingRequiredArg {
		t.Fatalf("got code %v, want %v", res.Bag.Items()[0].Code, diag.CodeMissingRequiredArg)
	}
}

func TestCompileDepOverrideSatisfyingRequiredArgSucceeds(t *testing.T) {
	reg := registry.New()
	req := compiler.NewRequiredArgs()

	compiler.Compile([]byte("arg! name\nexpose dec greet = name\n"), compiler.Options{
		ModulePath:   "pkg.greeting",
		Registry:     reg,
		RequiredArgs: req,
	})

	res := compiler.Compile([]byte(`as g dep pkg.greeting({name: "kimchi"})`+"\n"), compiler.Options{
		Registry:     reg,
		RequiredArgs: req,
	})
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Bag.Items())
	}
	if !strings.Contains(res.Text, `import _dep_g from "./pkg/greeting.km";`) {
		t.Fatalf("expected dep import, got:\n%s", res.Text)
	}
}

func TestCompileTypeErrorHaltsEmission(t *testing.T) {
	res := compiler.Compile([]byte("print(nowhere)\n"), compiler.Options{})
	if res.Text != "" {
		t.Fatalf("expected no output on type error, got:\n%s", res.Text)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected a type error")
	}
}

func TestCompileDuplicateKeyLintErrorHaltsEmission(t *testing.T) {
	res := compiler.Compile([]byte("dec obj = { a: 1, a: 2 }\n"), compiler.Options{})
	if res.Text != "" {
		t.Fatalf("expected no output on a duplicate-key lint error, got:\n%s", res.Text)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected a duplicate-key lint error")
	}
}

func TestCompileSkipTypeCheckAndLintStillEmits(t *testing.T) {
	res := compiler.Compile([]byte("print(nowhere)\n"), compiler.Options{
		SkipTypeCheck: true,
		SkipLint:      true,
	})
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Bag.Items())
	}
	if !strings.Contains(res.Text, "console.log(nowhere);") {
		t.Fatalf("expected emitted console.log call, got:\n%s", res.Text)
	}
}

func TestCompileSuccessEmitsRuntimePreambleAndModule(t *testing.T) {
	res := compiler.Compile([]byte("expose dec greeting = \"hi\"\n"), compiler.Options{})
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Bag.Items())
	}
	if !strings.Contains(res.Text, "function _deepFreeze(value)") {
		t.Fatal("expected runtime preamble in output")
	}
	if !strings.Contains(res.Text, "export default function (_opts = {}) {") {
		t.Fatal("expected module wrapper in output")
	}
	if !strings.Contains(res.Text, "return { greeting };") {
		t.Fatal("expected greeting in the return object")
	}
}

func TestCompileResultExposesMatchingFileSet(t *testing.T) {
	res := compiler.Compile([]byte("print(nowhere)\n"), compiler.Options{})
	if !res.Bag.HasErrors() {
		t.Fatal("expected a type error")
	}
	primary := res.Bag.Items()[0].Primary
	if res.FileSet.Get(primary.File) == nil {
		t.Fatal("expected the returned FileSet to resolve the diagnostic's file")
	}
}
