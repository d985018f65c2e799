package report_test

import (
	"strings"
	"testing"

	"kimchi/cmd/kimchic/report"
	"kimchi/internal/compiler"
)

func TestPrettyRendersCodeAndCaret(t *testing.T) {
	res := compiler.Compile([]byte("print(nowhere)\n"), compiler.Options{})
	if !res.Bag.HasErrors() {
		t.Fatal("expected an undefined-identifier error")
	}

	var out strings.Builder
	report.Pretty(&out, res.Bag, res.FileSet, report.Options{Color: false, Context: 1})
	if !strings.Contains(out.String(), "TypeError at") {
		t.Fatalf("expected a TypeError header, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "^") {
		t.Fatalf("expected a caret underline, got:\n%s", out.String())
	}
}

func TestPrettyColorWrapsWithANSI(t *testing.T) {
	res := compiler.Compile([]byte("print(nowhere)\n"), compiler.Options{})
	var out strings.Builder
	report.Pretty(&out, res.Bag, res.FileSet, report.Options{Color: true, Context: 0})
	if !strings.Contains(out.String(), "\x1b[") {
		t.Fatalf("expected ANSI escape codes when Color is set, got:\n%s", out.String())
	}
}
