package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kimchi/cmd/kimchic/batch"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestModulePathDerivesDottedNameFromRelativePath(t *testing.T) {
	root := "/proj/src"
	got := batch.ModulePath(root, filepath.Join(root, "pkg", "greeting.km"))
	if got != "pkg.greeting" {
		t.Fatalf("ModulePath() = %q, want %q", got, "pkg.greeting")
	}
}

func TestCompileOrdersDependencyBeforeDependent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pkg", "greeting.km"), "arg! name\nexpose dec greet = name\n")
	writeFile(t, filepath.Join(dir, "main.km"), `as g dep pkg.greeting({name: "kimchi"})`+"\n")

	entries := []string{
		filepath.Join(dir, "pkg", "greeting.km"),
		filepath.Join(dir, "main.km"),
	}

	results, err := batch.Compile(context.Background(), entries, batch.Options{Root: dir})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Result.Bag.HasErrors() {
			t.Fatalf("%s: unexpected errors: %+v", r.Path, r.Result.Bag.Items())
		}
	}
}

func TestWriteOutputsSkipsFailedResults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.km"), "expose dec x = 1\n")
	writeFile(t, filepath.Join(dir, "bad.km"), "print(nowhere)\n")

	entries := []string{
		filepath.Join(dir, "ok.km"),
		filepath.Join(dir, "bad.km"),
	}
	results, err := batch.Compile(context.Background(), entries, batch.Options{Root: dir})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	out := filepath.Join(dir, "out")
	if err := batch.WriteOutputs(results, out); err != nil {
		t.Fatalf("WriteOutputs() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "ok.js")); err != nil {
		t.Fatalf("expected ok.js to be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "bad.js")); err == nil {
		t.Fatal("expected bad.js to be skipped")
	}
}
