package diag

import (
	"testing"

	"kimchi/internal/source"
)

func TestBagAddRespectsCapacity(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 0, Start: 0, End: 1}
	if !b.Add(NewError(CodeUnexpectedToken, sp, "a")) {
		t.Fatal("first add should succeed")
	}
	if !b.Add(NewError(CodeUnexpectedToken, sp, "b")) {
		t.Fatal("second add should succeed")
	}
	if b.Add(NewError(CodeUnexpectedToken, sp, "c")) {
		t.Fatal("third add should be rejected at capacity 2")
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{}
	b.Add(NewWarning(CodeUnusedBinding, sp, "unused"))
	if b.HasErrors() {
		t.Fatal("HasErrors should be false with only a warning")
	}
	if !b.HasWarnings() {
		t.Fatal("HasWarnings should be true")
	}
	b.Add(NewError(CodeDuplicateKey, sp, "dup"))
	if !b.HasErrors() {
		t.Fatal("HasErrors should be true after adding an error")
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{Start: 1, End: 2}
	b.Add(NewError(CodeDuplicateKey, sp, "dup"))
	b.Add(NewError(CodeDuplicateKey, sp, "dup"))
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("Len() = %d after Dedup, want 1", b.Len())
	}
}

func TestDiagnosticFormat(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.km", []byte("dec x = 1\n"))
	d := NewError(CodeImmutableAssignment, source.Span{File: id, Start: 4, End: 5}, "cannot reassign 'x'")
	got := d.Format(fs)
	want := "ParseError at 1:5: cannot reassign 'x'"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}
