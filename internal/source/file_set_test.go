package source

import "testing"

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.km", []byte("dec x = 1\ndec y = 2\n"))

	start, end := fs.Resolve(Span{File: id, Start: 4, End: 5})
	if start.Line != 1 || start.Col != 5 {
		t.Fatalf("start = %+v, want line 1 col 5", start)
	}
	if end.Line != 1 || end.Col != 6 {
		t.Fatalf("end = %+v, want line 1 col 6", end)
	}

	start2, _ := fs.Resolve(Span{File: id, Start: 10, End: 11})
	if start2.Line != 2 || start2.Col != 1 {
		t.Fatalf("start2 = %+v, want line 2 col 1", start2)
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.km", []byte("dec x = 1\ndec y = 2\n"))
	f := fs.Get(id)

	if got := f.Line(1); got != "dec x = 1" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.Line(2); got != "dec y = 2" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.Line(3); got != "" {
		t.Fatalf("line 3 = %q, want empty", got)
	}
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	raw := []byte{0xEF, 0xBB, 0xBF}
	raw = append(raw, []byte("dec x = 1\r\ndec y = 2\r\n")...)

	content, hadBOM := removeBOM(raw)
	if !hadBOM {
		t.Fatalf("expected BOM to be detected")
	}
	content, hadCRLF := normalizeCRLF(content)
	if !hadCRLF {
		t.Fatalf("expected CRLF to be detected")
	}

	fs := NewFileSet()
	id := fs.Add("test.km", content, FileHadBOM|FileNormalizedCRLF)
	f := fs.Get(id)
	if got := f.Line(1); got != "dec x = 1" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.Line(2); got != "dec y = 2" {
		t.Fatalf("line 2 = %q", got)
	}
}
