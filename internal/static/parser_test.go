package static

import (
	"testing"

	"kimchi/internal/source"
)

func loadStr(t *testing.T, src string) *File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.static", []byte(src))
	f, err := Load(fs, id, "test/module")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}
	return f
}

func TestParseScalarDeclarations(t *testing.T) {
	f := loadStr(t, `Name "kimchi"
Port 8080
Debug true`)
	if len(f.Declarations) != 3 {
		t.Fatalf("got %d declarations, want 3", len(f.Declarations))
	}
	lit, ok := f.Declarations[0].Value.(Literal)
	if !ok || lit.Kind != LitString || lit.Raw != "kimchi" {
		t.Errorf("Name = %+v", f.Declarations[0].Value)
	}
}

func TestParseSecretDeclaration(t *testing.T) {
	f := loadStr(t, `secret ApiKey "xyz"`)
	lit := f.Declarations[0].Value.(Literal)
	if !lit.Secret {
		t.Error("expected secret flag set")
	}
}

func TestParseArrayAndObject(t *testing.T) {
	f := loadStr(t, `Tags [ "a", "b", "c" ]
Config { host = "localhost", port = 80 }`)
	arr := f.Declarations[0].Value.(Array)
	if len(arr.Values) != 3 {
		t.Fatalf("got %d array values, want 3", len(arr.Values))
	}
	obj := f.Declarations[1].Value.(Object)
	if len(obj.Props) != 2 || obj.Props[0].Key != "host" {
		t.Fatalf("obj = %+v", obj)
	}
}

func TestParseEnumBacktickForm(t *testing.T) {
	f := loadStr(t, "Levels `LOW = 1, MEDIUM = 2, HIGH = 3`")
	e := f.Declarations[0].Value.(Enum)
	if len(e.Members) != 3 || e.Members[1].Name != "MEDIUM" {
		t.Fatalf("enum = %+v", e)
	}
}

func TestParseReference(t *testing.T) {
	f := loadStr(t, "Base other.module.Value")
	ref := f.Declarations[0].Value.(Reference)
	want := []string{"other", "module", "Value"}
	if len(ref.Path) != len(want) {
		t.Fatalf("path = %v, want %v", ref.Path, want)
	}
	for i := range want {
		if ref.Path[i] != want[i] {
			t.Fatalf("path = %v, want %v", ref.Path, want)
		}
	}
}
