package checker_test

import (
	"testing"

	"kimchi/internal/checker"
	"kimchi/internal/diag"
	"kimchi/internal/parser"
	"kimchi/internal/registry"
	"kimchi/internal/source"
	"kimchi/internal/types"
)

func checkSource(t *testing.T, src string, opts checker.Options) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.km", []byte(src))
	prog, err := parser.Parse(fs, id)
	if err != nil {
		t.Fatalf("parse error: %s", err.Message)
	}
	return checker.New(opts).Check(prog)
}

func TestUndefinedIdentifierIsError(t *testing.T) {
	bag := checkSource(t, "print(nowhere)\n", checker.Options{})
	if !bag.HasErrors() {
		t.Fatal("expected an undefined-identifier error")
	}
	if bag.Items()[0].Code != diag.CodeUndefinedIdentifier {
		t.Fatalf("got code %v", bag.Items()[0].Code)
	}
}

func TestBuiltinWhitelistIsNotAnError(t *testing.T) {
	bag := checkSource(t, `console.log("hi")`+"\n", checker.Options{})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestMissingObjectPropertyIsError(t *testing.T) {
	bag := checkSource(t, `
dec point = {x: 1, y: 2}
print(point.z)
`, checker.Options{})
	if !bag.HasErrors() {
		t.Fatal("expected a missing-property error")
	}
	if bag.Items()[0].Code != diag.CodeMissingProperty {
		t.Fatalf("got code %v", bag.Items()[0].Code)
	}
}

func TestCallOfNonFunctionIsError(t *testing.T) {
	bag := checkSource(t, `
dec n = 5
n()
`, checker.Options{})
	if !bag.HasErrors() {
		t.Fatal("expected a not-callable error")
	}
	if bag.Items()[0].Code != diag.CodeNotCallable {
		t.Fatalf("got code %v", bag.Items()[0].Code)
	}
}

func TestExportedBindingPublishesToRegistry(t *testing.T) {
	reg := registry.New()
	bag := checkSource(t, `
expose dec name = "kimchi"
arg count
`, checker.Options{ModulePath: "pkg/greeting", Registry: reg})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	shape, ok := reg.Lookup("pkg/greeting")
	if !ok {
		t.Fatal("expected export shape to be registered")
	}
	if _, ok := shape.Props["name"]; !ok {
		t.Fatal("expected exported 'name' in published shape")
	}
	if _, ok := shape.Props["count"]; !ok {
		t.Fatal("expected 'count' arg in published shape")
	}
}

func TestDepOverrideIncompatibleShapeIsError(t *testing.T) {
	reg := registry.New()
	reg.Register("pkg.greeting", types.NewObject(map[string]*types.Shape{
		"name": types.StringShape(),
	}))

	bag := checkSource(t, `
as g dep pkg.greeting({name: 5})
`, checker.Options{Registry: reg})
	if !bag.HasErrors() {
		t.Fatal("expected a dep-override mismatch error")
	}
	if bag.Items()[0].Code != diag.CodeDepOverrideMismatch {
		t.Fatalf("got code %v", bag.Items()[0].Code)
	}
}
