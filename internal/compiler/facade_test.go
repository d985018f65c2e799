package compiler_test

import (
	"strings"
	"testing"

	"kimchi/internal/compiler"
	"kimchi/internal/emitter"
	"kimchi/internal/registry"
	"kimchi/internal/token"
	"kimchi/internal/types"
)

func TestTokenizeReturnsEOFTerminatedStream(t *testing.T) {
	toks, err := compiler.Tokenize([]byte("dec x = 1\n"))
	if err != nil {
		t.Fatalf("unexpected tokenize error: %s", err.Message)
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatal("expected a non-empty stream ending in EOF")
	}
}

func TestParseGenerateRoundTrip(t *testing.T) {
	prog, err := compiler.ParseProgram([]byte("expose dec greeting = \"hi\"\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err.Message)
	}
	out := compiler.Generate(prog, emitter.Options{})
	if !strings.Contains(out, "return { greeting };") {
		t.Fatalf("expected greeting in return object, got:\n%s", out)
	}
}

func TestRegistryProtocolFacade(t *testing.T) {
	reg := registry.New()
	shape := types.NewObject(map[string]*types.Shape{"x": types.NumberShape()})
	compiler.RegisterModule(reg, "a.b", shape)

	got, ok := compiler.ModuleExportShape(reg, "a.b")
	if !ok || got.Kind != types.Object {
		t.Fatal("expected a registered shape to be found")
	}

	compiler.ClearRegistry(reg)
	if _, ok := compiler.ModuleExportShape(reg, "a.b"); ok {
		t.Fatal("expected registry to be empty after ClearRegistry")
	}
}

func TestStaticFileSideChannelFacade(t *testing.T) {
	f, err := compiler.ParseStaticFile([]byte(`Name "kimchi"`), "test/module")
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err.Message)
	}
	out := compiler.GenerateStaticCode(f, "test/module")
	if !strings.Contains(out, `export const Name = _deepFreeze("kimchi");`) {
		t.Fatalf("expected rendered static binding, got:\n%s", out)
	}
}
