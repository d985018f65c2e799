package registry_test

import (
	"testing"

	"kimchi/internal/registry"
	"kimchi/internal/types"
)

func TestRegistryRegisterLookup(t *testing.T) {
	r := registry.New()
	shape := types.NewObject(map[string]*types.Shape{"foo": types.StringShape()})
	r.Register("a/b", shape)

	got, ok := r.Lookup("a/b")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Kind != types.Object || got.Props["foo"].Kind != types.String {
		t.Fatalf("wrong shape returned: %+v", got)
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("expected miss for unregistered path")
	}
}

func TestRegistryClear(t *testing.T) {
	r := registry.New()
	r.Register("a/b", types.AnyShape())
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("Len() after Clear() = %d, want 0", r.Len())
	}
}

func TestRegistrySnapshotRoundTrip(t *testing.T) {
	src := registry.New()
	src.Register("mod/a", types.NewObject(map[string]*types.Shape{
		"x": types.NumberShape(),
		"y": types.ArrayOf(types.StringShape()),
	}))
	src.Register("mod/b", types.NewEnum("Color", map[string]int64{"Red": 0, "Blue": 1}))

	data, err := src.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	dst := registry.New()
	if err := dst.Restore(data); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	a, ok := dst.Lookup("mod/a")
	if !ok || a.Props["x"].Kind != types.Number || a.Props["y"].Elem.Kind != types.String {
		t.Fatalf("mod/a shape mismatch after round-trip: %+v", a)
	}
	b, ok := dst.Lookup("mod/b")
	if !ok || b.Kind != types.Enum || b.Name != "Color" || b.Members["Blue"] != 1 {
		t.Fatalf("mod/b shape mismatch after round-trip: %+v", b)
	}
}
