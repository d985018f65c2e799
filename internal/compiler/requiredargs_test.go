package compiler_test

import (
	"testing"

	"kimchi/internal/compiler"
)

func TestRequiredArgsRegisterLookup(t *testing.T) {
	r := compiler.NewRequiredArgs()
	r.Register("pkg.greeting", []string{"name"})

	got, ok := r.Lookup("pkg.greeting")
	if !ok || len(got) != 1 || got[0] != "name" {
		t.Fatalf("got %v, %v", got, ok)
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("expected miss for unregistered path")
	}
}

func TestRequiredArgsClear(t *testing.T) {
	r := compiler.NewRequiredArgs()
	r.Register("pkg.greeting", []string{"name"})
	r.Clear()
	if _, ok := r.Lookup("pkg.greeting"); ok {
		t.Fatal("expected empty map after Clear")
	}
}
