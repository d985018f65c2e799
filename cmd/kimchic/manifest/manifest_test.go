package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"kimchi/cmd/kimchic/manifest"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "kimchi.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write kimchi.toml: %v", err)
	}
}

func TestLoadFindsNearestManifestAndDefaultsOutDir(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"

[build]
entries = ["src/*.km"]
`)
	sub := filepath.Join(dir, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := manifest.Load(sub)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v, %v", m, ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("got package name %q", m.Config.Package.Name)
	}
	if m.Config.Build.Out != "dist" {
		t.Fatalf("expected default out dir \"dist\", got %q", m.Config.Build.Out)
	}
}

func TestLoadRejectsMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[build]
entries = ["src/*.km"]
`)

	if _, _, err := manifest.Load(dir); err == nil {
		t.Fatal("expected an error for a manifest with no [package].name")
	}
}

func TestLoadRejectsEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"

[build]
entries = []
`)

	if _, _, err := manifest.Load(dir); err == nil {
		t.Fatal("expected an error for a manifest with no build entries")
	}
}

func TestLoadReportsNotFoundWithoutError(t *testing.T) {
	dir := t.TempDir()

	m, ok, err := manifest.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || m != nil {
		t.Fatalf("expected ok=false, nil manifest for a directory with no kimchi.toml, got %v, %v", m, ok)
	}
}

func TestResolveEntriesExpandsGlobsRelativeToRoot(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.km", "b.km"} {
		if err := os.WriteFile(filepath.Join(src, name), []byte("dec x = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeManifest(t, dir, `
[package]
name = "demo"

[build]
entries = ["src/*.km"]
out = "build"
`)

	m, ok, err := manifest.Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v, %v", m, ok, err)
	}
	entries, err := m.ResolveEntries()
	if err != nil {
		t.Fatalf("ResolveEntries() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}
	if got := m.OutDir(); got != filepath.Join(dir, "build") {
		t.Fatalf("OutDir() = %q, want %q", got, filepath.Join(dir, "build"))
	}
}
