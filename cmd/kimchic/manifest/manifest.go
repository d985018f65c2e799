// Package manifest reads a project's kimchi.toml: the entry file globs, the
// output directory, and the default compile Options a batch build should
// use when no per-file flags override them. This is CLI-only configuration
// — the core compiler packages never read a manifest, they only ever see
// the bytes of one file at a time.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no kimchi.toml found\nplease specify source files explicitly"

// Manifest is a loaded kimchi.toml, together with the directory it was
// found in (entry globs in Config.Build.Entries are relative to Root).
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is kimchi.toml's decoded shape.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Compile CompileConfig `toml:"compile"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Entries []string `toml:"entries"`
	Out     string   `toml:"out"`
}

type CompileConfig struct {
	SkipTypeCheck bool `toml:"skip_typecheck"`
	SkipLint      bool `toml:"skip_lint"`
}

// Find walks upward from startDir looking for kimchi.toml, the way Go's own
// go.mod discovery does, stopping at the first filesystem root it reaches
// without finding one.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "kimchi.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the nearest kimchi.toml above startDir. The bool
// return reports whether one was found at all; a false with a nil error
// means the caller should fall back to explicit file arguments rather than
// treat the absence as a failure — batch builds are opt-in, not required.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing or empty [package].name", path)
	}
	if !meta.IsDefined("build") || len(cfg.Build.Entries) == 0 {
		return Config{}, fmt.Errorf("%s: [build].entries must list at least one glob", path)
	}
	if strings.TrimSpace(cfg.Build.Out) == "" {
		cfg.Build.Out = "dist"
	}
	return cfg, nil
}

// ResolveEntries expands Config.Build.Entries (glob patterns relative to
// m.Root) into an absolute, deduplicated file list. Patterns are expanded
// in the order listed; each pattern's own matches come in sorted order.
func (m *Manifest) ResolveEntries() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range m.Config.Build.Entries {
		matches, err := filepath.Glob(filepath.Join(m.Root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("%s: bad glob %q: %w", m.Path, pattern, err)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				out = append(out, match)
			}
		}
	}
	return out, nil
}

// OutDir resolves the manifest's configured output directory to an
// absolute path rooted at m.Root.
func (m *Manifest) OutDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Out))
}

// NoManifestMessage is the diagnostic a caller can surface when Load
// reports ok=false and the user gave no explicit file arguments either.
func NoManifestMessage() string { return noManifestMessage }
