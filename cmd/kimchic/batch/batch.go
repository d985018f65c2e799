package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"kimchi/internal/ast"
	"kimchi/internal/compiler"
	"kimchi/internal/parser"
	"kimchi/internal/registry"
	"kimchi/internal/source"
)

// FileResult is one entry file's compile outcome, keyed by both its
// on-disk path and the dotted module path it was compiled (and, on
// success, registered) under.
type FileResult struct {
	Path       string
	ModulePath string
	Result     compiler.Result
}

// Status is a file's position in one Compile run, reported on an
// Options.Events channel for a presentation layer (uiprogress) to render.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one file's status transition during a Compile run.
type Event struct {
	File   string
	Status Status
}

// Options configures one Compile run across a file set.
type Options struct {
	// Root is the directory ModulePath is derived relative to.
	Root string
	// Jobs bounds concurrency within a single wave; 0 means "one per
	// file in the wave", matching errgroup.SetLimit's accept-all value.
	Jobs int
	// Registry and RequiredArgs are shared across every file and every
	// wave; a nil value gets a fresh one scoped to this Compile call.
	Registry     *registry.Registry
	RequiredArgs *compiler.RequiredArgs
	// SkipTypeCheck and SkipLint are forwarded to every file's Options.
	SkipTypeCheck bool
	SkipLint      bool
	// Events, when non-nil, receives a Queued/Working/Done-or-Error
	// transition per file. Compile closes it before returning, so it is
	// only ever valid for a single call.
	Events chan<- Event
}

// ModulePath derives the dotted export path an entry file publishes under:
// its path relative to root, without extension, with separators replaced
// by dots — "src/pkg/greeting.km" under root "src" becomes "pkg.greeting".
func ModulePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = filepath.ToSlash(rel)
	return strings.ReplaceAll(rel, "/", ".")
}

// Compile orders entries into dependency-respecting waves (by DepStmt
// targets resolved against each other's ModulePath) and compiles each wave
// concurrently, publishing every successfully-checked module's shape and
// required-arg set into opts.Registry/RequiredArgs before the next wave
// starts — so a dependent in a later wave always sees its dependency's
// published shape.
func Compile(ctx context.Context, entries []string, opts Options) ([]FileResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}
	emit := func(file string, status Status) {
		if opts.Events != nil {
			opts.Events <- Event{File: file, Status: status}
		}
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.New()
	}
	req := opts.RequiredArgs
	if req == nil {
		req = compiler.NewRequiredArgs()
	}

	modulePaths := make([]string, len(entries))
	sources := make(map[string][]byte, len(entries))
	deps := make(map[string][]string, len(entries))
	pathByModule := make(map[string]string, len(entries))

	for i, path := range entries {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		mp := ModulePath(opts.Root, path)
		modulePaths[i] = mp
		sources[mp] = src
		pathByModule[mp] = path
		deps[mp] = discoverDeps(src)
		emit(path, StatusQueued)
	}

	idx := BuildIndex(modulePaths, deps)
	graph := BuildGraph(idx, modulePaths, deps)
	topo := ToposortKahn(graph)

	resultsByModule := make(map[string]FileResult, len(entries))
	for _, wave := range topo.Batches {
		g, gctx := errgroup.WithContext(ctx)
		if opts.Jobs > 0 {
			g.SetLimit(opts.Jobs)
		}

		type outcome struct {
			mp  string
			res compiler.Result
		}
		outcomes := make([]outcome, len(wave))

		for i, id := range wave {
			i, id := i, id
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				mp := idx.IDToName[id]
				emit(pathByModule[mp], StatusWorking)
				res := compiler.Compile(sources[mp], compiler.Options{
					ModulePath:    mp,
					Registry:      reg,
					RequiredArgs:  req,
					SkipTypeCheck: opts.SkipTypeCheck,
					SkipLint:      opts.SkipLint,
				})
				if res.Bag.HasErrors() {
					emit(pathByModule[mp], StatusError)
				} else {
					emit(pathByModule[mp], StatusDone)
				}
				outcomes[i] = outcome{mp: mp, res: res}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for _, o := range outcomes {
			resultsByModule[o.mp] = FileResult{
				Path:       pathByModule[o.mp],
				ModulePath: o.mp,
				Result:     o.res,
			}
		}
	}

	// Any entry not reached by a wave (possible only if it took part in a
	// dependency cycle among the entries themselves) is reported as its
	// own standalone compile, so the caller still gets a result for it.
	for _, mp := range modulePaths {
		if _, ok := resultsByModule[mp]; !ok {
			emit(pathByModule[mp], StatusWorking)
			res := compiler.Compile(sources[mp], compiler.Options{
				ModulePath:    mp,
				Registry:      reg,
				RequiredArgs:  req,
				SkipTypeCheck: opts.SkipTypeCheck,
				SkipLint:      opts.SkipLint,
			})
			if res.Bag.HasErrors() {
				emit(pathByModule[mp], StatusError)
			} else {
				emit(pathByModule[mp], StatusDone)
			}
			resultsByModule[mp] = FileResult{Path: pathByModule[mp], ModulePath: mp, Result: res}
		}
	}

	out := make([]FileResult, len(modulePaths))
	for i, mp := range modulePaths {
		out[i] = resultsByModule[mp]
	}
	return out, nil
}

// discoverDeps parses src far enough to collect every top-level DepStmt's
// dotted target path, ignoring parse errors entirely — a file that fails
// to parse contributes no edges and simply fails during its own wave's
// real Compile call, where the error is reported properly.
func discoverDeps(src []byte) []string {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<dep-scan>", src)
	prog, perr := parser.Parse(fs, id)
	if perr != nil || prog == nil {
		return nil
	}
	var deps []string
	for _, s := range prog.Statements {
		if dep, ok := s.(*ast.DepStmt); ok {
			deps = append(deps, strings.Join(dep.PathParts, "."))
		}
	}
	return deps
}

// WriteOutputs writes each successfully-compiled result's generated text to
// outDir, mirroring the entry's module path as a slash-joined .js file
// (pkg.greeting -> pkg/greeting.js). Results with diagnostics errors are
// skipped; the caller is expected to have already reported them.
func WriteOutputs(results []FileResult, outDir string) error {
	for _, r := range results {
		if r.Result.Bag == nil || r.Result.Bag.HasErrors() || r.Result.Text == "" {
			continue
		}
		rel := strings.ReplaceAll(r.ModulePath, ".", "/") + ".js"
		target := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(r.Result.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}
	return nil
}
