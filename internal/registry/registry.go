// Package registry implements the process-wide ExportRegistry: the
// dotted-module-path to export-shape mapping that lets one module's
// DepStmt type-check against another module's already-checked exports.
package registry

import (
	"sync"

	"kimchi/internal/types"
)

// Registry is a single-writer-many-reader map from module path to the
// last-published export shape for that module. It is passed explicitly
// into the checker rather than held as a package-level singleton, so
// tests can construct independent registries and reset them freely.
type Registry struct {
	mu      sync.RWMutex
	exports map[string]*types.Shape
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{exports: make(map[string]*types.Shape)}
}

// Register publishes shape as path's export shape, replacing any prior
// entry. Safe for concurrent use with Lookup from other goroutines.
func (r *Registry) Register(path string, shape *types.Shape) {
	r.mu.Lock()
	r.exports[path] = shape
	r.mu.Unlock()
}

// Lookup returns the export shape last published for path, if any.
func (r *Registry) Lookup(path string) (*types.Shape, bool) {
	r.mu.RLock()
	shape, ok := r.exports[path]
	r.mu.RUnlock()
	return shape, ok
}

// Clear truncates the registry back to empty. Used by test suites that
// need isolation between compiles sharing a process.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.exports = make(map[string]*types.Shape)
	r.mu.Unlock()
}

// Len reports the number of currently registered module paths.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exports)
}

// Paths returns a snapshot of every currently registered module path, in
// no particular order.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.exports))
	for p := range r.exports {
		paths = append(paths, p)
	}
	return paths
}
