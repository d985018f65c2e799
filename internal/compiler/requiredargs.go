package compiler

import "sync"

// RequiredArgs is a single-writer-many-reader map from module path to the
// set of that module's required (no-default) arg/env names, mirroring
// registry.Registry's shape. It is kept separate from the export-shape
// registry because requiredness isn't part of a Shape — a required arg
// and an optional one with a default both end up as plain members of the
// module's exported object.
type RequiredArgs struct {
	mu   sync.RWMutex
	reqs map[string][]string
}

// NewRequiredArgs returns an empty RequiredArgs map.
func NewRequiredArgs() *RequiredArgs {
	return &RequiredArgs{reqs: make(map[string][]string)}
}

// Register records names as path's required args, replacing any prior entry.
func (r *RequiredArgs) Register(path string, names []string) {
	r.mu.Lock()
	r.reqs[path] = names
	r.mu.Unlock()
}

// Lookup returns the required-arg names registered for path, if any.
func (r *RequiredArgs) Lookup(path string) ([]string, bool) {
	r.mu.RLock()
	names, ok := r.reqs[path]
	r.mu.RUnlock()
	return names, ok
}

// Clear truncates the map back to empty.
func (r *RequiredArgs) Clear() {
	r.mu.Lock()
	r.reqs = make(map[string][]string)
	r.mu.Unlock()
}
