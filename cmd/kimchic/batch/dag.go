// Package batch drives a concurrent multi-file build: it discovers each
// entry file's DepStmt targets, orders the files into dependency-respecting
// waves, and compiles each wave in parallel with a shared registry so a
// dependency's export shape is always published before its dependents are
// checked. This is CLI orchestration, not core compiler logic — spec.md's
// single-writer-many-reader registry discipline is honored by compiling
// strictly wave-by-wave rather than letting any two files touch the
// registry out of dependency order.
package batch

import (
	"fmt"
	"slices"
	"sort"

	"fortio.org/safecast"
)

// ModuleID is a dense index into an Index's path list, the same role the
// teacher's project/dag package gives it for its own import graph.
type ModuleID uint32

// Index assigns every module path appearing as an entry or as someone's
// dependency a stable, sorted ModuleID.
type Index struct {
	NameToID map[string]ModuleID
	IDToName []string
}

// BuildIndex collects every path in paths and every path named in deps'
// values into one sorted, deduplicated index.
func BuildIndex(paths []string, deps map[string][]string) Index {
	uniq := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p != "" {
			uniq[p] = struct{}{}
		}
	}
	for from, to := range deps {
		if from != "" {
			uniq[from] = struct{}{}
		}
		for _, p := range to {
			if p != "" {
				uniq[p] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(uniq))
	for p := range uniq {
		names = append(names, p)
	}
	sort.Strings(names)

	nameToID := make(map[string]ModuleID, len(names))
	for i, p := range names {
		nameToID[p] = ModuleID(i)
	}
	return Index{NameToID: nameToID, IDToName: names}
}

// Graph is the dependency edge set over an Index: Edges[from] lists the
// modules from depends on. Present marks which IDs correspond to an actual
// entry file rather than a bare dependency reference with no local source.
type Graph struct {
	Edges   [][]ModuleID
	Indeg   []int
	Present []bool
}

// BuildGraph turns paths (the entry files actually present on disk) and
// deps (each entry's DepStmt targets) into a Graph over idx.
func BuildGraph(idx Index, paths []string, deps map[string][]string) Graph {
	n := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]ModuleID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
	}
	for _, p := range paths {
		if id, ok := idx.NameToID[p]; ok {
			g.Present[id] = true
		}
	}
	for from, to := range deps {
		fromID, ok := idx.NameToID[from]
		if !ok || !g.Present[fromID] {
			continue
		}
		seen := make(map[ModuleID]struct{}, len(to))
		for _, dep := range to {
			toID, ok := idx.NameToID[dep]
			if !ok || fromID == toID {
				continue
			}
			if _, dup := seen[toID]; dup {
				continue
			}
			seen[toID] = struct{}{}
			g.Edges[fromID] = append(g.Edges[fromID], toID)
			if g.Present[toID] {
				g.Indeg[toID]++
			}
		}
		if len(g.Edges[fromID]) > 1 {
			slices.Sort(g.Edges[fromID])
		}
	}
	return g
}

// Topo is a Kahn's-algorithm ordering of a Graph's present modules into
// dependency-respecting waves: every module in Batches[i] has every
// dependency satisfied by modules in Batches[0..i-1] (or modules outside
// this graph entirely, already published into the registry).
type Topo struct {
	Order   []ModuleID
	Batches [][]ModuleID
	Cyclic  bool
	Cycles  []ModuleID
}

// ToposortKahn computes Topo from g, only considering present modules.
func ToposortKahn(g Graph) Topo {
	n := len(g.Edges)
	indeg := make([]int, n)
	dependents := make([][]ModuleID, n)
	for from, tos := range g.Edges {
		for _, to := range tos {
			if g.Present[int(to)] {
				indeg[from]++
				dependents[int(to)] = append(dependents[int(to)], ModuleID(from))
			}
		}
	}

	topo := Topo{Order: make([]ModuleID, 0, n), Batches: make([][]ModuleID, 0)}

	active := 0
	for i := 0; i < n; i++ {
		if g.Present[i] {
			active++
		}
	}

	current := make([]ModuleID, 0, n)
	for i := 0; i < n; i++ {
		if g.Present[i] && indeg[i] == 0 {
			id, err := safecast.Conv[ModuleID](i)
			if err != nil {
				panic(fmt.Errorf("module id overflow: %w", err))
			}
			current = append(current, id)
		}
	}
	slices.Sort(current)

	visited := 0
	for len(current) > 0 {
		batch := make([]ModuleID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]ModuleID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, dep := range dependents[int(id)] {
				indeg[int(dep)]--
				if indeg[int(dep)] == 0 {
					next = append(next, dep)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		for i := 0; i < n; i++ {
			if g.Present[i] && indeg[i] > 0 {
				id, err := safecast.Conv[ModuleID](i)
				if err != nil {
					panic(fmt.Errorf("module id overflow: %w", err))
				}
				topo.Cycles = append(topo.Cycles, id)
			}
		}
		slices.Sort(topo.Cycles)
	}
	return topo
}
