package lint

import "kimchi/internal/source"

// binding is one declared name's lint bookkeeping: whether any reference
// to it was seen, and whether it's exempt from the unused-binding rule
// because it's exposed.
type binding struct {
	name     string
	span     source.Span
	used     bool
	exported bool
}

// lintScope is one level of the lexical scope stack the linter's walk
// builds; it mirrors checker.scope's shape but additionally remembers
// enough to detect shadowing and report unused bindings at the end.
type lintScope struct {
	bindings map[string]*binding
	parent   *lintScope
}

func newLintScope(parent *lintScope) *lintScope {
	return &lintScope{bindings: make(map[string]*binding), parent: parent}
}

// declare registers name in s. If name already exists in s (e.g. it was
// hoisted by an earlier pass), the existing binding is reused rather than
// replaced, so hoist-then-walk declarations of the same name don't
// double-count. The third return value reports whether a new binding was
// created.
func (s *lintScope) declare(name string, span source.Span, exported bool) (*binding, bool, bool) {
	shadowed, shadows := s.lookupOuter(name)
	if existing, ok := s.bindings[name]; ok {
		if exported {
			existing.exported = true
		}
		return shadowed, shadows, false
	}
	s.bindings[name] = &binding{name: name, span: span, exported: exported}
	return shadowed, shadows, true
}

func (s *lintScope) lookupOuter(name string) (*binding, bool) {
	for cur := s.parent; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

func (s *lintScope) markUsed(name string) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			b.used = true
			return
		}
	}
}
