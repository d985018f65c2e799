package ast

func (*IdentPattern) patternNode()  {}
func (*ObjectPattern) patternNode() {}
func (*ArrayPattern) patternNode()  {}

// IdentPattern binds a single name; it is the leaf of nested
// object/array patterns as well as the top of a simple `dec` bind.
type IdentPattern struct {
	base
	Name string
}

// ObjectPatternProp is `key` (shorthand, Bind == Key) or `key: bind`.
type ObjectPatternProp struct {
	Key  string
	Bind Pattern
}

// ObjectPattern is `{ a, b: x, … }`.
type ObjectPattern struct {
	base
	Props []ObjectPatternProp
}

// ArrayPattern is `[a, , b]`; nil elements are explicit holes.
type ArrayPattern struct {
	base
	Elements []Pattern
}
