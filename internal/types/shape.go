// Package types implements the structural Shape model the TypeChecker
// uses: a small, closed set of tagged kinds with a compatibility relation,
// deliberately simpler than a nominal/generic type system since KimchiLang
// programs carry no type annotations for the checker to instantiate.
package types

// Kind tags a Shape's variant.
type Kind uint8

const (
	Unknown Kind = iota
	Any
	Number
	String
	Boolean
	Null
	Void
	Array
	Object
	Function
	Enum
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Any:
		return "any"
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Void:
		return "void"
	case Array:
		return "array"
	case Object:
		return "object"
	case Function:
		return "function"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// Shape is a structural type: a Kind plus the fields relevant to it.
// Array carries Elem; Object carries Props; Function carries Params and
// Return; Enum carries Name and Members. All other kinds are pure tags.
type Shape struct {
	Kind    Kind
	Elem    *Shape
	Props   map[string]*Shape
	Params  []*Shape
	Return  *Shape
	Name    string
	Members map[string]int64
}

func UnknownShape() *Shape  { return &Shape{Kind: Unknown} }
func AnyShape() *Shape      { return &Shape{Kind: Any} }
func NumberShape() *Shape   { return &Shape{Kind: Number} }
func StringShape() *Shape   { return &Shape{Kind: String} }
func BooleanShape() *Shape  { return &Shape{Kind: Boolean} }
func NullShape() *Shape     { return &Shape{Kind: Null} }
func VoidShape() *Shape     { return &Shape{Kind: Void} }

func ArrayOf(elem *Shape) *Shape { return &Shape{Kind: Array, Elem: elem} }

func NewObject(props map[string]*Shape) *Shape {
	if props == nil {
		props = map[string]*Shape{}
	}
	return &Shape{Kind: Object, Props: props}
}

func NewFunction(params []*Shape, ret *Shape) *Shape {
	return &Shape{Kind: Function, Params: params, Return: ret}
}

func NewEnum(name string, members map[string]int64) *Shape {
	return &Shape{Kind: Enum, Name: name, Members: members}
}

// Compatible reports whether a value of shape actual may be used where
// expected is required, per the structural rules in the checker design:
// any/unknown are bidirectional wildcards, arrays compare by element, and
// objects compare structurally (every key expected requires must exist
// and be compatible in actual).
func Compatible(expected, actual *Shape) bool {
	if expected == nil || actual == nil {
		return true
	}
	if expected.Kind == Any || expected.Kind == Unknown {
		return true
	}
	if actual.Kind == Any || actual.Kind == Unknown {
		return true
	}
	if expected.Kind != actual.Kind {
		return false
	}
	switch expected.Kind {
	case Array:
		return Compatible(expected.Elem, actual.Elem)
	case Object:
		for key, wantShape := range expected.Props {
			gotShape, ok := actual.Props[key]
			if !ok || !Compatible(wantShape, gotShape) {
				return false
			}
		}
		return true
	case Enum:
		return expected.Name == actual.Name
	default:
		return true
	}
}
