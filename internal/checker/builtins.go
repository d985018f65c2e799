package checker

import "kimchi/internal/types"

// builtinWhitelist names identifiers the checker never flags as
// undefined, whether or not any binding exists for them: host globals
// the emitted JS runs against, plus the runtime preamble's own helpers.
var builtinWhitelist = map[string]bool{
	"console": true, "Math": true, "JSON": true, "Object": true, "Array": true,
	"String": true, "Number": true, "Boolean": true, "Date": true, "Promise": true,
	"fetch": true, "setTimeout": true, "setInterval": true, "clearTimeout": true, "clearInterval": true,
	"parseInt": true, "parseFloat": true, "isNaN": true, "isFinite": true,
	"encodeURI": true, "decodeURI": true, "encodeURIComponent": true, "decodeURIComponent": true,
	"Error": true, "TypeError": true, "RangeError": true, "SyntaxError": true, "RegExp": true,
	"Map": true, "Set": true, "WeakMap": true, "WeakSet": true, "Symbol": true,
	"Proxy": true, "Reflect": true, "Intl": true, "undefined": true, "null": true,
	"NaN": true, "Infinity": true, "globalThis": true, "process": true, "Buffer": true,
	"require": true, "module": true, "exports": true, "__dirname": true, "__filename": true,
	"_pipe": true, "_range": true, "_deepFreeze": true, "true": true, "false": true,
}

// arrayMember resolves a property/method name accessed on an array-shaped
// value. "length" is an ordinary numeric property; everything else is one
// of the preamble's monkey-patched methods, modeled as a zero-arg
// function shape so a CallExpr on it resolves to the listed return shape.
func arrayMember(name string, elem *types.Shape) (*types.Shape, bool) {
	if name == "length" {
		return types.NumberShape(), true
	}
	ret, ok := arrayMethodReturn(name, elem)
	if !ok {
		return nil, false
	}
	return types.NewFunction(nil, ret), true
}

func arrayMethodReturn(name string, elem *types.Shape) (*types.Shape, bool) {
	switch name {
	case "map":
		return types.ArrayOf(types.UnknownShape()), true
	case "filter", "take", "drop", "flatten", "unique":
		return types.ArrayOf(elem), true
	case "find", "first", "last":
		return elem, true
	case "some", "every", "isEmpty":
		return types.BooleanShape(), true
	case "join":
		return types.StringShape(), true
	case "sum", "product", "average", "max", "min":
		return types.NumberShape(), true
	default:
		return nil, false
	}
}

// stringMember mirrors arrayMember for the preamble's string helpers.
func stringMember(name string) (*types.Shape, bool) {
	if name == "length" {
		return types.NumberShape(), true
	}
	switch name {
	case "isEmpty", "isBlank":
		return types.NewFunction(nil, types.BooleanShape()), true
	case "toChars", "toLines":
		return types.NewFunction(nil, types.ArrayOf(types.StringShape())), true
	case "capitalize":
		return types.NewFunction(nil, types.StringShape()), true
	default:
		return nil, false
	}
}
