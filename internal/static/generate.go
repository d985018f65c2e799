package static

import (
	"strconv"
	"strings"
)

// Generate renders a parsed static-data File as a header comment,
// optionally the `_Secret` helper, then one `export const Name = …;` per
// declaration — the flat-bindings layout a `.static` file compiles to,
// distinct from the module-factory wrapper `.km` sources get since static
// data has no args, env, or deps to resolve.
func Generate(f *File, modulePath string) string {
	var b strings.Builder
	b.WriteString("// generated from " + modulePath + "\n")
	b.WriteString(deepFreezeHelper)
	if usesSecret(f) {
		b.WriteString(secretHelper)
	}
	for _, d := range f.Declarations {
		b.WriteString("export const " + d.Name + " = _deepFreeze(" + renderNode(d.Value) + ");\n")
	}
	return b.String()
}

func usesSecret(f *File) bool {
	for _, d := range f.Declarations {
		if d.Value.isSecret() {
			return true
		}
	}
	return false
}

const deepFreezeHelper = `function _deepFreeze(value) {
  if (value === null || typeof value !== "object") return value;
  if (Object.isFrozen(value)) return value;
  Object.getOwnPropertyNames(value).forEach((name) => _deepFreeze(value[name]));
  return Object.freeze(value);
}
`

const secretHelper = `class _Secret {
  constructor(value) { this._value = value; }
  toString() { return "********"; }
  toJSON() { return "********"; }
  valueOf() { return this._value; }
}
function _secret(value) { return new _Secret(value); }
`

func renderNode(n Node) string {
	text := renderBare(n)
	if n.isSecret() {
		return "_secret(" + text + ")"
	}
	return text
}

func renderBare(n Node) string {
	switch v := n.(type) {
	case Literal:
		return renderLiteral(v)
	case Reference:
		return strings.Join(v.Path, ".")
	case Array:
		parts := make([]string, len(v.Values))
		for i, el := range v.Values {
			parts[i] = renderNode(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Object:
		parts := make([]string, len(v.Props))
		for i, p := range v.Props {
			parts[i] = p.Key + ": " + renderNode(p.Value)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case Enum:
		parts := make([]string, len(v.Members))
		for i, m := range v.Members {
			parts[i] = m.Name + ": " + renderNode(m.Value)
		}
		return "Object.freeze({ " + strings.Join(parts, ", ") + " })"
	default:
		return "null"
	}
}

func renderLiteral(l Literal) string {
	switch l.Kind {
	case LitNumber:
		return l.Raw
	case LitString:
		return strconv.Quote(l.Raw)
	case LitBool:
		if l.Bool {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}
