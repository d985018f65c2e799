package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"kimchi/internal/ast"
)

// jsOperator maps a handful of KimchiLang operator spellings onto their
// JS equivalents. Everything not listed here (+, -, *, /, %, **, <, >, <=,
// >=, <<, >>) is already valid JS and passes through unchanged.
func jsOperator(op string) string {
	switch op {
	case "and":
		return "&&"
	case "or":
		return "||"
	default:
		return op
	}
}

// emitExpr renders expr as a single line of JS. Every composite form is
// fully parenthesized so nothing downstream has to reason about the
// source language's precedence rules.
func (e *Emitter) emitExpr(expr ast.Expr) string {
	switch x := expr.(type) {
	case nil:
		return "undefined"
	case *ast.Literal:
		return emitLiteral(x)
	case *ast.TemplateLiteral:
		return e.emitTemplateLiteral(x)
	case *ast.Identifier:
		return x.Name
	case *ast.MemberAccess:
		return e.emitMemberAccess(x)
	case *ast.CallExpr:
		return e.emitCallExpr(x)
	case *ast.UnaryExpr:
		return e.emitUnaryExpr(x)
	case *ast.BinaryExpr:
		return e.emitBinaryExpr(x)
	case *ast.AssignmentExpr:
		return e.emitAssignmentExpr(x)
	case *ast.ConditionalExpr:
		return fmt.Sprintf("(%s ? %s : %s)", e.emitExpr(x.Test), e.emitExpr(x.Then), e.emitExpr(x.Else))
	case *ast.ArrowFunction:
		return e.emitArrowFunction(x)
	case *ast.ArrayLiteral:
		return e.emitArrayLiteral(x)
	case *ast.ObjectLiteral:
		return e.emitObjectLiteral(x)
	case *ast.SpreadElement:
		return "..." + e.emitExpr(x.Argument)
	case *ast.AwaitExpr:
		return "(await " + e.emitExpr(x.X) + ")"
	case *ast.RangeExpr:
		return e.emitRangeExpr(x)
	case *ast.PipeExpr:
		return e.emitPipeExpr(x)
	case *ast.RegexLiteral:
		return "/" + x.Pattern + "/" + x.Flags
	case *ast.JSBlock:
		return e.emitJSBlockExpr(x)
	case *ast.ShellBlock:
		return e.emitShellBlockExpr(x)
	case *ast.FlowExpr:
		// A FlowExpr standing as its own statement is lowered by
		// emitFlowExpr. Here, in expression position (for example a
		// `dec` initializer), only its name is emitted, not the
		// composition.
		return x.Name
	default:
		return "undefined"
	}
}

func emitLiteral(lit *ast.Literal) string {
	switch lit.Kind {
	case ast.LitNumber:
		return lit.Raw
	case ast.LitString:
		return strconv.Quote(lit.Raw)
	case ast.LitBool:
		if lit.Bool {
			return "true"
		}
		return "false"
	case ast.LitNull:
		return "null"
	default:
		return "null"
	}
}

// emitTemplateLiteral renders Parts/Expressions as a JS backtick string,
// escaping any backtick or `${` sequence that occurs in a literal part so
// it isn't mistaken for an interpolation boundary.
func (e *Emitter) emitTemplateLiteral(t *ast.TemplateLiteral) string {
	var b strings.Builder
	b.WriteByte('`')
	for i, part := range t.Parts {
		b.WriteString(escapeTemplatePart(part))
		if i < len(t.Expressions) {
			b.WriteString("${")
			b.WriteString(e.emitExpr(t.Expressions[i]))
			b.WriteByte('}')
		}
	}
	b.WriteByte('`')
	return b.String()
}

func escapeTemplatePart(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}

// emitMemberAccess emits every access, dotted or computed, with an
// optional-chaining operator, matching the contract's "?. on every member
// or computed access" rule.
func (e *Emitter) emitMemberAccess(m *ast.MemberAccess) string {
	obj := e.emitExpr(m.Object)
	if m.Computed {
		return obj + "?.[" + e.emitExpr(m.Index) + "]"
	}
	return obj + "?." + m.Property
}

func (e *Emitter) emitCallExpr(c *ast.CallExpr) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = e.emitExpr(a)
	}
	return e.emitExpr(c.Callee) + "(" + strings.Join(args, ", ") + ")"
}

func (e *Emitter) emitUnaryExpr(u *ast.UnaryExpr) string {
	operand := e.emitExpr(u.Operand)
	if u.Op == "not" {
		return "(!" + operand + ")"
	}
	return "(" + u.Op + operand + ")"
}

// emitBinaryExpr fully parenthesizes every binary form, rewrites ==/!=
// into ===/!==, and lowers the identity operators is/is not into an
// optional-chained ._id comparison.
func (e *Emitter) emitBinaryExpr(b *ast.BinaryExpr) string {
	left := e.emitExpr(b.Left)
	right := e.emitExpr(b.Right)
	switch b.Op {
	case "==":
		return "(" + left + " === " + right + ")"
	case "!=":
		return "(" + left + " !== " + right + ")"
	case "is":
		return "(" + left + "?._id === " + right + "?._id)"
	case "is not":
		return "(" + left + "?._id !== " + right + "?._id)"
	default:
		return "(" + left + " " + jsOperator(b.Op) + " " + right + ")"
	}
}

func (e *Emitter) emitAssignmentExpr(a *ast.AssignmentExpr) string {
	return "(" + e.emitExpr(a.Target) + " " + a.Op + " " + e.emitExpr(a.Value) + ")"
}

func (e *Emitter) emitArrowFunction(a *ast.ArrowFunction) string {
	prefix := ""
	if a.Async {
		prefix = "async "
	}
	params := "(" + e.paramList(a.Params) + ")"
	if a.BodyExpr != nil {
		body := e.emitExpr(a.BodyExpr)
		if _, ok := a.BodyExpr.(*ast.ObjectLiteral); ok {
			body = "(" + body + ")"
		}
		return prefix + params + " => " + body
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(params)
	b.WriteString(" => {\n")
	saved := e.w
	e.w = writer{indent: saved.indent + 1}
	e.emitStmts(a.BodyBlock.Statements)
	body := e.w.String()
	e.w = saved
	b.WriteString(body)
	b.WriteString(strings.Repeat("  ", e.w.indent))
	b.WriteByte('}')
	return b.String()
}

func (e *Emitter) emitArrayLiteral(a *ast.ArrayLiteral) string {
	elems := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		elems[i] = e.emitExpr(el)
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

func (e *Emitter) emitObjectLiteral(o *ast.ObjectLiteral) string {
	parts := make([]string, 0, len(o.Members))
	for _, m := range o.Members {
		switch mem := m.(type) {
		case ast.Property:
			if mem.Shorthand {
				parts = append(parts, mem.Key)
				continue
			}
			key := mem.Key
			if mem.Computed {
				key = "[" + e.emitExpr(mem.ComputedKey) + "]"
			}
			parts = append(parts, key+": "+e.emitExpr(mem.Value))
		case *ast.SpreadElement:
			parts = append(parts, "..."+e.emitExpr(mem.Argument))
		}
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// emitRangeExpr lowers `start..end` to the half-open sequence the JS
// runtime has no native equivalent for: Array.from({length}, …).
func (e *Emitter) emitRangeExpr(r *ast.RangeExpr) string {
	start := e.emitExpr(r.Start)
	end := e.emitExpr(r.End)
	return fmt.Sprintf("Array.from({ length: %s - %s }, (_, i) => %s + i)", end, start, start)
}

func (e *Emitter) emitPipeExpr(p *ast.PipeExpr) string {
	return e.emitExpr(p.Right) + "(" + e.emitExpr(p.Left) + ")"
}

func (e *Emitter) paramList(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		switch {
		case p.Rest:
			parts[i] = "..." + p.Name
		case p.Default != nil:
			parts[i] = p.Name + " = " + e.emitExpr(p.Default)
		default:
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, ", ")
}

// argNames renders params as a plain forwarding argument list (names only,
// rest-spread preserved, defaults dropped), used by the memoized-function
// wrapper to re-call the original body with the values it already bound.
func argNames(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Rest {
			parts[i] = "..." + p.Name
		} else {
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, ", ")
}

func patternText(p ast.Pattern) string {
	switch pp := p.(type) {
	case nil:
		return ""
	case *ast.IdentPattern:
		return pp.Name
	case *ast.ObjectPattern:
		parts := make([]string, len(pp.Props))
		for i, prop := range pp.Props {
			bind := patternText(prop.Bind)
			if bind == prop.Key {
				parts[i] = prop.Key
			} else {
				parts[i] = prop.Key + ": " + bind
			}
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ast.ArrayPattern:
		parts := make([]string, len(pp.Elements))
		for i, el := range pp.Elements {
			if el == nil {
				parts[i] = ""
			} else {
				parts[i] = patternText(el)
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}
