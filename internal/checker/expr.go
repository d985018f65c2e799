package checker

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/types"
)

// inferExpr walks expr, recursively checking its subexpressions and
// returning its shape. A nil expr (e.g. an omitted default) yields any.
func (c *Checker) inferExpr(expr ast.Expr) *types.Shape {
	if expr == nil {
		return types.AnyShape()
	}
	switch e := expr.(type) {
	case *ast.Literal:
		return literalShape(e)

	case *ast.TemplateLiteral:
		for _, sub := range e.Expressions {
			c.inferExpr(sub)
		}
		return types.StringShape()

	case *ast.Identifier:
		return c.resolveIdentifier(e)

	case *ast.MemberAccess:
		return c.inferMemberAccess(e)

	case *ast.CallExpr:
		return c.inferCall(e)

	case *ast.UnaryExpr:
		c.inferExpr(e.Operand)
		if e.Op == "!" || e.Op == "not" {
			return types.BooleanShape()
		}
		return types.NumberShape()

	case *ast.BinaryExpr:
		return c.inferBinary(e)

	case *ast.AssignmentExpr:
		valShape := c.inferExpr(e.Value)
		c.inferExpr(e.Target)
		return valShape

	case *ast.ConditionalExpr:
		c.inferExpr(e.Test)
		thenShape := c.inferExpr(e.Then)
		elseShape := c.inferExpr(e.Else)
		if types.Compatible(thenShape, elseShape) {
			return thenShape
		}
		return types.AnyShape()

	case *ast.ArrowFunction:
		return c.inferArrow(e)

	case *ast.ArrayLiteral:
		return c.inferArrayLiteral(e)

	case *ast.ObjectLiteral:
		return c.inferObjectLiteral(e)

	case *ast.SpreadElement:
		return c.inferExpr(e.Argument)

	case *ast.AwaitExpr:
		return c.inferExpr(e.X)

	case *ast.RangeExpr:
		c.inferExpr(e.Start)
		c.inferExpr(e.End)
		return types.ArrayOf(types.NumberShape())

	case *ast.FlowExpr:
		return c.visitFlowExpr(e)

	case *ast.PipeExpr:
		c.inferExpr(e.Left)
		rightShape := c.inferExpr(e.Right)
		if rightShape != nil && rightShape.Kind == types.Function {
			return rightShape.Return
		}
		return types.AnyShape()

	case *ast.RegexLiteral:
		return types.AnyShape()

	case *ast.JSBlock:
		return types.AnyShape()

	case *ast.ShellBlock:
		return types.NewObject(map[string]*types.Shape{
			"stdout":   types.StringShape(),
			"stderr":   types.StringShape(),
			"exitCode": types.NumberShape(),
		})

	default:
		return types.AnyShape()
	}
}

func literalShape(lit *ast.Literal) *types.Shape {
	switch lit.Kind {
	case ast.LitNumber:
		return types.NumberShape()
	case ast.LitString:
		return types.StringShape()
	case ast.LitBool:
		return types.BooleanShape()
	case ast.LitNull:
		return types.NullShape()
	default:
		return types.AnyShape()
	}
}

func (c *Checker) resolveIdentifier(id *ast.Identifier) *types.Shape {
	if shape, ok := c.scope.lookup(id.Name); ok {
		return shape
	}
	if builtinWhitelist[id.Name] {
		return types.AnyShape()
	}
	c.errorf(id.Span(), diag.CodeUndefinedIdentifier, "undefined identifier '"+id.Name+"'")
	return types.AnyShape()
}

func (c *Checker) inferMemberAccess(e *ast.MemberAccess) *types.Shape {
	objShape := c.inferExpr(e.Object)
	if e.Computed {
		c.inferExpr(e.Index)
		if objShape != nil && objShape.Kind == types.Array {
			return objShape.Elem
		}
		return types.AnyShape()
	}
	if objShape == nil {
		return types.AnyShape()
	}
	switch objShape.Kind {
	case types.Object:
		if shape, ok := objShape.Props[e.Property]; ok {
			return shape
		}
		if len(objShape.Props) > 0 {
			c.errorf(e.Span(), diag.CodeMissingProperty, "object has no property '"+e.Property+"'")
		}
		return types.AnyShape()

	case types.Array:
		if shape, ok := arrayMember(e.Property, objShape.Elem); ok {
			return shape
		}
		return types.AnyShape()

	case types.String:
		if shape, ok := stringMember(e.Property); ok {
			return shape
		}
		return types.AnyShape()

	case types.Enum:
		if _, ok := objShape.Members[e.Property]; !ok {
			c.errorf(e.Span(), diag.CodeMissingEnumMember,
				"enum '"+objShape.Name+"' has no member '"+e.Property+"'")
		}
		return types.NumberShape()

	default:
		return types.AnyShape()
	}
}

func (c *Checker) inferCall(e *ast.CallExpr) *types.Shape {
	calleeShape := c.inferExpr(e.Callee)
	for _, a := range e.Args {
		c.inferExpr(a)
	}
	if calleeShape == nil {
		return types.AnyShape()
	}
	switch calleeShape.Kind {
	case types.Function:
		if calleeShape.Return != nil {
			return calleeShape.Return
		}
		return types.AnyShape()
	case types.Any, types.Unknown:
		return types.AnyShape()
	default:
		c.errorf(e.Span(), diag.CodeNotCallable, "called value is not a function")
		return types.AnyShape()
	}
}

func (c *Checker) inferBinary(e *ast.BinaryExpr) *types.Shape {
	left := c.inferExpr(e.Left)
	right := c.inferExpr(e.Right)
	switch e.Op {
	case "is", "is not", "==", "!=", "<", ">", "<=", ">=", "&&", "||", "and", "or":
		return types.BooleanShape()
	case "+":
		if (left != nil && left.Kind == types.String) || (right != nil && right.Kind == types.String) {
			return types.StringShape()
		}
		return types.NumberShape()
	case "-", "*", "/", "%", "**":
		return types.NumberShape()
	default:
		return types.AnyShape()
	}
}

func (c *Checker) inferArrow(e *ast.ArrowFunction) *types.Shape {
	c.pushScope()
	params := make([]*types.Shape, len(e.Params))
	for i, p := range e.Params {
		params[i] = types.AnyShape()
		c.scope.define(p.Name, params[i])
		if p.Default != nil {
			c.inferExpr(p.Default)
		}
	}
	var ret *types.Shape
	switch {
	case e.BodyExpr != nil:
		ret = c.inferExpr(e.BodyExpr)
	case e.BodyBlock != nil:
		c.visitStmts(e.BodyBlock.Statements)
		ret = types.AnyShape()
	default:
		ret = types.AnyShape()
	}
	c.popScope()
	return types.NewFunction(params, ret)
}

func (c *Checker) inferArrayLiteral(e *ast.ArrayLiteral) *types.Shape {
	var elem *types.Shape
	for _, el := range e.Elements {
		shape := c.inferExpr(el)
		switch {
		case elem == nil:
			elem = shape
		case !types.Compatible(elem, shape):
			elem = types.AnyShape()
		}
	}
	if elem == nil {
		elem = types.UnknownShape()
	}
	return types.ArrayOf(elem)
}

func (c *Checker) inferObjectLiteral(e *ast.ObjectLiteral) *types.Shape {
	props := make(map[string]*types.Shape)
	for _, m := range e.Members {
		switch mem := m.(type) {
		case ast.Property:
			if mem.Computed {
				c.inferExpr(mem.ComputedKey)
				c.inferExpr(mem.Value)
				continue
			}
			props[mem.Key] = c.inferExpr(mem.Value)

		case *ast.SpreadElement:
			spreadShape := c.inferExpr(mem.Argument)
			if spreadShape != nil && spreadShape.Kind == types.Object {
				for k, v := range spreadShape.Props {
					props[k] = v
				}
			}
		}
	}
	return types.NewObject(props)
}

// visitFlowExpr checks `name >> f1 f2 … fn`, defining Name as the
// composed function's shape: its return shape is the final function's
// return shape, chased through the lookup chain.
func (c *Checker) visitFlowExpr(e *ast.FlowExpr) *types.Shape {
	ret := types.AnyShape()
	for _, fname := range e.Functions {
		shape, ok := c.scope.lookup(fname)
		if !ok && !builtinWhitelist[fname] {
			c.errorf(e.Span(), diag.CodeUndefinedIdentifier, "undefined identifier '"+fname+"'")
		}
		if shape != nil && shape.Kind == types.Function && shape.Return != nil {
			ret = shape.Return
		} else {
			ret = types.AnyShape()
		}
	}
	fnShape := types.NewFunction([]*types.Shape{types.AnyShape()}, ret)
	c.scope.define(e.Name, fnShape)
	return fnShape
}
