package parser

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/token"
)

// parseCallOrMember parses a primary expression followed by any run of
// call, dotted-member, and computed-member postfixes.
func (p *Parser) parseCallOrMember() (ast.Expr, *diag.Diagnostic) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(token.LParen):
			p.advance()
			var args []ast.Expr
			for !p.at(token.RParen) {
				a, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.at(token.Comma) {
					p.advance()
				} else {
					break
				}
			}
			end, err := p.expect(token.RParen, "expected ')' to close a call")
			if err != nil {
				return nil, err
			}
			c := &ast.CallExpr{Callee: left, Args: args}
			c.Sp = left.Span().Cover(end.Span)
			left = c
		case p.at(token.Dot):
			p.advance()
			nameTok, err := p.expect(token.Ident, "expected a property name after '.'")
			if err != nil {
				return nil, err
			}
			m := &ast.MemberAccess{Object: left, Property: nameTok.Text}
			m.Sp = left.Span().Cover(nameTok.Span)
			left = m
		case p.at(token.LBracket):
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(token.RBracket, "expected ']' to close a computed member access")
			if err != nil {
				return nil, err
			}
			m := &ast.MemberAccess{Object: left, Index: idx, Computed: true}
			m.Sp = left.Span().Cover(end.Span)
			left = m
		default:
			return left, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, *diag.Diagnostic) {
	switch p.peek().Kind {
	case token.Number:
		t := p.advance()
		l := &ast.Literal{Kind: ast.LitNumber, Raw: t.Text}
		l.Sp = t.Span
		return l, nil
	case token.String:
		t := p.advance()
		l := &ast.Literal{Kind: ast.LitString, Raw: t.Text}
		l.Sp = t.Span
		return l, nil
	case token.TemplateString:
		return p.parseTemplateLiteral(p.advance())
	case token.Backtick:
		t := p.advance()
		inner := t.Text
		if len(inner) >= 2 {
			inner = inner[1 : len(inner)-1]
		}
		tl := &ast.TemplateLiteral{Parts: []string{inner}}
		tl.Sp = t.Span
		return tl, nil
	case token.Regex:
		t := p.advance()
		r := &ast.RegexLiteral{Pattern: t.Regex.Pattern, Flags: t.Regex.Flags}
		r.Sp = t.Span
		return r, nil
	case token.KwTrue:
		t := p.advance()
		l := &ast.Literal{Kind: ast.LitBool, Bool: true}
		l.Sp = t.Span
		return l, nil
	case token.KwFalse:
		t := p.advance()
		l := &ast.Literal{Kind: ast.LitBool, Bool: false}
		l.Sp = t.Span
		return l, nil
	case token.KwNull:
		t := p.advance()
		l := &ast.Literal{Kind: ast.LitNull}
		l.Sp = t.Span
		return l, nil
	case token.KwAsync:
		return p.parseAsyncArrow()
	case token.Ident:
		if p.peekAt(1).Kind == token.FatArrow {
			return p.parseArrowFunction(false)
		}
		t := p.advance()
		id := &ast.Identifier{Name: t.Text}
		id.Sp = t.Span
		return id, nil
	case token.LParen:
		if p.isArrowAhead(0) {
			return p.parseArrowFunction(false)
		}
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "expected ')' to close a grouped expression"); err != nil {
			return nil, err
		}
		return inner, nil
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwJS:
		return p.parseJSBlock(true)
	case token.KwShell:
		return p.parseShellBlock(true)
	default:
		return nil, p.errf(diag.CodeExpectedExpression, "expected an expression")
	}
}

func (p *Parser) parseAsyncArrow() (ast.Expr, *diag.Diagnostic) {
	p.advance() // 'async'
	return p.parseArrowFunction(true)
}

// isArrowAhead reports whether the '(' at offset n begins an arrow
// function's parameter list, by scanning forward to the matching ')' and
// checking for a following '=>'.
func (p *Parser) isArrowAhead(n int) bool {
	depth := 0
	i := n
	for {
		tk := p.peekAt(i)
		switch tk.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return p.peekAt(i+1).Kind == token.FatArrow
			}
		case token.EOF:
			return false
		}
		i++
	}
}

func (p *Parser) parseArrowFunction(async bool) (ast.Expr, *diag.Diagnostic) {
	start := p.peek().Span
	var params []ast.Param
	if p.at(token.LParen) {
		ps, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		params = ps
	} else {
		nameTok, err := p.expect(token.Ident, "expected a parameter name")
		if err != nil {
			return nil, err
		}
		params = []ast.Param{{Name: nameTok.Text}}
	}
	if _, err := p.expect(token.FatArrow, "expected '=>' in an arrow function"); err != nil {
		return nil, err
	}
	fn := &ast.ArrowFunction{Params: params, Async: async}
	if p.at(token.LBrace) {
		body, err := p.parseBlockAsFunctionBody()
		if err != nil {
			return nil, err
		}
		fn.BodyBlock = body
		fn.Sp = start.Cover(body.Span())
	} else {
		body, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		fn.BodyExpr = body
		fn.Sp = start.Cover(body.Span())
	}
	return fn, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expr, *diag.Diagnostic) {
	start := p.advance().Span // '['
	p.skipNewlines()
	var elems []ast.Expr
	for !p.at(token.RBracket) {
		el, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
		}
	}
	end, err := p.expect(token.RBracket, "expected ']' to close an array literal")
	if err != nil {
		return nil, err
	}
	a := &ast.ArrayLiteral{Elements: elems}
	a.Sp = start.Cover(end.Span)
	return a, nil
}

func (p *Parser) parseObjectLiteral() (ast.Expr, *diag.Diagnostic) {
	start := p.advance().Span // '{'
	p.skipNewlines()
	var members []ast.ObjectMember
	for !p.at(token.RBrace) {
		if p.at(token.DotDotDot) {
			spreadStart := p.advance().Span
			arg, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			s := &ast.SpreadElement{Argument: arg}
			s.Sp = spreadStart.Cover(arg.Span())
			members = append(members, s)
		} else {
			computed := false
			var computedKey ast.Expr
			var key string
			if p.at(token.LBracket) {
				p.advance()
				k, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(token.RBracket, "expected ']' after a computed property key"); err != nil {
					return nil, err
				}
				computed = true
				computedKey = k
			} else {
				keyTok, err := p.expect(token.Ident, "expected a property key")
				if err != nil {
					return nil, err
				}
				key = keyTok.Text
			}
			if p.at(token.Colon) {
				p.advance()
				val, err := p.parseAssignment()
				if err != nil {
					return nil, err
				}
				members = append(members, ast.Property{Key: key, ComputedKey: computedKey, Computed: computed, Value: val})
			} else {
				id := &ast.Identifier{Name: key}
				members = append(members, ast.Property{Key: key, Value: id, Shorthand: true})
			}
		}
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
		}
	}
	end, err := p.expect(token.RBrace, "expected '}' to close an object literal")
	if err != nil {
		return nil, err
	}
	o := &ast.ObjectLiteral{Members: members}
	o.Sp = start.Cover(end.Span)
	return o, nil
}
