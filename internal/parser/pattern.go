package parser

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/token"
)

// parseObjectPattern parses `{ a, b: x, … }` inside a `dec` destructure.
func (p *Parser) parseObjectPattern() (ast.Pattern, *diag.Diagnostic) {
	start := p.peek().Span
	p.advance() // '{'
	p.skipNewlines()
	var props []ast.ObjectPatternProp
	for !p.at(token.RBrace) {
		keyTok, err := p.expect(token.Ident, "expected a property name in a destructure pattern")
		if err != nil {
			return nil, err
		}
		var bind ast.Pattern
		if p.at(token.Colon) {
			p.advance()
			bind, err = p.parseBindTarget()
			if err != nil {
				return nil, err
			}
		} else {
			ip := &ast.IdentPattern{Name: keyTok.Text}
			ip.Sp = keyTok.Span
			bind = ip
		}
		props = append(props, ast.ObjectPatternProp{Key: keyTok.Text, Bind: bind})
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
		}
	}
	end, err := p.expect(token.RBrace, "expected '}' to close a destructure pattern")
	if err != nil {
		return nil, err
	}
	op := &ast.ObjectPattern{Props: props}
	op.Sp = start.Cover(end.Span)
	return op, nil
}

// parseArrayPattern parses `[a, , b]`; holes become explicit nil elements.
func (p *Parser) parseArrayPattern() (ast.Pattern, *diag.Diagnostic) {
	start := p.peek().Span
	p.advance() // '['
	p.skipNewlines()
	var elems []ast.Pattern
	for !p.at(token.RBracket) {
		if p.at(token.Comma) {
			elems = append(elems, nil)
			p.advance()
			p.skipNewlines()
			continue
		}
		bind, err := p.parseBindTarget()
		if err != nil {
			return nil, err
		}
		elems = append(elems, bind)
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
		}
	}
	end, err := p.expect(token.RBracket, "expected ']' to close a destructure pattern")
	if err != nil {
		return nil, err
	}
	ap := &ast.ArrayPattern{Elements: elems}
	ap.Sp = start.Cover(end.Span)
	return ap, nil
}

// parseBindTarget parses one leaf or nested pattern inside a destructure.
func (p *Parser) parseBindTarget() (ast.Pattern, *diag.Diagnostic) {
	switch {
	case p.at(token.LBrace):
		return p.parseObjectPattern()
	case p.at(token.LBracket):
		return p.parseArrayPattern()
	default:
		nameTok, err := p.expect(token.Ident, "expected a binding name in a destructure pattern")
		if err != nil {
			return nil, err
		}
		ip := &ast.IdentPattern{Name: nameTok.Text}
		ip.Sp = nameTok.Span
		return ip, nil
	}
}
