package parser

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/token"
)

// parseTopLevelStatement is the entry point for both program-level and
// block-level statement parsing; KimchiLang has no separate top-level
// grammar beyond what's already legal inside a block.
func (p *Parser) parseTopLevelStatement() (ast.Stmt, *diag.Diagnostic) {
	return p.parseStatement()
}

// parseModifiedDeclaration handles the `expose` / `secret` prefixes,
// which must precede a valid declaration form.
func (p *Parser) parseModifiedDeclaration() (ast.Stmt, *diag.Diagnostic) {
	exposed := false
	secret := false
	for p.at(token.KwExpose) || p.at(token.KwSecret) {
		if p.at(token.KwExpose) {
			p.advance()
			exposed = true
		} else {
			p.advance()
			secret = true
		}
	}

	switch {
	case p.at(token.KwDec):
		return p.parseDecBinding(exposed, secret)
	case p.at(token.KwFn):
		if secret {
			return nil, p.errf(diag.CodeDisallowedModifier, "'secret' is not valid on 'fn'")
		}
		return p.parseFunctionDecl(exposed, false)
	case p.at(token.KwMemo):
		if secret {
			return nil, p.errf(diag.CodeDisallowedModifier, "'secret' is not valid on 'memo fn'")
		}
		p.advance()
		if !p.at(token.KwFn) {
			return nil, p.errf(diag.CodeMissingToken, "expected 'fn' after 'memo'")
		}
		return p.parseFunctionDecl(exposed, true)
	case p.at(token.KwArg):
		return p.parseArgDecl(secret)
	case p.at(token.KwEnv):
		return p.parseEnvDecl(secret)
	default:
		return nil, p.errf(diag.CodeDisallowedModifier, "'expose'/'secret' must precede 'dec', 'fn', 'memo fn', 'arg', or 'env'")
	}
}

func (p *Parser) parseDecBinding(exposed, secret bool) (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'dec'

	var name string
	var destructure ast.Pattern
	switch {
	case p.at(token.LBrace):
		pat, err := p.parseObjectPattern()
		if err != nil {
			return nil, err
		}
		destructure = pat
	case p.at(token.LBracket):
		pat, err := p.parseArrayPattern()
		if err != nil {
			return nil, err
		}
		destructure = pat
	default:
		nameTok, err := p.expect(token.Ident, "expected a binding name after 'dec'")
		if err != nil {
			return nil, err
		}
		name = nameTok.Text
	}

	if _, err := p.expect(token.Assign, "expected '=' in 'dec' binding"); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if name != "" {
		p.immutable[name] = true
		if secret {
			p.secretNames[name] = true
		}
	} else {
		collectPatternNames(destructure, func(n string) {
			p.immutable[n] = true
			if secret {
				p.secretNames[n] = true
			}
		})
	}

	d := &ast.DecBinding{
		Name: name, Destructure: destructure, Init: init, Exposed: exposed, Secret: secret,
	}
	d.Sp = start.Cover(init.Span())
	return d, nil
}

func collectPatternNames(pat ast.Pattern, fn func(string)) {
	switch v := pat.(type) {
	case *ast.IdentPattern:
		fn(v.Name)
	case *ast.ObjectPattern:
		for _, prop := range v.Props {
			collectPatternNames(prop.Bind, fn)
		}
	case *ast.ArrayPattern:
		for _, el := range v.Elements {
			if el != nil {
				collectPatternNames(el, fn)
			}
		}
	}
}

func (p *Parser) parseFunctionDecl(exposed, memoized bool) (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'fn'
	async := false
	if p.at(token.KwAsync) {
		p.advance()
		async = true
	}
	nameTok, err := p.expect(token.Ident, "expected a function name after 'fn'")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockAsFunctionBody()
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDecl{
		Name: nameTok.Text, Params: params, Body: body,
		Async: async, Memoized: memoized, Exposed: exposed,
	}
	fn.Sp = start.Cover(body.Span())
	return fn, nil
}

func (p *Parser) parseParamList() ([]ast.Param, *diag.Diagnostic) {
	if _, err := p.expect(token.LParen, "expected '(' to start a parameter list"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(token.RParen) {
		rest := false
		if p.at(token.DotDotDot) {
			p.advance()
			rest = true
		}
		nameTok, err := p.expect(token.Ident, "expected a parameter name")
		if err != nil {
			return nil, err
		}
		var def ast.Expr
		if p.at(token.Assign) {
			p.advance()
			def, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, ast.Param{Name: nameTok.Text, Default: def, Rest: rest})
		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RParen, "expected ')' to close a parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseEnumDecl() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'enum'
	nameTok, err := p.expect(token.Ident, "expected an enum name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace, "expected '{' to start an enum body"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var members []ast.EnumMember
	for !p.at(token.RBrace) {
		memberTok, err := p.expect(token.Ident, "expected an enum member name")
		if err != nil {
			return nil, err
		}
		var explicit *int64
		if p.at(token.Assign) {
			p.advance()
			numTok, err := p.expect(token.Number, "expected a numeric literal for an explicit enum value")
			if err != nil {
				return nil, err
			}
			v := parseIntLiteral(numTok.Text)
			explicit = &v
		}
		members = append(members, ast.EnumMember{Name: memberTok.Text, ExplicitValue: explicit})
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
		}
	}
	end, err := p.expect(token.RBrace, "expected '}' to close an enum body")
	if err != nil {
		return nil, err
	}
	e := &ast.EnumDecl{Name: nameTok.Text, Members: members}
	e.Sp = start.Cover(end.Span)
	return e, nil
}

func (p *Parser) parseArgDecl(secret bool) (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'arg'
	required := false
	if p.at(token.Bang) {
		p.advance()
		required = true
	}
	nameTok, err := p.expect(token.Ident, "expected an argument name after 'arg'")
	if err != nil {
		return nil, err
	}
	var def ast.Expr
	if p.at(token.Assign) {
		p.advance()
		def, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if secret {
		p.secretNames[nameTok.Text] = true
	}
	a := &ast.ArgDecl{Name: nameTok.Text, Required: required, Default: def, Secret: secret}
	end := nameTok.Span
	if def != nil {
		end = def.Span()
	}
	a.Sp = start.Cover(end)
	return a, nil
}

func (p *Parser) parseEnvDecl(secret bool) (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'env'
	required := false
	if p.at(token.Bang) {
		p.advance()
		required = true
	}
	nameTok, err := p.expect(token.Ident, "expected an environment variable name after 'env'")
	if err != nil {
		return nil, err
	}
	var def ast.Expr
	if p.at(token.Assign) {
		p.advance()
		def, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if secret {
		p.secretNames[nameTok.Text] = true
	}
	e := &ast.EnvDecl{Name: nameTok.Text, Required: required, Default: def, Secret: secret}
	end := nameTok.Span
	if def != nil {
		end = def.Span()
	}
	e.Sp = start.Cover(end)
	return e, nil
}

func (p *Parser) parseDepStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'as'
	aliasTok, err := p.expect(token.Ident, "expected an alias name after 'as'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwDep, "expected 'dep' after the alias name"); err != nil {
		return nil, err
	}
	firstSeg, err := p.expect(token.Ident, "expected a dependency path")
	if err != nil {
		return nil, err
	}
	path := []string{firstSeg.Text}
	lastSeg := firstSeg.Span
	for p.at(token.Dot) {
		p.advance()
		seg, err := p.expect(token.Ident, "expected an identifier after '.' in a dependency path")
		if err != nil {
			return nil, err
		}
		path = append(path, seg.Text)
		lastSeg = seg.Span
	}
	var override ast.Expr
	if p.at(token.LParen) {
		p.advance()
		if !p.at(token.RParen) {
			ov, err := p.parseObjectLiteral()
			if err != nil {
				return nil, err
			}
			override = ov
		}
		closeTok, err := p.expect(token.RParen, "expected ')' to close a dependency override")
		if err != nil {
			return nil, err
		}
		lastSeg = closeTok.Span
	}
	dep := ast.NewDepStmt(start.Cover(lastSeg), aliasTok.Text, path, override)
	return dep, nil
}

func parseIntLiteral(raw string) int64 {
	var n int64
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
	}
	return n
}
