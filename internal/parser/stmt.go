package parser

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/token"
)

// parseStatement dispatches on the current token to the right statement
// form. It's the single recursive entry point used at program level,
// inside blocks, and inside describe{} bodies.
func (p *Parser) parseStatement() (ast.Stmt, *diag.Diagnostic) {
	switch p.peek().Kind {
	case token.KwExpose, token.KwSecret:
		return p.parseModifiedDeclaration()
	case token.KwDec:
		return p.parseDecBinding(false, false)
	case token.KwFn:
		return p.parseFunctionDecl(false, false)
	case token.KwMemo:
		p.advance()
		if !p.at(token.KwFn) {
			return nil, p.errf(diag.CodeMissingToken, "expected 'fn' after 'memo'")
		}
		return p.parseFunctionDecl(false, true)
	case token.KwArg:
		return p.parseArgDecl(false)
	case token.KwEnv:
		return p.parseEnvDecl(false)
	case token.KwEnum:
		return p.parseEnumDecl()
	case token.KwAs:
		return p.parseDepStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForInStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		t := p.advance()
		b := &ast.BreakStmt{}
		b.Sp = t.Span
		return b, nil
	case token.KwContinue:
		t := p.advance()
		c := &ast.ContinueStmt{}
		c.Sp = t.Span
		return c, nil
	case token.KwTry:
		return p.parseTryStmt()
	case token.KwThrow:
		return p.parseThrowStmt()
	case token.KwPrint:
		return p.parsePrintStmt()
	case token.KwTest:
		return p.parseTestBlock()
	case token.KwDescribe:
		return p.parseDescribeBlock()
	case token.KwExpect:
		return p.parseExpectStmt()
	case token.KwAssert:
		return p.parseAssertStmt()
	case token.KwJS:
		x, err := p.parseJSBlock(false)
		if err != nil {
			return nil, err
		}
		es := &ast.ExpressionStmt{X: x}
		es.Sp = x.Span()
		return es, nil
	case token.KwShell:
		x, err := p.parseShellBlock(false)
		if err != nil {
			return nil, err
		}
		es := &ast.ExpressionStmt{X: x}
		es.Sp = x.Span()
		return es, nil
	case token.Pipe:
		return p.parsePatternMatchStmt()
	case token.Regex:
		if p.isRegexGuardAhead() {
			return p.parsePatternMatchStmt()
		}
		return p.parseExpressionStmt()
	default:
		return p.parseExpressionStmt()
	}
}

// parseBlock parses a `{ … }` sequence of statements.
func (p *Parser) parseBlock() (*ast.BlockStmt, *diag.Diagnostic) {
	start, err := p.expect(token.LBrace, "expected '{' to start a block")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	var stmts []ast.Stmt
	for !p.at(token.RBrace) {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		p.skipNewlines()
	}
	end, err := p.expect(token.RBrace, "expected '}' to close a block")
	if err != nil {
		return nil, err
	}
	b := &ast.BlockStmt{Statements: stmts}
	b.Sp = start.Span.Cover(end.Span)
	return b, nil
}

// parseBlockAsFunctionBody parses a block with inFunctionBody set, so any
// PatternMatchStmt directly inside it knows its arms should emit returns.
func (p *Parser) parseBlockAsFunctionBody() (*ast.BlockStmt, *diag.Diagnostic) {
	prev := p.inFunctionBody
	p.inFunctionBody = true
	defer func() { p.inFunctionBody = prev }()
	return p.parseBlock()
}

// parseIfStmt parses `if cond { … } (elif cond { … })* (else { … })?`,
// rewriting each `elif` into a nested else-if IfStmt.
func (p *Parser) parseIfStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	stmt.Sp = start.Cover(then.Span())

	if p.at(token.KwElif) {
		p.advance()
		elifCond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elifThen, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		nested := &ast.IfStmt{Cond: elifCond, Then: elifThen}
		nested.Sp = elifCond.Span().Cover(elifThen.Span())
		rest, err := p.continueIfChain(nested)
		if err != nil {
			return nil, err
		}
		stmt.Else = rest
		stmt.Sp = start.Cover(rest.Span())
		return stmt, nil
	}
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			nested, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			stmt.Else = nested
			stmt.Sp = start.Cover(nested.Span())
			return stmt, nil
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
		stmt.Sp = start.Cover(elseBody.Span())
	}
	return stmt, nil
}

// continueIfChain handles a chain of `elif`s following the first one,
// folding each into nested.Else, and an optional trailing `else`.
func (p *Parser) continueIfChain(nested *ast.IfStmt) (ast.Stmt, *diag.Diagnostic) {
	if p.at(token.KwElif) {
		p.advance()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		then, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		next := &ast.IfStmt{Cond: cond, Then: then}
		next.Sp = cond.Span().Cover(then.Span())
		rest, err := p.continueIfChain(next)
		if err != nil {
			return nil, err
		}
		nested.Else = rest
		nested.Sp = nested.Sp.Cover(rest.Span())
		return nested, nil
	}
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			inner, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			nested.Else = inner
			nested.Sp = nested.Sp.Cover(inner.Span())
			return nested, nil
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		nested.Else = elseBody
		nested.Sp = nested.Sp.Cover(elseBody.Span())
	}
	return nested, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	w := &ast.WhileStmt{Cond: cond, Body: body}
	w.Sp = start.Cover(body.Span())
	return w, nil
}

// parseForInStmt parses `for x in iterable { … }` and the destructured
// form `for {a, b} in iterable { … }` / `for [a, b] in iterable { … }`.
func (p *Parser) parseForInStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'for'
	var varName string
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
		nameTok, err := p.expect(token.Ident, "expected a loop variable after 'for'")
		if err != nil {
			return nil, err
		}
		varName = nameTok.Text
	}
	if _, err := p.expect(token.KwIn, "expected 'in' in a for-loop"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	f := &ast.ForInStmt{Var: varName, Destructure: destructure, Iterable: iterable, Body: body}
	f.Sp = start.Cover(body.Span())
	return f, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'return'
	r := &ast.ReturnStmt{}
	r.Sp = start
	if p.at(token.Newline) || p.at(token.Semicolon) || p.at(token.RBrace) || p.at(token.EOF) {
		return r, nil
	}
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	r.Value = val
	r.Sp = start.Cover(val.Span())
	return r, nil
}

func (p *Parser) parseTryStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'try'
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	t := &ast.TryStmt{Block: block}
	end := block.Span()
	if p.at(token.KwCatch) {
		p.advance()
		t.HasCatch = true
		if p.at(token.LParen) {
			p.advance()
			if p.at(token.Ident) {
				paramTok := p.advance()
				t.CatchParam = paramTok.Text
			}
			if _, err := p.expect(token.RParen, "expected ')' to close a catch parameter"); err != nil {
				return nil, err
			}
		}
		catchBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		t.CatchBody = catchBody
		end = catchBody.Span()
	}
	if p.at(token.KwFinally) {
		p.advance()
		finallyBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		t.Finally = finallyBody
		end = finallyBody.Span()
	}
	t.Sp = start.Cover(end)
	return t, nil
}

func (p *Parser) parseThrowStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'throw'
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	th := &ast.ThrowStmt{Value: val}
	th.Sp = start.Cover(val.Span())
	return th, nil
}

func (p *Parser) parsePrintStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'print'
	hasParens := p.at(token.LParen)
	if hasParens {
		p.advance()
	}
	var args []ast.Expr
	end := start
	for !p.at(token.Newline) && !p.at(token.Semicolon) && !p.at(token.EOF) &&
		!(hasParens && p.at(token.RParen)) {
		a, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		end = a.Span()
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if hasParens {
		closeTok, err := p.expect(token.RParen, "expected ')' to close a print call")
		if err != nil {
			return nil, err
		}
		end = closeTok.Span
	}
	pr := &ast.PrintStmt{Args: args}
	pr.Sp = start.Cover(end)
	return pr, nil
}

func (p *Parser) parseExpressionStmt() (ast.Stmt, *diag.Diagnostic) {
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if fe, ok := x.(*ast.FlowExpr); ok {
		return fe, nil
	}
	es := &ast.ExpressionStmt{X: x}
	es.Sp = x.Span()
	return es, nil
}

// parseTestBlock parses `test "name" { … }`.
func (p *Parser) parseTestBlock() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'test'
	nameTok, err := p.expect(token.String, "expected a string name after 'test'")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	t := &ast.TestBlock{Name: nameTok.Text, Body: body}
	t.Sp = start.Cover(body.Span())
	return t, nil
}

// parseDescribeBlock parses `describe "name" { … }`, whose body is a
// bare sequence of statements (typically nested TestBlocks).
func (p *Parser) parseDescribeBlock() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'describe'
	nameTok, err := p.expect(token.String, "expected a string name after 'describe'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace, "expected '{' to start a describe block"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var stmts []ast.Stmt
	for !p.at(token.RBrace) {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		p.skipNewlines()
	}
	end, err := p.expect(token.RBrace, "expected '}' to close a describe block")
	if err != nil {
		return nil, err
	}
	d := &ast.DescribeBlock{Name: nameTok.Text, Body: stmts}
	d.Sp = start.Cover(end.Span)
	return d, nil
}

// parseExpectStmt parses `expect(actual).matcher(expected?)`.
func (p *Parser) parseExpectStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'expect'
	if _, err := p.expect(token.LParen, "expected '(' after 'expect'"); err != nil {
		return nil, err
	}
	actual, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, "expected ')' to close 'expect(...)'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Dot, "expected '.' after 'expect(...)'"); err != nil {
		return nil, err
	}
	matcherTok, err := p.expect(token.Ident, "expected a matcher name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen, "expected '(' to start a matcher call"); err != nil {
		return nil, err
	}
	var expected ast.Expr
	if !p.at(token.RParen) {
		expected, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	end, err := p.expect(token.RParen, "expected ')' to close a matcher call")
	if err != nil {
		return nil, err
	}
	e := &ast.ExpectStmt{Actual: actual, Matcher: matcherTok.Text, Expected: expected}
	e.Sp = start.Cover(end.Span)
	return e, nil
}

// parseAssertStmt parses `assert(cond, message?)`.
func (p *Parser) parseAssertStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.advance().Span // 'assert'
	if _, err := p.expect(token.LParen, "expected '(' after 'assert'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var msg ast.Expr
	if p.at(token.Comma) {
		p.advance()
		msg, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	end, err := p.expect(token.RParen, "expected ')' to close 'assert(...)'")
	if err != nil {
		return nil, err
	}
	a := &ast.AssertStmt{Cond: cond, Message: msg}
	a.Sp = start.Cover(end.Span)
	return a, nil
}
