package parser

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/source"
	"kimchi/internal/token"
)

// isRegexGuardAhead reports whether the Regex token at the cursor is
// immediately followed (ignoring newlines) by '=>', making it a regex-form
// pattern-match arm rather than an expression statement built from a
// standalone regex literal.
func (p *Parser) isRegexGuardAhead() bool {
	i := 1
	for p.peekAt(i).Kind == token.Newline {
		i++
	}
	return p.peekAt(i).Kind == token.FatArrow
}

// parsePatternMatchStmt parses a run of consecutive guarded arms, either
// `|test| => body` or `/regex/ => body`, accumulating them into a single
// PatternMatchStmt. InFunction is set from the enclosing block's context,
// controlling whether the emitter appends a trailing return to each arm.
func (p *Parser) parsePatternMatchStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.peek().Span
	var arms []ast.MatchArm
	end := start

	for {
		switch {
		case p.at(token.Pipe):
			arm, armEnd, err := p.parseGuardArm()
			if err != nil {
				return nil, err
			}
			arms = append(arms, arm)
			end = armEnd
		case p.at(token.Regex) && p.isRegexGuardAhead():
			arm, armEnd, err := p.parseRegexArm()
			if err != nil {
				return nil, err
			}
			arms = append(arms, arm)
			end = armEnd
		default:
			goto done
		}
		p.skipNewlines()
		if !p.at(token.Pipe) && !(p.at(token.Regex) && p.isRegexGuardAhead()) {
			goto done
		}
	}

done:
	if len(arms) == 0 {
		return nil, p.errf(diag.CodeExpectedExpression, "expected at least one guarded arm in a pattern match")
	}
	m := &ast.PatternMatchStmt{Arms: arms, InFunction: p.inFunctionBody}
	m.Sp = start.Cover(end)
	return m, nil
}

// parseGuardArm parses one `|test| => body` arm. The guard expression uses
// the restricted grammar (guardMode set) that never descends into
// bitwise-or, so the closing '|' is never mistaken for that operator.
func (p *Parser) parseGuardArm() (ast.MatchArm, source.Span, *diag.Diagnostic) {
	p.advance() // opening '|'
	prevGuard := p.guardMode
	p.guardMode = true
	guard, err := p.parseAssignment()
	p.guardMode = prevGuard
	if err != nil {
		return ast.MatchArm{}, source.Span{}, err
	}
	if _, err := p.expect(token.Pipe, "expected closing '|' in a pattern guard"); err != nil {
		return ast.MatchArm{}, source.Span{}, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.FatArrow, "expected '=>' after a pattern guard"); err != nil {
		return ast.MatchArm{}, source.Span{}, err
	}
	body, err := p.parseMatchArmBody()
	if err != nil {
		return ast.MatchArm{}, source.Span{}, err
	}
	return ast.MatchArm{Guard: guard, Body: body}, body.Span(), nil
}

// parseRegexArm parses one `/pattern/flags => body` arm.
func (p *Parser) parseRegexArm() (ast.MatchArm, source.Span, *diag.Diagnostic) {
	t := p.advance() // regex literal
	p.skipNewlines()
	if _, err := p.expect(token.FatArrow, "expected '=>' after a regex pattern guard"); err != nil {
		return ast.MatchArm{}, source.Span{}, err
	}
	body, err := p.parseMatchArmBody()
	if err != nil {
		return ast.MatchArm{}, source.Span{}, err
	}
	arm := ast.MatchArm{
		IsRegex: true, RegexPat: t.Regex.Pattern, RegexFlags: t.Regex.Flags, Body: body,
	}
	return arm, body.Span(), nil
}

// parseMatchArmBody parses either a `{ … }` block or a single statement
// as one arm's body.
func (p *Parser) parseMatchArmBody() (ast.Stmt, *diag.Diagnostic) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	return p.parseStatement()
}
