package parser

import (
	"regexp"
	"strconv"
	"strings"

	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/source"
	"kimchi/internal/token"
)

// parseJSBlock parses `js(inputs…) { … }`. The body is not parsed into
// an AST: the parser consumes its tokens and reassembles readable JS
// source text via tokenToJS, then checks that text against every secret
// input's console-taint pattern.
func (p *Parser) parseJSBlock(asExpression bool) (ast.Expr, *diag.Diagnostic) {
	start := p.advance().Span // 'js'
	inputs, err := p.parseOptionalInputList()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.LBrace, "expected '{' to start a js block"); err != nil {
		return nil, err
	}
	raw, end, err := p.reassembleJSBody()
	if err != nil {
		return nil, err
	}

	for _, in := range inputs {
		if !p.secretNames[in] {
			continue
		}
		if consoleTaintPattern(in).MatchString(raw) {
			return nil, p.errAt(start.Cover(end), diag.CodeSecretInConsole,
				"secret '"+in+"' must not be passed to a console.* call inside a js block")
		}
	}

	jb := &ast.JSBlock{Inputs: inputs, Raw: raw, AsExpression: asExpression}
	jb.Sp = start.Cover(end)
	return jb, nil
}

// parseShellBlock parses `shell(inputs…) { … }`. The scanner itself
// captures the body verbatim in raw-capture mode the moment it sees the
// opening '{' following the header, so by the time the parser reaches it
// the token stream already holds a single ShellContent token in place of
// the usual brace-delimited token run.
func (p *Parser) parseShellBlock(asExpression bool) (ast.Expr, *diag.Diagnostic) {
	start := p.advance().Span // 'shell'
	inputs, err := p.parseOptionalInputList()
	if err != nil {
		return nil, err
	}
	bodyTok, err := p.expect(token.ShellContent, "expected '{' to start a shell block")
	if err != nil {
		return nil, err
	}
	sb := &ast.ShellBlock{Inputs: inputs, Raw: strings.TrimSpace(bodyTok.Text), AsExpression: asExpression}
	sb.Sp = start.Cover(bodyTok.Span)
	return sb, nil
}

func (p *Parser) parseOptionalInputList() ([]string, *diag.Diagnostic) {
	if !p.at(token.LParen) {
		return nil, nil
	}
	p.advance()
	var inputs []string
	for !p.at(token.RParen) {
		idTok, err := p.expect(token.Ident, "expected an input identifier")
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, idTok.Text)
		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RParen, "expected ')' to close an input list"); err != nil {
		return nil, err
	}
	return inputs, nil
}

// reassembleJSBody consumes tokens up to the matching '}' (the opening
// '{' has already been consumed by the caller) and rebuilds JS source
// text from their lexemes.
func (p *Parser) reassembleJSBody() (string, source.Span, *diag.Diagnostic) {
	var sb strings.Builder
	depth := 1
	lastSpan := p.peek().Span
	for depth > 0 {
		if p.at(token.EOF) {
			return "", lastSpan, p.errf(diag.CodeMissingToken, "unterminated js block")
		}
		cur := p.peek()
		switch cur.Kind {
		case token.LBrace:
			depth++
			sb.WriteString("{")
			p.advance()
		case token.RBrace:
			depth--
			lastSpan = cur.Span
			if depth == 0 {
				p.advance()
				break
			}
			sb.WriteString("}")
			p.advance()
		case token.EqEq:
			if p.peekAt(1).Kind == token.Assign {
				sb.WriteString(" === ")
				p.advance()
				p.advance()
			} else {
				sb.WriteString(" == ")
				p.advance()
			}
		case token.BangEq:
			if p.peekAt(1).Kind == token.Assign {
				sb.WriteString(" !== ")
				p.advance()
				p.advance()
			} else {
				sb.WriteString(" != ")
				p.advance()
			}
		case token.Newline:
			sb.WriteString("\n")
			p.advance()
		case token.String:
			sb.WriteString(strconv.Quote(cur.Text))
			p.advance()
		case token.TemplateString:
			sb.WriteString("`" + cur.Text + "`")
			p.advance()
		default:
			sb.WriteString(tokenToJS(cur))
			sb.WriteString(" ")
			p.advance()
		}
	}
	return sb.String(), lastSpan, nil
}

// tokenToJS renders a single token's lexeme for JS reconstruction;
// identifiers, numbers, and keywords reuse their source text or canonical
// spelling, punctuation uses the token kind's spelling.
func tokenToJS(t token.Token) string {
	switch t.Kind {
	case token.Ident, token.Number:
		return t.Text
	default:
		return t.Kind.String()
	}
}

var consoleMethodsPattern = `log|error|warn|info|debug|trace`

// consoleTaintPattern builds the per-input regex checking whether name
// appears as an argument to any console.<method>(…) call in raw JS text.
func consoleTaintPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`console\.(?:` + consoleMethodsPattern + `)\([^)]*\b` + regexp.QuoteMeta(name) + `\b[^)]*\)`)
}
