package parser

import (
	"strings"

	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/lexer"
	"kimchi/internal/source"
	"kimchi/internal/token"
)

// parseTemplateLiteral splits a TemplateString token's text on the
// scanner's sentinel marks and re-parses each embedded expression span
// through a fresh scanner + parser instance, per the "no cycles" design
// note: the resulting expression ASTs are embedded as children, never
// re-entering the outer token stream.
func (p *Parser) parseTemplateLiteral(t token.Token) (ast.Expr, *diag.Diagnostic) {
	var parts []string
	var exprs []ast.Expr

	text := t.Text
	for {
		openIdx := strings.Index(text, token.MarkOpen)
		if openIdx < 0 {
			parts = append(parts, text)
			break
		}
		parts = append(parts, text[:openIdx])
		rest := text[openIdx+len(token.MarkOpen):]
		closeIdx := strings.Index(rest, token.MarkClose)
		if closeIdx < 0 {
			return nil, p.errAt(t.Span, diag.CodeExpectedExpression, "malformed template interpolation")
		}
		exprText := rest[:closeIdx]
		text = rest[closeIdx+len(token.MarkClose):]

		expr, err := parseEmbeddedExpression(p.fs, exprText)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	tl := &ast.TemplateLiteral{Parts: parts, Expressions: exprs}
	tl.Sp = t.Span
	return tl, nil
}

// parseEmbeddedExpression tokenizes and parses src as a standalone
// expression, used for template interpolations. It runs against its own
// virtual file rather than the enclosing FileSet's file, since it has no
// byte range within the outer source.
func parseEmbeddedExpression(fs *source.FileSet, src string) (ast.Expr, *diag.Diagnostic) {
	vfs := source.NewFileSet()
	id := vfs.AddVirtual("<template-expr>", []byte(src))
	toks, err := lexer.New(vfs.Get(id)).Scan()
	if err != nil {
		return nil, err
	}
	sub := &Parser{
		toks:        toks,
		fs:          vfs,
		file:        id,
		secretNames: make(map[string]bool),
		immutable:   make(map[string]bool),
	}
	sub.skipNewlines()
	return sub.parseExpression()
}
