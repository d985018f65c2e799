// Package parser builds a KimchiLang ast.Program from a token stream via
// precedence climbing, with the pattern-match and flow-composition forms
// requiring bounded lookahead on the token buffer.
package parser

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/lexer"
	"kimchi/internal/source"
	"kimchi/internal/token"
)

// Parser holds the full, already-scanned token slice for one file and a
// cursor into it; random access over the slice is what makes the
// pattern-match and flow lookaheads cheap.
type Parser struct {
	toks []token.Token
	pos  int
	fs   *source.FileSet
	file source.FileID

	// secretNames tracks identifiers bound with the `secret` modifier,
	// consulted when reassembling js{} blocks for the console-taint check.
	secretNames map[string]bool
	// immutable tracks root identifiers bound via `dec`; assigning to any
	// access chain rooted at one of these is a compile-time error.
	immutable map[string]bool
	// guardMode is set while parsing a pattern-match guard's test
	// expression, where the grammar must never descend into bitwise-or.
	guardMode bool
	// inFunctionBody is set while parsing a function or arrow-function
	// body, controlling whether a PatternMatchStmt's arms emit a return.
	inFunctionBody bool
}

// Parse tokenizes and parses the file identified by id, returning its
// Program or the first diagnostic encountered (scan or parse errors both
// fail fast, per the scanner and parser contracts).
func Parse(fs *source.FileSet, id source.FileID) (*ast.Program, *diag.Diagnostic) {
	toks, err := lexer.New(fs.Get(id)).Scan()
	if err != nil {
		return nil, err
	}
	return ParseTokens(fs, id, toks)
}

// ParseTokens parses an already-scanned token slice, used directly by the
// programmatic `parse(Tokens)` API.
func ParseTokens(fs *source.FileSet, id source.FileID, toks []token.Token) (*ast.Program, *diag.Diagnostic) {
	p := &Parser{
		toks:        toks,
		fs:          fs,
		file:        id,
		secretNames: make(map[string]bool),
		immutable:   make(map[string]bool),
	}
	return p.parseProgram()
}

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

// peekAt returns the token n slots ahead of the cursor, clamped to the
// final (EOF) token if n runs past the end of the buffer.
func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errf(code diag.Code, msg string) *diag.Diagnostic {
	d := diag.NewError(code, p.peek().Span, msg)
	return &d
}

func (p *Parser) errAt(sp source.Span, code diag.Code, msg string) *diag.Diagnostic {
	d := diag.NewError(code, sp, msg)
	return &d
}

func (p *Parser) expect(k token.Kind, msg string) (token.Token, *diag.Diagnostic) {
	if !p.at(k) {
		return token.Token{}, p.errf(diag.CodeMissingToken, msg)
	}
	return p.advance(), nil
}

// skipNewlines consumes any run of Newline tokens (and stray Semicolons,
// which are an accepted alternative statement separator).
func (p *Parser) skipNewlines() {
	for p.at(token.Newline) || p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseProgram() (*ast.Program, *diag.Diagnostic) {
	start := p.peek().Span
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.at(token.EOF) {
		st, err := p.parseTopLevelStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		p.skipNewlines()
	}
	end := p.peek().Span
	return ast.NewProgram(start.Cover(end), stmts), nil
}
