// Package lexer turns KimchiLang source bytes into a token stream, per
// the scanning rules in the language reference: context-sensitive
// regex-vs-divide disambiguation, newline-run collapsing, and the
// shell{...} raw-capture mode.
package lexer

import (
	"kimchi/internal/diag"
	"kimchi/internal/source"
	"kimchi/internal/token"
)

// Scanner produces a token stream for a single source.File.
type Scanner struct {
	cur  Cursor
	prev token.Kind // kind of the last non-trivia token returned, for regex-vs-divide

	// afterShellHeader is set the moment a 'shell' keyword is scanned and
	// stays set through its optional parenthesized input list; the next
	// '{' encountered while it's set starts a raw-capture body instead of
	// being tokenized as an ordinary brace.
	afterShellHeader bool
}

// New creates a Scanner positioned at the start of f.
func New(f *source.File) *Scanner {
	return &Scanner{cur: NewCursor(f), prev: token.Invalid}
}

func (s *Scanner) errAt(m Mark, code diag.Code, msg string) *diag.Diagnostic {
	d := diag.NewError(code, s.cur.SpanFrom(m), msg)
	return &d
}

// Scan tokenizes the entire file, stopping at the first error. On success
// the returned slice always ends with a token.EOF token.
func (s *Scanner) Scan() ([]token.Token, *diag.Diagnostic) {
	var toks []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next scans and returns the next token, collapsing comments and runs of
// blank/whitespace into at most one Newline token.
func (s *Scanner) Next() (token.Token, *diag.Diagnostic) {
	if s.afterShellHeader {
		tok, err, handled := s.tryScanShellBody()
		if handled {
			return tok, err
		}
	}

	sawNewline := false

	for {
		if s.cur.EOF() {
			break
		}
		c := s.cur.Peek()
		switch {
		case isSpaceOrTab(c):
			s.cur.Bump()
		case c == '\n':
			sawNewline = true
			s.cur.Bump()
		case c == '/' && s.cur.PeekAt(1) == '/':
			for !s.cur.EOF() && s.cur.Peek() != '\n' {
				s.cur.Bump()
			}
		case c == '/' && s.cur.PeekAt(1) == '*':
			m := s.cur.Mark()
			s.cur.Bump()
			s.cur.Bump()
			closed := false
			for !s.cur.EOF() {
				if s.cur.Peek() == '\n' {
					sawNewline = true
				}
				if s.cur.Peek() == '*' && s.cur.PeekAt(1) == '/' {
					s.cur.Bump()
					s.cur.Bump()
					closed = true
					break
				}
				s.cur.Bump()
			}
			if !closed {
				return token.Token{}, s.errAt(m, diag.CodeUnterminatedBlockComment, "unterminated block comment")
			}
		default:
			goto scanToken
		}
	}

scanToken:
	if sawNewline && s.prev != token.Invalid && s.prev != token.Newline {
		tok := token.Token{Kind: token.Newline, Span: s.cur.SpanFrom(s.cur.Mark())}
		s.prev = token.Newline
		return tok, nil
	}

	if s.cur.EOF() {
		tok := token.Token{Kind: token.EOF, Span: s.cur.SpanFrom(s.cur.Mark())}
		s.prev = token.EOF
		return tok, nil
	}

	c := s.cur.Peek()

	var tok token.Token
	var err *diag.Diagnostic

	switch {
	case isIdentStart(c):
		tok = s.scanIdentOrKeyword()
		if tok.Kind == token.KwShell {
			s.afterShellHeader = true
		}
	case isDigit(c):
		tok = s.scanNumber()
	case c == '"' || c == '\'':
		tok, err = s.scanString(c)
	case c == '`':
		tok, err = s.scanBacktick()
	case c == '/' && s.regexAllowedHere():
		tok, err = s.scanRegex()
	default:
		tok, err = s.scanOperator(c)
	}
	if err != nil {
		return token.Token{}, err
	}
	s.prev = tok.Kind
	return tok, nil
}

// regexAllowedHere reports whether a '/' at the cursor should be scanned
// as the start of a regex literal rather than the division operator: a
// regex can't immediately follow a token that ends a complete operand.
func (s *Scanner) regexAllowedHere() bool {
	if s.prev == token.Invalid {
		return true
	}
	probe := token.Token{Kind: s.prev}
	return !probe.EndsExpression()
}

// tryScanShellBody is consulted on every Next() call while afterShellHeader
// is set, i.e. from right after the 'shell' keyword through its optional
// parenthesized input list. It silently skips whitespace, newlines, and
// comments (the header never emits a Newline token): once the next
// non-trivia byte is '{' it consumes the whole raw-capture body and
// returns it as a single ShellContent token with handled=true, clearing
// the flag; otherwise it reports handled=false so the caller falls
// through to ordinary tokenizing of the input-list punctuation.
func (s *Scanner) tryScanShellBody() (token.Token, *diag.Diagnostic, bool) {
	for {
		switch {
		case isSpaceOrTab(s.cur.Peek()) || s.cur.Peek() == '\n':
			s.cur.Bump()
		case s.cur.Peek() == '/' && s.cur.PeekAt(1) == '/':
			for !s.cur.EOF() && s.cur.Peek() != '\n' {
				s.cur.Bump()
			}
		case s.cur.Peek() == '/' && s.cur.PeekAt(1) == '*':
			s.cur.Bump()
			s.cur.Bump()
			for !s.cur.EOF() && !(s.cur.Peek() == '*' && s.cur.PeekAt(1) == '/') {
				s.cur.Bump()
			}
			if !s.cur.EOF() {
				s.cur.Bump()
				s.cur.Bump()
			}
		default:
			goto done
		}
	}
done:
	if s.cur.EOF() {
		return token.Token{}, nil, false
	}
	if s.cur.Peek() != '{' {
		return token.Token{}, nil, false
	}
	s.cur.Bump() // consume '{'
	tok, err := s.scanShellContent()
	if err != nil {
		return token.Token{}, err, true
	}
	s.afterShellHeader = false
	s.prev = tok.Kind
	return tok, nil, true
}
