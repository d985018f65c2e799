package lexer

import (
	"strings"

	"kimchi/internal/diag"
	"kimchi/internal/token"
)

// scanString consumes a '"' or '\'' delimited string literal. When a
// `${` interpolation marker is found it switches the result to a
// TemplateString: each embedded expression's raw text is framed with
// token.MarkOpen/token.MarkClose sentinels so the parser can split parts
// from expressions without re-scanning escapes.
func (s *Scanner) scanString(quote byte) (token.Token, *diag.Diagnostic) {
	m := s.cur.Mark()
	s.cur.Bump() // opening quote

	var buf strings.Builder
	isTemplate := false

	for {
		if s.cur.EOF() {
			return token.Token{}, s.errAt(m, diag.CodeUnterminatedString, "unterminated string literal")
		}
		c := s.cur.Peek()
		if c == quote {
			s.cur.Bump()
			break
		}
		if c == '\n' {
			return token.Token{}, s.errAt(m, diag.CodeUnterminatedString, "unterminated string literal")
		}
		if c == '\\' {
			s.cur.Bump()
			if s.cur.EOF() {
				return token.Token{}, s.errAt(m, diag.CodeUnterminatedString, "unterminated string literal")
			}
			e := s.cur.Bump()
			buf.WriteByte(decodeEscape(e))
			continue
		}
		if c == '$' && s.cur.PeekAt(1) == '{' {
			isTemplate = true
			s.cur.Bump() // '$'
			s.cur.Bump() // '{'
			buf.WriteString(token.MarkOpen)

			depth := 1
			exprStart := s.cur.Mark()
			for depth > 0 {
				if s.cur.EOF() {
					return token.Token{}, s.errAt(exprStart, diag.CodeUnterminatedInterp, "unterminated interpolation")
				}
				b := s.cur.Peek()
				switch b {
				case '{':
					depth++
					s.cur.Bump()
				case '}':
					depth--
					if depth == 0 {
						break
					}
					s.cur.Bump()
				default:
					s.cur.Bump()
				}
				if depth == 0 {
					break
				}
			}
			exprSpan := s.cur.SpanFrom(exprStart)
			buf.Write(s.cur.File.Content[exprSpan.Start:exprSpan.End])
			s.cur.Bump() // closing '}'
			buf.WriteString(token.MarkClose)
			continue
		}
		s.cur.Bump()
		buf.WriteByte(c)
	}

	span := s.cur.SpanFrom(m)
	kind := token.String
	if isTemplate {
		kind = token.TemplateString
	}
	return token.Token{Kind: kind, Span: span, Text: buf.String()}, nil
}

// decodeEscape maps a single escaped character to its literal byte value.
// Any escape not in the table decodes to itself (the backslash is simply
// dropped), matching the "any other escaped char is the literal char" rule.
func decodeEscape(e byte) byte {
	switch e {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default: // \\ \" \' \` \$ and any other escaped byte
		return e
	}
}

// scanBacktick consumes a backtick literal verbatim, delimiters included;
// no interpolation is recognized at scan time.
func (s *Scanner) scanBacktick() (token.Token, *diag.Diagnostic) {
	m := s.cur.Mark()
	s.cur.Bump() // opening `
	for {
		if s.cur.EOF() {
			return token.Token{}, s.errAt(m, diag.CodeUnterminatedString, "unterminated backtick literal")
		}
		if s.cur.Bump() == '`' {
			break
		}
	}
	span := s.cur.SpanFrom(m)
	return token.Token{Kind: token.Backtick, Span: span, Text: string(s.cur.File.Content[span.Start:span.End])}, nil
}
