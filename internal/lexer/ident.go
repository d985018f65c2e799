package lexer

import "kimchi/internal/token"

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// scanIdentOrKeyword consumes an identifier and classifies it as a
// keyword if it matches one of the reserved words.
func (s *Scanner) scanIdentOrKeyword() token.Token {
	m := s.cur.Mark()
	for !s.cur.EOF() && isIdentContinue(s.cur.Peek()) {
		s.cur.Bump()
	}
	span := s.cur.SpanFrom(m)
	text := string(s.cur.File.Content[span.Start:span.End])

	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}
