package lexer

import (
	"kimchi/internal/diag"
	"kimchi/internal/token"
)

// scanOperator consumes an operator or punctuation token starting at the
// cursor's current byte. c has already been peeked by the caller but not
// yet consumed.
func (s *Scanner) scanOperator(c byte) (token.Token, *diag.Diagnostic) {
	m := s.cur.Mark()
	s.cur.Bump()

	two := func(next byte, kind2 token.Kind, kind1 token.Kind) token.Token {
		if s.cur.Peek() == next {
			s.cur.Bump()
			return token.Token{Kind: kind2, Span: s.cur.SpanFrom(m)}
		}
		return token.Token{Kind: kind1, Span: s.cur.SpanFrom(m)}
	}

	switch c {
	case '+':
		return two('=', token.PlusAssign, token.Plus), nil
	case '-':
		if s.cur.Peek() == '>' {
			s.cur.Bump()
			return token.Token{Kind: token.Arrow, Span: s.cur.SpanFrom(m)}, nil
		}
		return two('=', token.MinusAssign, token.Minus), nil
	case '*':
		if s.cur.Peek() == '*' {
			s.cur.Bump()
			return token.Token{Kind: token.StarStar, Span: s.cur.SpanFrom(m)}, nil
		}
		return two('=', token.StarAssign, token.Star), nil
	case '/':
		return two('=', token.SlashAssign, token.Slash), nil
	case '%':
		return token.Token{Kind: token.Percent, Span: s.cur.SpanFrom(m)}, nil
	case '<':
		if s.cur.Peek() == '<' {
			s.cur.Bump()
			return token.Token{Kind: token.Shl, Span: s.cur.SpanFrom(m)}, nil
		}
		return two('=', token.LtEq, token.Lt), nil
	case '>':
		if s.cur.Peek() == '>' {
			s.cur.Bump()
			return token.Token{Kind: token.Shr, Span: s.cur.SpanFrom(m)}, nil
		}
		return two('=', token.GtEq, token.Gt), nil
	case '&':
		if s.cur.Peek() == '&' {
			s.cur.Bump()
			return token.Token{Kind: token.AndAnd, Span: s.cur.SpanFrom(m)}, nil
		}
		return token.Token{}, s.errAt(m, diag.CodeDisallowedBitwiseOp, "bare '&' is not allowed; use '&&' or the 'and' keyword")
	case '|':
		return two('|', token.OrOr, token.Pipe), nil
	case '^':
		return token.Token{Kind: token.Caret, Span: s.cur.SpanFrom(m)}, nil
	case '~':
		if s.cur.Peek() == '>' {
			s.cur.Bump()
			return token.Token{Kind: token.PipeArrow, Span: s.cur.SpanFrom(m)}, nil
		}
		return token.Token{Kind: token.Tilde, Span: s.cur.SpanFrom(m)}, nil
	case '!':
		return two('=', token.BangEq, token.Bang), nil
	case '=':
		if s.cur.Peek() == '>' {
			s.cur.Bump()
			return token.Token{Kind: token.FatArrow, Span: s.cur.SpanFrom(m)}, nil
		}
		return two('=', token.EqEq, token.Assign), nil
	case '?':
		return token.Token{Kind: token.Question, Span: s.cur.SpanFrom(m)}, nil
	case ':':
		return two(':', token.ColonColon, token.Colon), nil
	case '.':
		if s.cur.Peek() == '.' {
			s.cur.Bump()
			if s.cur.Peek() == '.' {
				s.cur.Bump()
				return token.Token{Kind: token.DotDotDot, Span: s.cur.SpanFrom(m)}, nil
			}
			return token.Token{Kind: token.DotDot, Span: s.cur.SpanFrom(m)}, nil
		}
		return token.Token{Kind: token.Dot, Span: s.cur.SpanFrom(m)}, nil
	case ',':
		return token.Token{Kind: token.Comma, Span: s.cur.SpanFrom(m)}, nil
	case ';':
		return token.Token{Kind: token.Semicolon, Span: s.cur.SpanFrom(m)}, nil
	case '(':
		return token.Token{Kind: token.LParen, Span: s.cur.SpanFrom(m)}, nil
	case ')':
		return token.Token{Kind: token.RParen, Span: s.cur.SpanFrom(m)}, nil
	case '{':
		return token.Token{Kind: token.LBrace, Span: s.cur.SpanFrom(m)}, nil
	case '}':
		return token.Token{Kind: token.RBrace, Span: s.cur.SpanFrom(m)}, nil
	case '[':
		return token.Token{Kind: token.LBracket, Span: s.cur.SpanFrom(m)}, nil
	case ']':
		return token.Token{Kind: token.RBracket, Span: s.cur.SpanFrom(m)}, nil
	default:
		return token.Token{}, s.errAt(m, diag.CodeDisallowedChar, "unexpected character")
	}
}

// scanRegex consumes a /pattern/flags literal. The opening '/' has not
// yet been consumed by the caller.
func (s *Scanner) scanRegex() (token.Token, *diag.Diagnostic) {
	m := s.cur.Mark()
	s.cur.Bump() // opening '/'

	patStart := s.cur.Mark()
	for {
		if s.cur.EOF() || s.cur.Peek() == '\n' {
			return token.Token{}, s.errAt(m, diag.CodeUnterminatedRegex, "unterminated regex literal")
		}
		c := s.cur.Peek()
		if c == '\\' {
			s.cur.Bump()
			if s.cur.EOF() || s.cur.Peek() == '\n' {
				return token.Token{}, s.errAt(m, diag.CodeUnterminatedRegex, "unterminated regex literal")
			}
			s.cur.Bump()
			continue
		}
		if c == '/' {
			break
		}
		s.cur.Bump()
	}
	patSpan := s.cur.SpanFrom(patStart)
	pattern := string(s.cur.File.Content[patSpan.Start:patSpan.End])
	s.cur.Bump() // closing '/'

	flagsStart := s.cur.Mark()
	for isRegexFlag(s.cur.Peek()) {
		s.cur.Bump()
	}
	flagsSpan := s.cur.SpanFrom(flagsStart)
	flags := string(s.cur.File.Content[flagsSpan.Start:flagsSpan.End])

	span := s.cur.SpanFrom(m)
	return token.Token{
		Kind:  token.Regex,
		Span:  span,
		Text:  string(s.cur.File.Content[span.Start:span.End]),
		Regex: &token.RegexLiteral{Pattern: pattern, Flags: flags},
	}, nil
}

func isRegexFlag(b byte) bool {
	switch b {
	case 'g', 'i', 'm', 's', 'u', 'y':
		return true
	default:
		return false
	}
}

// scanShellContent consumes the raw, brace-balanced body of a shell{...}
// block as a single token. The opening '{' has already been consumed by
// the caller; scanning stops at the matching closing '}', which is also
// consumed.
func (s *Scanner) scanShellContent() (token.Token, *diag.Diagnostic) {
	m := s.cur.Mark()
	depth := 1
	for depth > 0 {
		if s.cur.EOF() {
			return token.Token{}, s.errAt(m, diag.CodeMissingShellBody, "unterminated shell block")
		}
		switch s.cur.Peek() {
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
	span := s.cur.SpanFrom(m)
	text := string(s.cur.File.Content[span.Start:span.End])
	s.cur.Bump() // closing '}'
	return token.Token{Kind: token.ShellContent, Span: span, Text: text}, nil
}
