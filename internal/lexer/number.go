package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"kimchi/internal/token"
)

// scanNumber consumes a numeric literal and returns it with its exact
// source text preserved, so the emitter can re-emit "0xFF" rather than
// "255". It handles 0x/0X hex, 0b/0B binary, 0o/0O octal, decimal with an
// optional fractional part (only when '.' is followed by a digit), and an
// optional [eE][+-]?digits exponent.
func (s *Scanner) scanNumber() token.Token {
	m := s.cur.Mark()

	if s.cur.Peek() == '0' {
		b0, b1, ok := s.cur.Peek2()
		if ok {
			switch b1 {
			case 'x', 'X':
				s.cur.Bump()
				s.cur.Bump()
				for isHexDigit(s.cur.Peek()) || s.cur.Peek() == '_' {
					s.cur.Bump()
				}
				return s.finishNumber(m)
			case 'b', 'B':
				s.cur.Bump()
				s.cur.Bump()
				for isBinDigit(s.cur.Peek()) || s.cur.Peek() == '_' {
					s.cur.Bump()
				}
				return s.finishNumber(m)
			case 'o', 'O':
				s.cur.Bump()
				s.cur.Bump()
				for isOctDigit(s.cur.Peek()) || s.cur.Peek() == '_' {
					s.cur.Bump()
				}
				return s.finishNumber(m)
			}
			_ = b0
		}
	}

	for isDigit(s.cur.Peek()) || s.cur.Peek() == '_' {
		s.cur.Bump()
	}

	if s.cur.Peek() == '.' {
		if next := s.cur.PeekAt(1); isDigit(next) {
			s.cur.Bump() // '.'
			for isDigit(s.cur.Peek()) || s.cur.Peek() == '_' {
				s.cur.Bump()
			}
		}
	}

	if b := s.cur.Peek(); b == 'e' || b == 'E' {
		save := s.cur.Mark()
		s.cur.Bump()
		if b := s.cur.Peek(); b == '+' || b == '-' {
			s.cur.Bump()
		}
		if isDigit(s.cur.Peek()) {
			for isDigit(s.cur.Peek()) {
				s.cur.Bump()
			}
		} else {
			s.cur.Reset(save) // not actually an exponent; leave 'e'/'E' unconsumed
		}
	}

	return s.finishNumber(m)
}

func (s *Scanner) finishNumber(m Mark) token.Token {
	span := s.cur.SpanFrom(m)
	n, err := safecast.Conv[uint32](span.Len())
	if err != nil || n == 0 {
		panic(fmt.Errorf("kimchi/lexer: impossible empty numeric literal at %v", span))
	}
	text := string(s.cur.File.Content[span.Start:span.End])
	return token.Token{Kind: token.Number, Span: span, Text: text}
}
