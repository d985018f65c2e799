package token

import "kimchi/internal/source"

// Sentinel markers framing an embedded expression inside a TemplateString
// token's Text, e.g. `text0` + MarkOpen + `expr0` + MarkClose + `text1`.
// Control characters unlikely to appear in source text; the parser splits
// on them and feeds each expr span to a nested scanner+parser.
const (
	MarkOpen  = "\x02"
	MarkClose = "\x03"
)

// RegexLiteral carries a regex literal's structured payload.
type RegexLiteral struct {
	Pattern string
	Flags   string
}

// Token is a single scanned lexical unit.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string        // raw lexeme: identifier name, numeric literal's exact source form, string contents, shell body, …
	Regex *RegexLiteral // populated only when Kind == token.Regex
}

// IsLiteral reports whether the token is a literal value (not an identifier).
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, TemplateString, Backtick, Regex, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// EndsExpression reports whether a token of this kind can be the last
// token of a complete operand — used by the scanner's regex-vs-divide
// heuristic: a '/' following one of these is division, not a regex start.
func (t Token) EndsExpression() bool {
	switch t.Kind {
	case Number, String, TemplateString, Backtick, Ident, KwTrue, KwFalse, KwNull,
		RParen, RBracket, RBrace, Regex:
		return true
	default:
		return false
	}
}
