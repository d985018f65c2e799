package static

import (
	"kimchi/internal/diag"
	"kimchi/internal/lexer"
	"kimchi/internal/source"
	"kimchi/internal/token"
)

// Load parses a `.static` file's content into a File. modulePath is
// carried only for diagnostic context; the loader does not consult or
// mutate the ExportRegistry.
func Load(fs *source.FileSet, id source.FileID, modulePath string) (*File, *diag.Diagnostic) {
	toks, err := lexer.New(fs.Get(id)).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: filterTrivia(toks)}
	return p.parseFile()
}

// filterTrivia drops Newline tokens; the static grammar treats newlines
// and commas as interchangeable separators, so newline-run collapsing at
// this level would only get in the way.
func filterTrivia(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != token.Newline {
			out = append(out, t)
		}
	}
	return out
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) peek() token.Token  { return p.toks[p.pos] }
func (p *parser) at(k token.Kind) bool { return p.peek().Kind == k }
func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *parser) errf(code diag.Code, msg string) *diag.Diagnostic {
	d := diag.NewError(code, p.peek().Span, msg)
	return &d
}

func (p *parser) expect(k token.Kind, msg string) (token.Token, *diag.Diagnostic) {
	if !p.at(k) {
		return token.Token{}, p.errf(diag.CodeMissingToken, msg)
	}
	return p.advance(), nil
}

func (p *parser) parseFile() (*File, *diag.Diagnostic) {
	f := &File{}
	for !p.at(token.EOF) {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		f.Declarations = append(f.Declarations, *decl)
	}
	return f, nil
}

func (p *parser) parseDeclaration() (*Declaration, *diag.Diagnostic) {
	secret := false
	if p.at(token.KwSecret) {
		p.advance()
		secret = true
	}
	nameTok, err := p.expect(token.Ident, "expected a declaration name")
	if err != nil {
		return nil, err
	}
	val, err := p.parseValue(secret)
	if err != nil {
		return nil, err
	}
	return &Declaration{Name: nameTok.Text, Value: val}, nil
}

// parseValue parses one value form and applies the secret flag inherited
// from an enclosing `secret` prefix (declaration-level or property-level).
func (p *parser) parseValue(secret bool) (Node, *diag.Diagnostic) {
	switch p.peek().Kind {
	case token.String, token.TemplateString:
		t := p.advance()
		return Literal{Kind: LitString, Raw: t.Text, Secret: secret}, nil
	case token.Number:
		t := p.advance()
		return Literal{Kind: LitNumber, Raw: t.Text, Secret: secret}, nil
	case token.KwTrue:
		p.advance()
		return Literal{Kind: LitBool, Bool: true, Secret: secret}, nil
	case token.KwFalse:
		p.advance()
		return Literal{Kind: LitBool, Bool: false, Secret: secret}, nil
	case token.KwNull:
		p.advance()
		return Literal{Kind: LitNull, Secret: secret}, nil
	case token.LBracket:
		return p.parseArray(secret)
	case token.LBrace:
		return p.parseObject(secret)
	case token.Backtick:
		return p.parseEnum(p.advance(), secret)
	case token.Ident:
		return p.parseReference(secret)
	default:
		return nil, p.errf(diag.CodeExpectedExpression, "expected a static value")
	}
}

func (p *parser) parseReference(secret bool) (Node, *diag.Diagnostic) {
	first, err := p.expect(token.Ident, "expected an identifier")
	if err != nil {
		return nil, err
	}
	path := []string{first.Text}
	for p.at(token.Dot) {
		p.advance()
		seg, err := p.expect(token.Ident, "expected an identifier after '.'")
		if err != nil {
			return nil, err
		}
		path = append(path, seg.Text)
	}
	return Reference{Path: path, Secret: secret}, nil
}

// skipSeparators consumes any run of commas (newlines were already
// stripped by filterTrivia).
func (p *parser) skipSeparators() {
	for p.at(token.Comma) {
		p.advance()
	}
}

func (p *parser) parseArray(secret bool) (Node, *diag.Diagnostic) {
	if _, err := p.expect(token.LBracket, "expected '['"); err != nil {
		return nil, err
	}
	arr := Array{Secret: secret}
	p.skipSeparators()
	for !p.at(token.RBracket) {
		v, err := p.parseValue(false)
		if err != nil {
			return nil, err
		}
		arr.Values = append(arr.Values, v)
		p.skipSeparators()
	}
	if _, err := p.expect(token.RBracket, "expected ']'"); err != nil {
		return nil, err
	}
	return arr, nil
}

func (p *parser) parseObject(secret bool) (Node, *diag.Diagnostic) {
	if _, err := p.expect(token.LBrace, "expected '{'"); err != nil {
		return nil, err
	}
	obj := Object{Secret: secret}
	p.skipSeparators()
	for !p.at(token.RBrace) {
		propSecret := false
		if p.at(token.KwSecret) {
			p.advance()
			propSecret = true
		}
		key, err := p.expect(token.Ident, "expected a property key")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Assign, "expected '=' after property key"); err != nil {
			return nil, err
		}
		v, err := p.parseValue(propSecret)
		if err != nil {
			return nil, err
		}
		obj.Props = append(obj.Props, ObjectProp{Key: key.Text, Value: v})
		p.skipSeparators()
	}
	if _, err := p.expect(token.RBrace, "expected '}'"); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseEnum parses the backtick form's inner text (a sequence of
// `MEMBER = value` pairs) by re-scanning it with a fresh scanner.
func (p *parser) parseEnum(bt token.Token, secret bool) (Node, *diag.Diagnostic) {
	inner := bt.Text
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("<static-enum>", []byte(inner))
	toks, err := lexer.New(fs.Get(id)).Scan()
	if err != nil {
		return nil, err
	}
	sub := &parser{toks: filterTrivia(toks)}

	e := Enum{Secret: secret}
	sub.skipSeparators()
	for !sub.at(token.EOF) {
		name, err := sub.expect(token.Ident, "expected an enum member name")
		if err != nil {
			return nil, err
		}
		if _, err := sub.expect(token.Assign, "expected '=' after enum member name"); err != nil {
			return nil, err
		}
		v, err := sub.parseValue(false)
		if err != nil {
			return nil, err
		}
		e.Members = append(e.Members, EnumMember{Name: name.Text, Value: v})
		sub.skipSeparators()
	}
	return e, nil
}
