package lexer

import (
	"testing"

	"kimchi/internal/source"
	"kimchi/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.km", []byte(src))
	toks, err := New(fs.Get(id)).Scan()
	if err != nil {
		t.Fatalf("unexpected scan error: %s", err.Message)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tk := range toks {
		ks[i] = tk.Kind
	}
	return ks
}

func TestScanIdentAndKeyword(t *testing.T) {
	toks := scanAll(t, "dec x = fn")
	got := kinds(toks)
	want := []token.Kind{token.KwDec, token.Ident, token.Assign, token.KwFn, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if toks[1].Text != "x" {
		t.Errorf("ident text = %q, want x", toks[1].Text)
	}
}

func TestScanNumberPreservesRawText(t *testing.T) {
	cases := []string{"0xFF", "0b1010", "0o17", "42", "3.14", "1e10", "1.5e-3", "1_000"}
	for _, c := range cases {
		toks := scanAll(t, c)
		if toks[0].Kind != token.Number {
			t.Fatalf("%q: kind = %s, want number", c, toks[0].Kind)
		}
		if toks[0].Text != c {
			t.Errorf("%q: text = %q, want exact raw form", c, toks[0].Text)
		}
	}
}

func TestScanNumberExponentBacktrack(t *testing.T) {
	// "1e" with no digits after 'e' is not an exponent; 'e' is left
	// unconsumed for the next token to pick up as an identifier start.
	toks := scanAll(t, "1e x")
	if toks[0].Kind != token.Number || toks[0].Text != "1" {
		t.Fatalf("number token = %+v", toks[0])
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "e" {
		t.Fatalf("ident token = %+v", toks[1])
	}
}

func TestScanStringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\nb\tc\\d\"e"`)
	if toks[0].Kind != token.String {
		t.Fatalf("kind = %s, want string", toks[0].Kind)
	}
	want := "a\nb\tc\\d\"e"
	if toks[0].Text != want {
		t.Errorf("text = %q, want %q", toks[0].Text, want)
	}
}

func TestScanTemplateStringInterpolation(t *testing.T) {
	toks := scanAll(t, `"hi ${name}!"`)
	if toks[0].Kind != token.TemplateString {
		t.Fatalf("kind = %s, want template-string", toks[0].Kind)
	}
	want := "hi " + token.MarkOpen + "name" + token.MarkClose + "!"
	if toks[0].Text != want {
		t.Errorf("text = %q, want %q", toks[0].Text, want)
	}
}

func TestScanTemplateStringNestedBraces(t *testing.T) {
	toks := scanAll(t, `"v=${ {a:1}.a }"`)
	if toks[0].Kind != token.TemplateString {
		t.Fatalf("kind = %s, want template-string", toks[0].Kind)
	}
	want := "v=" + token.MarkOpen + " {a:1}.a " + token.MarkClose
	if toks[0].Text != want {
		t.Errorf("text = %q, want %q", toks[0].Text, want)
	}
}

func TestScanBacktickVerbatim(t *testing.T) {
	toks := scanAll(t, "`raw ${not interpolated}`")
	if toks[0].Kind != token.Backtick {
		t.Fatalf("kind = %s, want backtick", toks[0].Kind)
	}
	want := "`raw ${not interpolated}`"
	if toks[0].Text != want {
		t.Errorf("text = %q, want %q", toks[0].Text, want)
	}
}

func TestRegexVsDivideDisambiguation(t *testing.T) {
	// After '=' a '/' starts a regex.
	toks := scanAll(t, `dec r = /ab\/c/gi`)
	var found bool
	for _, tk := range toks {
		if tk.Kind == token.Regex {
			found = true
			if tk.Regex.Pattern != `ab\/c` || tk.Regex.Flags != "gi" {
				t.Errorf("regex = %+v", tk.Regex)
			}
		}
	}
	if !found {
		t.Fatalf("no regex token found in %v", kinds(toks))
	}

	// After an identifier (ends an expression) a '/' is division.
	toks = scanAll(t, "a / b")
	if toks[1].Kind != token.Slash {
		t.Fatalf("kind = %s, want slash (division)", toks[1].Kind)
	}
}

func TestNewlineRunsCollapse(t *testing.T) {
	toks := scanAll(t, "a\n\n\nb")
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Newline, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLeadingNewlinesSuppressed(t *testing.T) {
	toks := scanAll(t, "\n\n\na")
	if toks[0].Kind != token.Ident {
		t.Fatalf("first token = %s, want ident (no leading newline)", toks[0].Kind)
	}
}

func TestLineAndBlockCommentsSkipped(t *testing.T) {
	toks := scanAll(t, "a // comment\n/* block\ncomment */ b")
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Newline, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnterminatedBlockCommentErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.km", []byte("/* never closed"))
	_, err := New(fs.Get(id)).Scan()
	if err == nil {
		t.Fatal("expected an unterminated block comment error")
	}
}

func TestUnterminatedStringErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.km", []byte(`"no closing quote`))
	_, err := New(fs.Get(id)).Scan()
	if err == nil {
		t.Fatal("expected an unterminated string error")
	}
}

func TestBareAmpersandRejected(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.km", []byte("a & b"))
	_, err := New(fs.Get(id)).Scan()
	if err == nil {
		t.Fatal("expected bare '&' to be rejected")
	}
}

func TestOperatorTokens(t *testing.T) {
	toks := scanAll(t, "== != <= >= && || ** -> => ~> :: .. ...")
	got := kinds(toks)
	want := []token.Kind{
		token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.AndAnd, token.OrOr,
		token.StarStar, token.Arrow, token.FatArrow, token.PipeArrow,
		token.ColonColon, token.DotDot, token.DotDotDot, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestShellBodyRawCapture(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.km", []byte("shell { echo { nested } done }"))
	sc := New(fs.Get(id))

	kw, err := sc.Next()
	if err != nil || kw.Kind != token.KwShell {
		t.Fatalf("kw = %+v, err = %v", kw, err)
	}
	body, err := sc.Next()
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Message)
	}
	if body.Kind != token.ShellContent {
		t.Fatalf("kind = %s, want shell-content", body.Kind)
	}
	want := " echo { nested } done "
	if body.Text != want {
		t.Errorf("text = %q, want %q", body.Text, want)
	}
}

func TestShellBodyWithInputList(t *testing.T) {
	toks := scanAll(t, "shell (name, count) {\n  echo ${name}\n}")
	want := []token.Kind{
		token.KwShell, token.LParen, token.Ident, token.Comma, token.Ident,
		token.RParen, token.ShellContent, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
