package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"dec": KwDec, "fn": KwFn, "memo": KwMemo, "secret": KwSecret,
		"shell": KwShell, "js": KwJS, "elif": KwElif, "not": KwNot,
	}
	for name, want := range cases {
		got, ok := LookupKeyword(name)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = (%v, %v), want (%v, true)", name, got, ok, want)
		}
	}

	if _, ok := LookupKeyword("notAKeyword"); ok {
		t.Errorf("LookupKeyword(notAKeyword) should not match")
	}
}

func TestKindString(t *testing.T) {
	if KwDec.String() != "dec" {
		t.Errorf("KwDec.String() = %q", KwDec.String())
	}
	if PipeArrow.String() != "~>" {
		t.Errorf("PipeArrow.String() = %q", PipeArrow.String())
	}
}
