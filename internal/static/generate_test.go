package static

import (
	"strings"
	"testing"
)

func TestGenerateRendersFrozenConstsAndReturnObject(t *testing.T) {
	f := loadStr(t, `Name "kimchi"
Port 8080`)
	out := Generate(f, "test/module")
	if !strings.Contains(out, `export const Name = _deepFreeze("kimchi");`) {
		t.Fatalf("missing Name binding, got:\n%s", out)
	}
	if !strings.Contains(out, "export const Port = _deepFreeze(8080);") {
		t.Fatalf("missing Port binding, got:\n%s", out)
	}
	if strings.Contains(out, "class _Secret") {
		t.Fatalf("did not expect _Secret helper with no secret declarations, got:\n%s", out)
	}
}

func TestGenerateWrapsSecretDeclaration(t *testing.T) {
	f := loadStr(t, `secret ApiKey "xyz"`)
	out := Generate(f, "test/module")
	if !strings.Contains(out, `export const ApiKey = _deepFreeze(_secret("xyz"));`) {
		t.Fatalf("expected secret-wrapped binding, got:\n%s", out)
	}
	if !strings.Contains(out, "class _Secret") {
		t.Fatalf("expected _Secret helper to be included, got:\n%s", out)
	}
}

func TestGenerateRendersEnumAsFrozenObject(t *testing.T) {
	f := loadStr(t, "Levels `LOW = 1, MEDIUM = 2, HIGH = 3`")
	out := Generate(f, "test/module")
	if !strings.Contains(out, "export const Levels = _deepFreeze(Object.freeze({ LOW: 1, MEDIUM: 2, HIGH: 3 }));") {
		t.Fatalf("expected frozen enum object, got:\n%s", out)
	}
}
