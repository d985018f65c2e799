package diag

import "kimchi/internal/source"

// New constructs a Diagnostic with no notes attached.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError is a convenience constructor for SevError diagnostics.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewWarning is a convenience constructor for SevWarning diagnostics.
func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// NewInfo is a convenience constructor for SevInfo diagnostics.
func NewInfo(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevInfo, code, primary, msg)
}
