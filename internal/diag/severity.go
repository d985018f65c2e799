package diag

// Severity classifies how serious a diagnostic is. Only SevError and above
// halt codegen (see diag.Bag.HasErrors).
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
