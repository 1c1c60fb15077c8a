package diag

import (
	"guardc/internal/source"
)

type Diagnostic struct {
	Severity  Severity
	Code      Code
	Message   string
	Primary   source.Span
	Overloads []int // 1-based overload indices, nil when not applicable
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// IsNote reports whether d is a secondary Info diagnostic of a guard finding.
func (d Diagnostic) IsNote() bool {
	return d.Severity == SevInfo && d.Code.DefaultSeverity() != SevInfo
}
