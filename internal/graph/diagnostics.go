package graph

import "git.home.luguber.info/inful/symdoc/internal/foundation/errors"

// DiagnosticCode identifies a recoverable condition met during a run.
type DiagnosticCode string

const (
	CodeAmbiguousReference  DiagnosticCode = "AMBIGUOUS_REFERENCE"
	CodeUnresolvedReference DiagnosticCode = "UNRESOLVED_REFERENCE"
	CodeSlugCollision       DiagnosticCode = "SLUG_COLLISION"
	CodeMalformedRecord     DiagnosticCode = "MALFORMED_RECORD"
	CodeDuplicateAnchor     DiagnosticCode = "DUPLICATE_ANCHOR"
)

// Diagnostic records a condition that was resolved by a deterministic rule.
type Diagnostic struct {
	Code     DiagnosticCode `json:"code"`
	Longname string         `json:"longname,omitempty"`
	Ref      string         `json:"ref,omitempty"`
	Detail   string         `json:"detail,omitempty"`
}

// Severity is warning for conditions that may hide authoring mistakes and
// info for the purely mechanical ones.
func (d Diagnostic) Severity() errors.ErrorSeverity {
	switch d.Code {
	case CodeUnresolvedReference, CodeMalformedRecord, CodeDuplicateAnchor:
		return errors.SeverityWarning
	default:
		return errors.SeverityInfo
	}
}

// CountByCode tallies diagnostics per code.
func CountByCode(diags []Diagnostic) map[DiagnosticCode]int {
	out := make(map[DiagnosticCode]int)
	for _, d := range diags {
		out[d.Code]++
	}
	return out
}
