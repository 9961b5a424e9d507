package diag

import (
	"fmtguard/internal/source"
)

// Label attaches a short annotation to a span. The first label of a
// diagnostic is usually the primary span itself.
type Label struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces Span with NewText. OldText, when set, guards the edit:
// the fix only applies if the spanned text still matches.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Labels   []Label
	Help     string
	Fixes    []Fix
}

// IsError reports whether the diagnostic forces a failing outcome.
func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}
