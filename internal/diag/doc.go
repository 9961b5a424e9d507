// Package diag defines the diagnostic model shared by the lexer, the call-site
// extractor and the format checker.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error (severity.go). Any Error makes a file fail.
//   - Code: compact numeric identifier with a stable ID ("FMT3003") and a
//     stable tag ("ExcessSpecifiers"), see codes.go.
//   - Message: human oriented text; keep it short.
//   - Primary: the canonical source.Span pointing to the issue.
//   - Labels: annotated spans rendered as underlines in the code frame.
//   - Help: optional "= help:" line.
//   - Fixes: optional structured edits a user or editor can apply.
//
// Diagnostics are values; once emitted they are not mutated except through
// Bag.Transform by the driver (severity promotion).
//
// # Emitting diagnostics
//
// Phases take a diag.Reporter and build records through ReportError /
// ReportWarning, chaining WithLabel / WithHelp / WithFix before Emit.
// BagReporter aggregates into a Bag, which supports sorting, deduplication,
// filtering, and transformation.
//
// Package diag does not render anything except the single-line short form used
// by tests and `check --format short`; code frames, JSON and SARIF live in
// internal/diagfmt.
package diag
