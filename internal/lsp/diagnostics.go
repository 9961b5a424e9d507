package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"fmtguard/internal/check"
	"fmtguard/internal/diag"
)

func toProtocolDiagnostics(uri protocol.DocumentUri, a *check.Analysis, maxItems int) []protocol.Diagnostic {
	items := a.Bag.Items()
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}
	out := make([]protocol.Diagnostic, 0, len(items))
	for _, d := range items {
		out = append(out, toProtocolDiagnostic(uri, a, d))
	}
	return out
}

func toProtocolDiagnostic(uri protocol.DocumentUri, a *check.Analysis, d diag.Diagnostic) protocol.Diagnostic {
	msg := d.Message
	if d.Help != "" {
		msg += "\nhelp: " + d.Help
	}
	pd := protocol.Diagnostic{
		Range:    rangeForSpan(a.File, d.Primary),
		Severity: ptr(severity(d.Severity)),
		Code:     &protocol.IntegerOrString{Value: d.Code.ID()},
		Source:   ptr(serverName),
		Message:  msg,
	}
	for _, l := range d.Labels {
		pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{URI: uri, Range: rangeForSpan(a.File, l.Span)},
			Message:  l.Msg,
		})
	}
	return pd
}

func severity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
