package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"fmtguard/internal/check"
	"fmtguard/internal/rewrite"
)

const addCastsTitle = "Add explicit casts to formatting calls"

// TextDocumentCodeAction offers the fixes of diagnostics touching the
// requested range, plus a whole-file cast insertion.
func (s *Server) TextDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	if s.stopped() {
		return nil, ErrShutdown
	}
	uri := params.TextDocument.URI
	a, ok := s.analysisFor(uri)
	if !ok {
		return []protocol.CodeAction{}, nil
	}
	want := spanForRange(a.File, params.Range)

	actions := []protocol.CodeAction{}
	if wants(params.Context.Only, protocol.CodeActionKindQuickFix) {
		for _, d := range a.Bag.Items() {
			if !touches(d.Primary.Start, d.Primary.End, want.Start, want.End) {
				continue
			}
			for _, fix := range d.Fixes {
				edits := make([]protocol.TextEdit, 0, len(fix.Edits))
				for _, e := range fix.Edits {
					edits = append(edits, protocol.TextEdit{Range: rangeForSpan(a.File, e.Span), NewText: e.NewText})
				}
				actions = append(actions, protocol.CodeAction{
					Title:       fix.Title,
					Kind:        ptr(protocol.CodeActionKindQuickFix),
					Diagnostics: []protocol.Diagnostic{toProtocolDiagnostic(uri, a, d)},
					IsPreferred: ptr(true),
					Edit:        &protocol.WorkspaceEdit{Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: edits}},
				})
			}
		}
	}
	if wants(params.Context.Only, protocol.CodeActionKindSource) {
		if action, ok := castAction(uri, a); ok {
			actions = append(actions, action)
		}
	}
	return actions, nil
}

// castAction is the typecast rewrite as a workspace edit. Files with errors
// get none.
func castAction(uri protocol.DocumentUri, a *check.Analysis) (protocol.CodeAction, bool) {
	if a.Fatal || a.HasErrors() {
		return protocol.CodeAction{}, false
	}
	edits := rewrite.Typecast(a)
	if len(edits) == 0 {
		return protocol.CodeAction{}, false
	}
	out := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, protocol.TextEdit{Range: rangeForSpan(a.File, e.Span), NewText: e.Text})
	}
	return protocol.CodeAction{
		Title: addCastsTitle,
		Kind:  ptr(protocol.CodeActionKindSource),
		Edit:  &protocol.WorkspaceEdit{Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: out}},
	}, true
}

func wants(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, k := range only {
		if k == kind {
			return true
		}
	}
	return false
}

// touches reports whether [s1,e1) and [s2,e2) meet; empty ranges count at
// their position.
func touches(s1, e1, s2, e2 uint32) bool {
	return s1 <= e2 && s2 <= e1
}
