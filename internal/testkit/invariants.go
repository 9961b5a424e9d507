package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"fmtguard/internal/check"
	"fmtguard/internal/rewrite"
	"fmtguard/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on an analysed file:
// 1) every token, call and argument span lies inside the file content
// 2) every argument span is contained in its call span
// 3) diagnostic spans and labels point into the file
// 4) typecast edits are disjoint and apply cleanly
func CheckSpanInvariants(a *check.Analysis) error {
	if a == nil || a.File == nil {
		return fmt.Errorf("nil analysis or file")
	}
	sf := a.File
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("%s span %v outside of %d-byte content", what, sp, lenContent)
		}
		return nil
	}

	// 1) токены идут по порядку и не перекрываются
	var prevEnd uint32
	for i, tok := range a.Tokens {
		if err := inFile("token", tok.Span); err != nil {
			return err
		}
		if tok.Span.Start < prevEnd {
			return fmt.Errorf("token %d at %v overlaps previous token ending at %d", i, tok.Span, prevEnd)
		}
		prevEnd = tok.Span.End
	}

	// 2) аргументы внутри вызова
	for i := range a.Calls {
		call := a.Calls[i].Call
		if err := inFile("call", call.Span); err != nil {
			return err
		}
		if call.Span.Empty() {
			return fmt.Errorf("empty call span for %s", call.Name())
		}
		for _, arg := range call.Args {
			if err := inFile("argument", arg.Span); err != nil {
				return err
			}
			if !call.Span.Contains(arg.Span) {
				return fmt.Errorf("argument span %v is outside call span %v", arg.Span, call.Span)
			}
		}
	}

	// 3) диагностики
	for _, d := range a.Bag.Items() {
		if err := inFile(d.Code.String(), d.Primary); err != nil {
			return err
		}
		for _, l := range d.Labels {
			if err := inFile(d.Code.String()+" label", l.Span); err != nil {
				return err
			}
		}
	}

	// 4) правки typecast
	if !a.Fatal {
		if _, err := rewrite.Apply(sf.Content, rewrite.Typecast(a)); err != nil {
			return fmt.Errorf("typecast edits: %w", err)
		}
	}
	return nil
}
