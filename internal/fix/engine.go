// Package fix applies the suggested edits attached to diagnostics.
package fix

import (
	"errors"
	"fmt"
	"sort"

	"fmtguard/internal/diag"
	"fmtguard/internal/rewrite"
	"fmtguard/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID        string
	Title     string
	Code      diag.Code
	Primary   source.Span
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// ApplyResult holds the patched content plus what was and was not applied.
type ApplyResult struct {
	Content []byte
	Applied []AppliedFix
	Skipped []SkippedFix
}

type candidate struct {
	id    string
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// ID names the idx-th fix of d: "<code>-<start>-<idx>", e.g. FMT3005-42-0.
func ID(d diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d", d.Code.ID(), d.Primary.Start, idx)
}

// Apply selects fixes of file's diagnostics according to opts and splices
// them into a copy of file.Content. Fixes whose edits overlap an already
// selected fix, or whose guarded text no longer matches, are skipped.
func Apply(file *source.File, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	if file == nil {
		return nil, fmt.Errorf("fix: file is nil")
	}
	result := &ApplyResult{}

	candidates := gatherCandidates(file.ID, diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skipped := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skipped...)

	var edits []rewrite.Edit
	for _, cand := range selected {
		if reason := validate(file, cand.fix, edits); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			edits = append(edits, rewrite.Edit{Span: e.Span, Text: e.NewText})
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:        cand.id,
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Primary:   cand.diag.Primary,
			EditCount: len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	content, err := rewrite.Apply(file.Content, edits)
	if err != nil {
		return result, err
	}
	result.Content = content
	return result, nil
}

// gatherCandidates collects the fixes that target file, in diagnostic order.
func gatherCandidates(id source.FileID, diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	for _, d := range diagnostics {
		if d.Primary.File != id {
			continue
		}
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{id: ID(d, idx), diag: d, fix: f, order: len(cands)})
		}
	}
	return cands
}

// sortCandidates orders by primary span, then insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		return candidates, nil
	default:
		return candidates[:1], nil
	}
}

// validate returns a skip reason, or "" when fix can be applied on top of taken.
func validate(file *source.File, fix diag.Fix, taken []rewrite.Edit) string {
	for _, e := range fix.Edits {
		if e.Span.File != file.ID {
			return "edit targets another file"
		}
		if e.Span.Start > e.Span.End || int(e.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		if e.OldText != "" && file.Text(e.Span) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range taken {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with previously applied edits"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edit spans overlap as half-open intervals.
// Insertions at the same offset conflict, an insertion also conflicts with a
// replacement covering its offset.
func spansConflict(a, b source.Span) bool {
	if a.Start == a.End && b.Start == b.End {
		return a.Start == b.Start
	}
	if a.Start == a.End {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}
