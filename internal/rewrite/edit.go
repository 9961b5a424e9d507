package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"fmtguard/internal/source"
)

// ErrOverlappingEdits means two edits touch the same bytes. It is an internal
// failure: transforms only ever emit disjoint edits.
var ErrOverlappingEdits = errors.New("overlapping edits")

// Edit replaces Span with Text. An empty span is an insertion.
type Edit struct {
	Span source.Span
	Text string
}

// Apply splices edits into src in ascending start order. src is not modified.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return bytes.Clone(src), nil
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	size := len(src)
	for i, e := range sorted {
		if e.Span.Start > e.Span.End || int(e.Span.End) > len(src) {
			return nil, fmt.Errorf("edit %s outside of %d-byte source", e.Span, len(src))
		}
		if i > 0 && e.Span.Start < sorted[i-1].Span.End {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlappingEdits, sorted[i-1].Span, e.Span)
		}
		size += len(e.Text) - int(e.Span.Len())
	}

	out := make([]byte, 0, max(size, 0))
	var pos uint32
	for _, e := range sorted {
		out = append(out, src[pos:e.Span.Start]...)
		out = append(out, e.Text...)
		pos = e.Span.End
	}
	out = append(out, src[pos:]...)
	return out, nil
}
