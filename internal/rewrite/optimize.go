package rewrite

import (
	"fmt"
	"strconv"

	"fmtguard/internal/callsite"
	"fmtguard/internal/check"
	"fmtguard/internal/format"
	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

// Skip is a call Optimize left unchanged.
type Skip struct {
	Call   *callsite.Call
	Reason string
}

// OptimizeResult holds the edits plus what was not rewritten.
type OptimizeResult struct {
	Edits     []Edit
	Rewritten int
	Skipped   []Skip
}

// Optimize rewrites every plain call into `safe_<name>(fixed..., N, { ... })`.
// Calls it cannot express are listed in Skipped with a reason. Only the
// callee, the format string and the edges of each argument are edited, so
// comments and spacing between them stay where they were.
func Optimize(a *check.Analysis, contract SafeCallContract) (OptimizeResult, error) {
	var out OptimizeResult
	if err := contract.Validate(); err != nil {
		return out, err
	}
	for i := range a.Calls {
		res := &a.Calls[i]
		if reason := skipReason(res); reason != "" {
			out.Skipped = append(out.Skipped, Skip{Call: res.Call, Reason: reason})
			continue
		}
		out.Edits = append(out.Edits, safeCallEdits(res, contract)...)
		out.Rewritten++
	}
	return out, nil
}

func skipReason(res *check.CallResult) string {
	switch {
	case res.Call.Nested:
		return "nested inside another formatting call"
	case res.HasErrors() || res.Format == nil:
		return "call has errors"
	case res.Format.HasPrefix():
		return "format string has an encoding prefix"
	case len(res.Variadic) != res.Format.ArgCount():
		return "arguments are not used by the format string"
	}
	// комментарий между литералами формата не пережил бы замену
	if fmtArg, ok := res.Call.Format(); ok {
		for _, t := range fmtArg.Tokens {
			if t.Kind == token.Comment && fmtArg.Span.Contains(t.Span) {
				return "format string contains comments"
			}
		}
	}
	for _, spec := range res.Format.Specs {
		if spec.Conv == format.ConvWriteBack {
			return fmt.Sprintf("`%s` has no safe equivalent", spec.Raw)
		}
		if !spec.Plain() {
			return fmt.Sprintf("`%s` has flags, width, precision or a length modifier", spec.Raw)
		}
	}
	return ""
}

func insertAt(off uint32, file source.FileID, text string) Edit {
	return Edit{Span: source.Span{File: file, Start: off, End: off}, Text: text}
}

// safeCallEdits turns `printf /* c */ ("a%d", x)` into
// `safe_printf /* c */ (2, { "a", { (x), fmt_int }, "" })`.
func safeCallEdits(res *check.CallResult, contract SafeCallContract) []Edit {
	call := res.Call
	fileID := call.Span.File
	edits := []Edit{insertAt(call.Callee.Span.Start, fileID, contract.Prefix)}

	for k := range res.Fixed {
		arg := &res.Fixed[k]
		if arg.Explicit() {
			continue
		}
		edits = append(edits,
			insertAt(arg.Arg.Span.Start, fileID, "("+call.Func.Fixed[k].CType+") ("),
			insertAt(arg.Arg.Span.End, fileID, ")"))
	}

	// Plain directives consume exactly one argument each: lits[k] precedes
	// the k-th argument, the last one closes the list.
	m := res.Format
	var lits []string
	var pending []format.Segment
	for _, seg := range m.Segments {
		if seg.Kind != format.SegSpec {
			pending = append(pending, seg)
			continue
		}
		lits = append(lits, m.Literal(pending))
		pending = pending[:0]
	}
	lits = append(lits, m.Literal(pending))

	fmtArg, _ := call.Format()
	head := strconv.Itoa(len(m.Specs)+1) + ", { " + lits[0]
	if len(res.Variadic) == 0 {
		head += " }"
	}
	edits = append(edits, Edit{Span: fmtArg.Span, Text: head})

	for k, arg := range res.Variadic {
		tail := fmt.Sprintf("), %s }, %s", contract.Tag(m.Specs[k].Family()), lits[k+1])
		if k == len(res.Variadic)-1 {
			tail += " }"
		}
		edits = append(edits,
			insertAt(arg.Arg.Span.Start, fileID, "{ ("),
			insertAt(arg.Arg.Span.End, fileID, tail))
	}
	return edits
}

// OptimizeSource returns the file content with Optimize applied.
func OptimizeSource(a *check.Analysis, contract SafeCallContract) ([]byte, OptimizeResult, error) {
	res, err := Optimize(a, contract)
	if err != nil {
		return nil, res, err
	}
	out, err := Apply(a.File.Content, res.Edits)
	if err != nil {
		return nil, res, fmt.Errorf("optimize %s: %w", a.File.Path, err)
	}
	return out, res, nil
}
