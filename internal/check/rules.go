package check

import (
	"fmt"
	"strings"

	"fmtguard/internal/callsite"
	"fmtguard/internal/diag"
	"fmtguard/internal/format"
	"fmtguard/internal/source"
)

func reportMissingArgs(r diag.Reporter, call *callsite.Call) {
	need := call.Func.FormatIndex() + 1
	sp := call.ArgsSpan()
	if len(call.Args) > 0 {
		sp = call.Args[0].Span.Cover(call.Args[len(call.Args)-1].Span)
	}
	diag.ReportError(r, diag.SynMissingArguments, sp,
		fmt.Sprintf("`%s` needs at least %s, found %d", call.Name(), plural(need, "argument", "arguments"), len(call.Args))).
		WithLabel(sp, "not enough arguments in function call").
		WithHelp("Supply enough arguments for the function call.").
		Emit()
}

func reportNonLiteral(r diag.Reporter, call *callsite.Call, arg callsite.Argument) {
	b := diag.ReportError(r, diag.FmtNonLiteral, arg.Span, "format string is not a string literal").
		WithLabel(arg.Span, "not a string literal")
	if tok, ok := arg.Single(); ok && tok.IsIdent() {
		b.WithHelp(fmt.Sprintf("To safely print a string, use `%s(%s\"%%s\", %s)` instead.",
			call.Name(), fixedPrefix(call), tok.Text)).
			WithFix(fmt.Sprintf("Print `%s` through \"%%s\"", tok.Text), diag.FixEdit{
				Span:    source.Span{File: arg.Span.File, Start: arg.Span.Start, End: arg.Span.Start},
				NewText: `"%s", `,
			})
	} else {
		b.WithHelp(fmt.Sprintf("Use a string literal as the format argument, like `%s(%s\"hello\")`.",
			call.Name(), fixedPrefix(call)))
	}
	b.Emit()
}

// fixedPrefix renders placeholder names for the fixed parameters ("buffer, bufsz, ").
func fixedPrefix(call *callsite.Call) string {
	var b strings.Builder
	for _, p := range call.Func.Fixed {
		b.WriteString(p.Name)
		b.WriteString(", ")
	}
	return b.String()
}

func reportInvalidSpecifier(r diag.Reporter, spec *format.Specifier) {
	b := diag.ReportError(r, diag.FmtInvalidSpecifier, spec.Span,
		fmt.Sprintf("invalid format specifier `%s`", spec.Raw)).
		WithLabel(spec.Span, spec.Problem)
	switch {
	case strings.HasPrefix(spec.Problem, "unknown conversion"):
		b.WithHelp("Use one of `d i u o x X f F e E g G a A c s p n`, or write `%%` for a literal percent sign.")
	case strings.HasPrefix(spec.Problem, "incomplete"):
		b.WithHelp("Finish the specifier with a conversion character, or write `%%` for a literal percent sign.")
	}
	b.Emit()
}

func reportWriteBack(r diag.Reporter, spec *format.Specifier) {
	diag.ReportWarning(r, diag.FmtWriteBack, spec.Span,
		fmt.Sprintf("`%s` writes the number of printed characters through a pointer argument", spec.Raw)).
		WithLabel(spec.Span, "write-back specifier").
		WithHelp("Remove the `%n` specifier and compute the length separately.").
		Emit()
}

func reportMismatch(r diag.Reporter, p Pair) {
	want, got := p.Expected(), p.Arg.Family
	cast := p.Arg.Cast
	specLabel := fmt.Sprintf("format string expects `%s` value", p.Spec.CType())
	msg := fmt.Sprintf("`%s` expects %s argument, but it is cast to `%s` (%s)", p.Spec.Raw, want, cast.Spelling, got)
	help := fmt.Sprintf("Change the specifier to `%%%c`, or change the cast to `(%s)`.", verbFor(got), p.Spec.CType())
	if p.Role != RoleValue {
		specLabel = "`*` expects an `int` value"
		msg = fmt.Sprintf("`*` in `%s` expects integer argument, but it is cast to `%s` (%s)", p.Spec.Raw, cast.Spelling, got)
		help = "Change the cast to `(int)`."
	}

	b := diag.ReportWarning(r, diag.FmtTypeMismatch, cast.Span, msg).
		WithLabel(p.Spec.Span, specLabel).
		WithLabel(cast.Span, fmt.Sprintf("argument is cast as `%s`", cast.Spelling)).
		WithHelp(help)

	// the fix only applies when the directive sits inside one literal
	if p.Role == RoleValue && p.Spec.Span.Len() == uint32(len(p.Spec.Raw)) {
		repl := p.Spec.Raw[:len(p.Spec.Raw)-1] + string(verbFor(got))
		b.WithFix(fmt.Sprintf("Change the specifier to `%s`", repl), diag.FixEdit{
			Span:    p.Spec.Span,
			NewText: repl,
			OldText: p.Spec.Raw,
		})
	}
	b.Emit()
}

func reportExcessSpecifiers(r diag.Reporter, call *callsite.Call, res *CallResult, missing int) {
	fmtSpan := res.Format.Span()
	argsSpan := variadicSpan(call, res)
	diag.ReportError(r, diag.FmtExcessSpecifiers, fmtSpan,
		fmt.Sprintf("format string reads %s that the call does not supply", plural(missing, "argument", "arguments"))).
		WithLabel(fmtSpan, fmt.Sprintf("%d too many specifiers", missing)).
		WithLabel(argsSpan, "not enough arguments").
		WithHelp(helpExcess(missing, "an argument", "a specifier", "arguments", "specifiers")).
		Emit()
}

func reportExcessArguments(r diag.Reporter, call *callsite.Call, res *CallResult, used int) {
	extra := res.Variadic[used:]
	fmtSpan := res.Format.Span()
	extraSpan := extra[0].Arg.Span.Cover(extra[len(extra)-1].Arg.Span)
	diag.ReportWarning(r, diag.FmtExcessArguments, extraSpan,
		fmt.Sprintf("`%s` is passed %s that the format string never uses", call.Name(), plural(len(extra), "argument", "arguments"))).
		WithLabel(fmtSpan, "not enough specifiers").
		WithLabel(extraSpan, fmt.Sprintf("%d too many arguments", len(extra))).
		WithHelp(helpExcess(len(extra), "a specifier", "an argument", "specifiers", "arguments")).
		Emit()
}

// variadicSpan covers the arguments after the format string, or is the empty
// span right before ')' when there are none.
func variadicSpan(call *callsite.Call, res *CallResult) source.Span {
	if n := len(res.Variadic); n > 0 {
		return res.Variadic[0].Arg.Span.Cover(res.Variadic[n-1].Arg.Span)
	}
	at := call.Close.Span.Start
	return source.Span{File: call.Close.Span.File, Start: at, End: at}
}

func helpExcess(n int, addOne, removeOne, addMany, removeMany string) string {
	if n == 1 {
		return fmt.Sprintf("Add %s or remove %s.", addOne, removeOne)
	}
	return fmt.Sprintf("Add %d %s or remove %d %s.", n, addMany, n, removeMany)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
