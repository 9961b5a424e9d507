package callsite

import (
	"fmt"
	"strings"

	"fmtguard/internal/ctype"
	"fmtguard/internal/diag"
	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

// Extract walks toks and returns every well-formed call to a function in set,
// in source order. Calls with unbalanced parentheses or empty argument slots
// are reported to r and skipped; scanning resumes right after the callee so
// later calls, including ones inside the broken call, are still found.
func Extract(toks []token.Token, set *Set, r diag.Reporter) []Call {
	var calls []Call
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind != token.Ident {
			continue
		}
		fn, ok := set.Lookup(tok.Text)
		if !ok {
			continue
		}
		open := nextCode(toks, i+1)
		if open < 0 || toks[open].Kind != token.LParen {
			// ссылка на функцию, не вызов
			continue
		}
		if isDeclaration(toks, i, open) {
			continue
		}
		if call, ok := parseCall(toks, i, open, fn, r); ok {
			calls = append(calls, call)
		}
	}
	markNested(calls)
	return calls
}

func nextCode(toks []token.Token, from int) int {
	for j := from; j < len(toks); j++ {
		if !toks[j].IsTrivia() {
			return j
		}
	}
	return -1
}

func prevCode(toks []token.Token, from int) int {
	for j := from; j >= 0; j-- {
		if !toks[j].IsTrivia() {
			return j
		}
	}
	return -1
}

// statementWords may precede a real call, e.g. `return printf()`.
var statementWords = map[string]bool{
	"return": true, "else": true, "do": true, "case": true, "sizeof": true,
}

// isDeclaration recognises `int printf(const char *, ...)` and
// `#define printf(...)`: the callee follows a type or `define`, and the
// parameter list opens with a type-name, `...` or `)`.
func isDeclaration(toks []token.Token, callee, open int) bool {
	prev := prevCode(toks, callee-1)
	if prev < 0 || toks[prev].Kind != token.Ident || statementWords[toks[prev].Text] {
		return false
	}
	if toks[prev].Text == "define" {
		return true
	}
	next := nextCode(toks, open+1)
	if next < 0 {
		return false
	}
	switch t := toks[next]; t.Kind {
	case token.RParen:
		return true
	case token.Punct:
		return t.Text == "..."
	case token.Ident:
		return isTypeName(t.Text)
	}
	return false
}

func isTypeName(w string) bool {
	return ctype.IsTypeWord(w) || w == "FILE" || strings.HasSuffix(w, "_t")
}

func parseCall(toks []token.Token, callee, open int, fn Function, r diag.Reporter) (Call, bool) {
	call := Call{
		Callee: toks[callee],
		Func:   fn,
		Open:   toks[open],
	}

	depth := 0
	slotStart := open + 1
	var empties []source.Span
	for j := open; j < len(toks); j++ {
		switch toks[j].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth > 0 {
				continue
			}
			call.Close = toks[j]
			call.Span = call.Callee.Span.Cover(call.Close.Span)
			slot := toks[slotStart:j]
			// f() без аргументов; f(a,) с пустым последним слотом
			if len(call.Args) > 0 || hasCode(slot) {
				if arg, ok := makeArgument(slot); ok {
					call.Args = append(call.Args, arg)
				} else {
					empties = append(empties, emptySlotSpan(toks, slotStart, j))
				}
			}
			if len(empties) > 0 {
				reportEmpty(r, &call, empties)
				return Call{}, false
			}
			return call, true
		case token.Comma:
			if depth != 1 {
				continue
			}
			if arg, ok := makeArgument(toks[slotStart:j]); ok {
				call.Args = append(call.Args, arg)
			} else {
				empties = append(empties, emptySlotSpan(toks, slotStart, j))
				call.Args = append(call.Args, Argument{})
			}
			slotStart = j + 1
		}
	}

	diag.ReportError(r, diag.SynUnbalancedParens, call.Open.Span,
		fmt.Sprintf("unclosed `(` in call to `%s`", fn.Name)).
		WithLabel(call.Open.Span, "unclosed delimiter").
		WithLabel(call.Callee.Span, "call starts here").
		WithHelp("Add the missing `)` to close the argument list.").
		Emit()
	return Call{}, false
}

func hasCode(toks []token.Token) bool {
	for _, t := range toks {
		if !t.IsTrivia() {
			return true
		}
	}
	return false
}

func makeArgument(toks []token.Token) (Argument, bool) {
	first, last := -1, -1
	for k, t := range toks {
		if t.IsTrivia() {
			continue
		}
		if first < 0 {
			first = k
		}
		last = k
	}
	if first < 0 {
		return Argument{}, false
	}
	return Argument{
		Tokens: toks,
		Span:   toks[first].Span.Cover(toks[last].Span),
	}, true
}

// emptySlotSpan is the gap between the delimiters around slot [from, to).
func emptySlotSpan(toks []token.Token, from, to int) source.Span {
	prev, next := toks[from-1].Span, toks[to].Span
	return source.Span{File: prev.File, Start: prev.End, End: next.Start}
}

func reportEmpty(r diag.Reporter, call *Call, empties []source.Span) {
	b := diag.ReportError(r, diag.SynEmptyArgument, empties[0],
		fmt.Sprintf("empty argument in call to `%s`", call.Func.Name))
	for _, sp := range empties {
		b.WithLabel(sp, "expected an argument here")
	}
	b.WithHelp("Remove the extra comma or supply the missing argument.").Emit()
}

// markNested flags calls whose span lies inside an earlier call's argument list.
// calls are ordered by start offset.
func markNested(calls []Call) {
	var stack []source.Span
	for i := range calls {
		sp := calls[i].Span
		for len(stack) > 0 && stack[len(stack)-1].End <= sp.Start {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 && stack[len(stack)-1].Contains(sp) {
			calls[i].Nested = true
		}
		stack = append(stack, sp)
	}
}
