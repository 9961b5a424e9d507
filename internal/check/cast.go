package check

import (
	"strings"

	"fmtguard/internal/callsite"
	"fmtguard/internal/ctype"
	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

// Provenance tells where an argument's family came from.
type Provenance uint8

const (
	FromUnknown Provenance = iota
	FromCast
)

// Cast is a syntactic leading `( type-name )` in front of an operand.
type Cast struct {
	Spelling string      // normalised type-name
	Span     source.Span // parentheses included
	Operand  source.Span
}

// TypedArg is an argument with the family inferred from its cast.
type TypedArg struct {
	Arg        callsite.Argument
	Family     ctype.Family
	Provenance Provenance
	Cast       *Cast // nil when the argument does not start with a cast
}

// Explicit reports whether the family came from a recognised cast.
func (a *TypedArg) Explicit() bool {
	return a.Provenance == FromCast
}

func typeArg(arg callsite.Argument, vocab *Vocabulary) TypedArg {
	ta := TypedArg{Arg: arg}
	cast := leadingCast(arg.Code())
	if cast == nil {
		return ta
	}
	ta.Cast = cast
	if fam, ok := vocab.Lookup(cast.Spelling); ok {
		ta.Family = fam
		ta.Provenance = FromCast
	}
	return ta
}

// leadingCast recognises only a single leading cast: `(int) x`, `(char *) buf`.
// `((int) x)` has no leading cast; for `(int)(long) x` only `(int)` counts.
func leadingCast(code []token.Token) *Cast {
	if len(code) < 4 || code[0].Kind != token.LParen {
		return nil
	}
	closeAt := -1
	words := make([]string, 0, 4)
	for k := 1; k < len(code); k++ {
		t := code[k]
		if t.Kind == token.RParen {
			closeAt = k
			break
		}
		if t.Kind != token.Ident && !t.Is("*") {
			return nil
		}
		words = append(words, t.Text)
	}
	if closeAt < 2 || closeAt+1 >= len(code) {
		return nil
	}
	spelling, err := ctype.Normalize(strings.Join(words, " "))
	if err != nil {
		return nil
	}
	return &Cast{
		Spelling: spelling,
		Span:     code[0].Span.Cover(code[closeAt].Span),
		Operand:  code[closeAt+1].Span.Cover(code[len(code)-1].Span),
	}
}
