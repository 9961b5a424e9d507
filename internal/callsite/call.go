package callsite

import (
	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

// Argument is one comma-delimited top-level slot of a call. Tokens keeps the
// comments inside the slot; Span covers the first to last code token.
type Argument struct {
	Tokens []token.Token
	Span   source.Span
}

// Code returns the argument's tokens without comments.
func (a Argument) Code() []token.Token {
	out := make([]token.Token, 0, len(a.Tokens))
	for _, t := range a.Tokens {
		if !t.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}

// Single returns the only code token of the argument, if there is exactly one.
func (a Argument) Single() (token.Token, bool) {
	code := a.Code()
	if len(code) != 1 {
		return token.Token{}, false
	}
	return code[0], true
}

// Call is an extracted call site.
type Call struct {
	Callee token.Token
	Func   Function
	Open   token.Token // '('
	Close  token.Token // matching ')'
	Span   source.Span // callee through ')'
	Args   []Argument
	// Nested is set when the call sits inside another tracked call's
	// argument list. Nested calls are analysed but never rewritten.
	Nested bool
}

// Name is the callee identifier.
func (c *Call) Name() string {
	return c.Callee.Text
}

// Format returns the format-string argument, if the call has one.
func (c *Call) Format() (Argument, bool) {
	idx := c.Func.FormatIndex()
	if idx >= len(c.Args) {
		return Argument{}, false
	}
	return c.Args[idx], true
}

// Fixed returns the arguments bound to fixed parameters (may be short).
func (c *Call) Fixed() []Argument {
	return c.Args[:min(c.Func.FormatIndex(), len(c.Args))]
}

// Variadic returns the arguments after the format string.
func (c *Call) Variadic() []Argument {
	idx := c.Func.FormatIndex() + 1
	if idx >= len(c.Args) {
		return nil
	}
	return c.Args[idx:]
}

// ArgsSpan covers the whole parenthesised interior; empty for f().
func (c *Call) ArgsSpan() source.Span {
	return source.Span{File: c.Open.Span.File, Start: c.Open.Span.End, End: c.Close.Span.Start}
}
