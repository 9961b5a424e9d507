package check

import (
	"fmt"

	"fmtguard/internal/callsite"
	"fmtguard/internal/ctype"
	"fmtguard/internal/diag"
	"fmtguard/internal/format"
	"fmtguard/internal/lexer"
	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

// Options configures Analyze. Zero values select the defaults.
type Options struct {
	Functions  *callsite.Set
	Vocabulary *Vocabulary
	// OnPass, if set, is called as each pass starts; the returned func is
	// called with a short note when it ends.
	OnPass PassHook
}

// PassHook observes the lex, extract and check passes of Analyze.
type PassHook func(pass string) (done func(note string))

func (o Options) pass(name string) func(string) {
	if o.OnPass == nil {
		return func(string) {}
	}
	if done := o.OnPass(name); done != nil {
		return done
	}
	return func(string) {}
}

func (o Options) withDefaults() Options {
	if o.Functions == nil {
		o.Functions = callsite.NewSet()
	}
	if o.Vocabulary == nil {
		o.Vocabulary = DefaultVocabulary()
	}
	return o
}

// Role says what a paired argument feeds in its directive.
type Role uint8

const (
	RoleValue Role = iota
	RoleWidth
	RolePrecision
)

// Pair binds one directive slot to one variadic argument.
type Pair struct {
	Spec *format.Specifier
	Arg  *TypedArg
	Role Role
}

// Expected is the family the slot requires.
func (p Pair) Expected() ctype.Family {
	if p.Role != RoleValue {
		return ctype.Integer
	}
	return p.Spec.Family()
}

// CallResult is the analysis of one call site.
type CallResult struct {
	Call     *callsite.Call
	Fixed    []TypedArg
	Variadic []TypedArg
	Format   *format.Model // nil when the format argument is missing or not a literal
	Pairs    []Pair
	// Errors counts error diagnostics attributed to this call.
	Errors int
}

// HasErrors reports whether the call produced any error diagnostic.
func (r *CallResult) HasErrors() bool {
	return r.Errors > 0
}

// Analysis is the result of checking one file.
type Analysis struct {
	File   *source.File
	Tokens []token.Token
	Calls  []CallResult
	Bag    *diag.Bag
	// Fatal is set when lexing stopped at an unterminated literal or comment;
	// no call was analysed.
	Fatal bool
}

// HasErrors reports whether the file fails.
func (a *Analysis) HasErrors() bool {
	return a.Bag.HasErrors()
}

// Analyze runs the whole read path over file.
func Analyze(file *source.File, opts Options) *Analysis {
	opts = opts.withDefaults()
	a := &Analysis{File: file, Bag: diag.NewBag(0)}
	r := diag.BagReporter{Bag: a.Bag}

	done := opts.pass("lex")
	toks, ok := lexer.Tokenize(file, lexer.Options{Reporter: r})
	a.Tokens = toks
	if !ok {
		done("fatal")
		a.Fatal = true
		return a
	}
	done(fmt.Sprintf("%d tokens", len(toks)))

	done = opts.pass("extract")
	calls := callsite.Extract(toks, opts.Functions, r)
	done(fmt.Sprintf("%d calls", len(calls)))

	done = opts.pass("check")
	a.Calls = make([]CallResult, len(calls))
	for i := range calls {
		a.Calls[i] = checkCall(&calls[i], opts.Vocabulary, a.Bag)
	}
	a.Bag.Sort()
	done(fmt.Sprintf("%d diagnostics", a.Bag.Len()))
	return a
}

// callReporter forwards to the bag and counts errors for one call.
type callReporter struct {
	bag    *diag.Bag
	errors int
}

func (r *callReporter) Report(d diag.Diagnostic) {
	if d.IsError() {
		r.errors++
	}
	r.bag.Add(d)
}

func checkCall(call *callsite.Call, vocab *Vocabulary, bag *diag.Bag) (res CallResult) {
	res.Call = call
	r := &callReporter{bag: bag}
	defer func() { res.Errors = r.errors }()

	for _, arg := range call.Fixed() {
		res.Fixed = append(res.Fixed, typeArg(arg, vocab))
	}
	for _, arg := range call.Variadic() {
		res.Variadic = append(res.Variadic, typeArg(arg, vocab))
	}

	fmtArg, ok := call.Format()
	if !ok {
		reportMissingArgs(r, call)
		return res
	}
	lits, ok := literalTokens(fmtArg)
	if !ok {
		reportNonLiteral(r, call, fmtArg)
		return res
	}

	res.Format = format.FromTokens(lits)
	for _, spec := range res.Format.Specs {
		switch {
		case spec.Conv == format.ConvInvalid:
			reportInvalidSpecifier(r, spec)
		case spec.Conv == format.ConvWriteBack:
			reportWriteBack(r, spec)
		}
	}

	res.Pairs = pair(res.Format, res.Variadic)
	for _, p := range res.Pairs {
		if mismatched(p) {
			reportMismatch(r, p)
		}
	}

	need, have := res.Format.ArgCount(), len(res.Variadic)
	switch {
	case need > have:
		reportExcessSpecifiers(r, call, &res, need-have)
	case have > need:
		reportExcessArguments(r, call, &res, need)
	}
	return res
}

// literalTokens returns the string literals of a format argument, or false
// when anything other than string literals and comments is present.
func literalTokens(arg callsite.Argument) ([]token.Token, bool) {
	code := arg.Code()
	for _, t := range code {
		if t.Kind != token.StringLit {
			return nil, false
		}
	}
	return code, len(code) > 0
}

func pair(m *format.Model, args []TypedArg) []Pair {
	var out []Pair
	next := 0
	take := func(spec *format.Specifier, role Role) {
		if next < len(args) {
			out = append(out, Pair{Spec: spec, Arg: &args[next], Role: role})
		}
		next++
	}
	for _, spec := range m.Specs {
		if spec.Width.Kind == format.AmountStar {
			take(spec, RoleWidth)
		}
		if spec.Precision.Kind == format.AmountStar {
			take(spec, RolePrecision)
		}
		take(spec, RoleValue)
	}
	return out
}

func mismatched(p Pair) bool {
	if !p.Arg.Explicit() || p.Spec.Conv == format.ConvInvalid {
		return false
	}
	want := p.Expected()
	return want != ctype.Unknown && p.Arg.Family != want
}
