package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmtguard/internal/ctype"
	"fmtguard/internal/format"
	"fmtguard/internal/lexer"
	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

func specs(segs []format.Segment) []*format.Specifier {
	var out []*format.Specifier
	for _, s := range segs {
		if s.Spec != nil {
			out = append(out, s.Spec)
		}
	}
	return out
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Hello, world!",
		"Balance: $%d.",
		"100%%\\n",
		"%s is %s",
		`\%d stays text`,
		`a\\%d`,
		"%-+ #0'12.5lld|%*.*f|%.d|%Lf|%zu|%hhx|%p|%n|%ls|%lc",
		"%",
		"%y%q",
		"%1$d",
		"trail %-",
		"é %s ü",
		`\x25s \045d \45%`,
		`\x25\x25 \x255`,
	}
	for _, in := range inputs {
		segs := format.Parse(in)
		var b strings.Builder
		for _, s := range segs {
			b.WriteString(s.Raw)
			assert.Equal(t, in[s.Start:s.End], s.Raw, "segment offsets of %q", in)
		}
		assert.Equal(t, in, b.String(), "round trip")
	}
}

func TestParsePercentLiteral(t *testing.T) {
	segs := format.Parse(`100%%\n`)
	require.Len(t, segs, 3)
	assert.Equal(t, format.SegText, segs[0].Kind)
	assert.Equal(t, format.SegPercent, segs[1].Kind)
	assert.Empty(t, specs(segs))
}

func TestParseEscapedPercent(t *testing.T) {
	assert.Empty(t, specs(format.Parse(`\%d`)))
	got := specs(format.Parse(`\\%d`))
	require.Len(t, got, 1)
	assert.Equal(t, format.ConvInt, got[0].Conv)
}

func TestParseNumericEscapePercent(t *testing.T) {
	cases := []struct {
		in   string
		raw  string
		conv format.Conversion
	}{
		{`\x25s`, `\x25s`, format.ConvString},
		{`\045d`, `\045d`, format.ConvInt},
		{`\45d`, `\45d`, format.ConvInt},
		{`\x025-5u`, `\x025-5u`, format.ConvUnsigned},
		{`x=\x25ld`, `\x25ld`, format.ConvInt},
	}
	for _, tc := range cases {
		got := specs(format.Parse(tc.in))
		require.Len(t, got, 1, tc.in)
		assert.Equal(t, tc.raw, got[0].Raw, tc.in)
		assert.Equal(t, tc.conv, got[0].Conv, tc.in)
		assert.Equal(t, tc.in[got[0].Start:got[0].End], got[0].Raw)
	}

	// \x255 is a single hex escape, not `%` followed by `5`.
	assert.Empty(t, specs(format.Parse(`\x255`)))
	assert.Empty(t, specs(format.Parse(`\x26d \046d \\x25d`)))

	segs := format.Parse(`50\x25\045`)
	require.Len(t, segs, 2)
	assert.Equal(t, format.SegPercent, segs[1].Kind)
	assert.Equal(t, `\x25\045`, segs[1].Raw)
}

func TestParseDirectiveParts(t *testing.T) {
	got := specs(format.Parse("%-08.3lf %*.*d %.s %hhu %zx %Lg"))
	require.Len(t, got, 6)

	f := got[0]
	assert.Equal(t, "-0", f.Flags)
	assert.Equal(t, format.Amount{Kind: format.AmountLiteral, Value: 8}, f.Width)
	assert.Equal(t, format.Amount{Kind: format.AmountLiteral, Value: 3}, f.Precision)
	assert.Equal(t, "l", f.Length)
	assert.Equal(t, byte('f'), f.Verb)
	assert.Equal(t, format.ConvFloat, f.Conv)
	assert.False(t, f.Plain())
	assert.Equal(t, 1, f.ArgCount())

	star := got[1]
	assert.Equal(t, format.AmountStar, star.Width.Kind)
	assert.Equal(t, format.AmountStar, star.Precision.Kind)
	assert.Equal(t, 3, star.ArgCount())

	assert.Equal(t, format.Amount{Kind: format.AmountLiteral}, got[2].Precision)
	assert.Equal(t, "unsigned char", got[3].CType())
	assert.Equal(t, "size_t", got[4].CType())
	assert.Equal(t, "long double", got[5].CType())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		in      string
		raw     string
		problem string
	}{
		{"%", "%", "incomplete format specifier"},
		{"abc %-", "%-", "incomplete format specifier"},
		{"%y", "%y", "unknown conversion `%y`"},
		{"%1$d", "%1$d", "positional arguments (`%n$`) are not supported"},
		{"%hf", "%hf", "length modifier `h` is not valid with `%f`"},
		{"%lp", "%lp", "length modifier `l` is not valid with `%p`"},
		{"%5%", "%5%", "`%%` takes no flags, width, precision or length"},
		{`%\n`, "%", "incomplete format specifier"},
	}
	for _, tt := range tests {
		got := specs(format.Parse(tt.in))
		require.Len(t, got, 1, tt.in)
		assert.Equal(t, format.ConvInvalid, got[0].Conv, tt.in)
		assert.Equal(t, tt.raw, got[0].Raw, tt.in)
		assert.Equal(t, tt.problem, got[0].Problem, tt.in)
		assert.Equal(t, 1, got[0].ArgCount(), "invalid directives still consume an argument")
	}
}

func TestFamilies(t *testing.T) {
	want := map[string]ctype.Family{
		"%d": ctype.Integer, "%i": ctype.Integer, "%u": ctype.Unsigned, "%x": ctype.Unsigned,
		"%f": ctype.Floating, "%g": ctype.Floating, "%c": ctype.Char, "%s": ctype.String,
		"%p": ctype.Pointer, "%n": ctype.Pointer, "%y": ctype.Unknown,
	}
	for in, fam := range want {
		got := specs(format.Parse(in))
		require.Len(t, got, 1)
		assert.Equal(t, fam, got[0].Family(), in)
	}
}

func modelFor(t *testing.T, src string) (*format.Model, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.c", []byte(src))
	file := fs.Get(id)
	toks, ok := lexer.Tokenize(file, lexer.Options{})
	require.True(t, ok)
	var lits []token.Token
	for _, tok := range toks {
		if tok.Kind == token.StringLit {
			lits = append(lits, tok)
		}
	}
	return format.FromTokens(lits), file
}

func TestModelSpans(t *testing.T) {
	m, file := modelFor(t, `printf("Balance: $%d.", 100);`)
	require.Len(t, m.Specs, 1)
	assert.Equal(t, "%d", file.Text(m.Specs[0].Span))
	assert.Equal(t, `"Balance: $%d."`, file.Text(m.Span()))
	assert.Equal(t, 1, m.ArgCount())
	assert.False(t, m.HasPrefix())
}

func TestModelConcatenatedLiterals(t *testing.T) {
	m, file := modelFor(t, "x = \"a %s\" /* c */ \"b %\"\n  \"d end\";")
	assert.Equal(t, "a %sb %d end", m.Content)
	require.Len(t, m.Specs, 2)
	assert.Equal(t, "%s", file.Text(m.Specs[0].Span))
	// the directive crosses literals: the span covers the quotes between them
	assert.Equal(t, "%\"\n  \"d", file.Text(m.Specs[1].Span))

	lits := []format.Segment{}
	for _, s := range m.Segments {
		if s.Kind != format.SegSpec {
			lits = append(lits, s)
		}
	}
	require.Len(t, lits, 3)
	assert.Equal(t, `"a "`, m.Literal(lits[:1]))
	assert.Equal(t, `"b "`, m.Literal(lits[1:2]))
	assert.Equal(t, `" end"`, m.Literal(lits[2:]))
}

func TestModelLiteralMergesPercent(t *testing.T) {
	m, _ := modelFor(t, `"100%% " "done\n"`)
	assert.Empty(t, m.Specs)
	assert.Equal(t, `"100% " "done\n"`, m.Literal(m.Segments))
	assert.Equal(t, `""`, m.Literal(nil))
}

func TestModelPrefix(t *testing.T) {
	m, file := modelFor(t, `L"%ls"`)
	assert.True(t, m.HasPrefix())
	require.Len(t, m.Specs, 1)
	assert.Equal(t, "%ls", file.Text(m.Specs[0].Span))
}
