package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"fmtguard/internal/diag"
	"fmtguard/internal/lexer"
	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("%s(%q)", tok.Kind, tok.Text))
	}
	return strings.Join(parts, " ")
}

// expectTokens проверяет последовательность видов и текстов (EOF не указывается)
func expectTokens(t *testing.T, input string, expected ...string) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	got := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		got = append(got, tok.Kind.String()+" "+tok.Text)
	}
	if strings.Join(got, "|") != strings.Join(expected, "|") {
		t.Fatalf("input %q\nwant: %v\ngot:  %v\nerrors: %v", input, expected, got, reporter.ErrorMessages())
	}
	if reporter.HasErrors() {
		t.Fatalf("unexpected errors for %q: %v", input, reporter.ErrorMessages())
	}
}

func TestIdentifiersAndCalls(t *testing.T) {
	expectTokens(t, `printf("hi", x);`,
		"Ident printf", "LParen (", `StringLit "hi"`, "Comma ,", "Ident x", "RParen )", "Punct ;")
}

func TestIdentifiers_Unicode(t *testing.T) {
	expectTokens(t, "größe _x1", "Ident größe", "Ident _x1")
}

func TestNumbers(t *testing.T) {
	expectTokens(t, "0 123u 0x1Fp-3 1.5e+10f .5 1'000 077L",
		"Number 0", "Number 123u", "Number 0x1Fp-3", "Number 1.5e+10f", "Number .5", "Number 1'000", "Number 077L")
}

func TestString_Escapes(t *testing.T) {
	expectTokens(t, `"a\"b" "c\\" "d"`,
		`StringLit "a\"b"`, `StringLit "c\\"`, `StringLit "d"`)
}

func TestString_Prefixes(t *testing.T) {
	expectTokens(t, `u8"x" u"y" U"z" L"w" L'c' LL"q"`,
		`StringLit u8"x"`, `StringLit u"y"`, `StringLit U"z"`, `StringLit L"w"`, `CharLit L'c'`,
		"Ident LL", `StringLit "q"`)
}

func TestString_LineSplice(t *testing.T) {
	expectTokens(t, "\"abc\\\ndef\" x", "StringLit \"abc\\\ndef\"", "Ident x")
}

func TestCharLiterals(t *testing.T) {
	expectTokens(t, `'a' '\'' '\\' '"'`, "CharLit 'a'", `CharLit '\''`, `CharLit '\\'`, `CharLit '"'`)
}

func TestString_Unterminated(t *testing.T) {
	for _, input := range []string{`"abc`, `'a`, `"abc\`} {
		lx, reporter := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid {
			t.Fatalf("%q: expected Invalid, got %s", input, tok.Kind)
		}
		if !reporter.HasErrors() || reporter.diagnostics[0].Code != diag.LexUnterminated {
			t.Fatalf("%q: expected unterminated diagnostic, got %v", input, reporter.ErrorMessages())
		}
		if !lx.Failed() {
			t.Fatalf("%q: lexer should be failed", input)
		}
	}
}

func TestString_NewlineInString(t *testing.T) {
	lx, reporter := makeTestLexer("x = \"abc\nprintf(\"%d\", 1);")
	toks := collectAllTokens(lx)
	// x, =, invalid, EOF: лексер останавливается на фатальной ошибке
	if len(toks) != 4 || toks[2].Kind != token.Invalid || toks[3].Kind != token.EOF {
		t.Fatalf("unexpected tokens: %s", tokensToString(toks))
	}
	if len(reporter.diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", reporter.ErrorMessages())
	}
	d := reporter.diagnostics[0]
	if d.Message != "newline in string literal" || d.Help == "" || len(d.Labels) != 1 {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if d.Labels[0].Span.Start != 4 || d.Labels[0].Span.End != 5 {
		t.Fatalf("label should mark the opening quote, got %v", d.Labels[0].Span)
	}
}

func TestOperators_Greedy(t *testing.T) {
	expectTokens(t, "a<<=b->c...d++ #include",
		"Ident a", "Punct <<=", "Ident b", "Punct ->", "Ident c", "Punct ...", "Ident d", "Punct ++",
		"Punct #", "Ident include")
}

func TestOtherBytes(t *testing.T) {
	expectTokens(t, "@ ` €", "Other @", "Other `", "Other €")
}

func TestComments(t *testing.T) {
	expectTokens(t, "a // printf(\"x\")\nb /* multi\nline */ c",
		"Ident a", "Comment // printf(\"x\")", "Ident b", "Comment /* multi\nline */", "Ident c")
}

func TestComments_NotNested(t *testing.T) {
	expectTokens(t, "/* a /* b */ c */",
		"Comment /* a /* b */", "Ident c", "Punct *", "Punct /")
}

func TestComments_LineSplice(t *testing.T) {
	expectTokens(t, "// one \\\n two\nx", "Comment // one \\\n two", "Ident x")
}

func TestComments_InsideString(t *testing.T) {
	expectTokens(t, `"/* not a comment */" x`, `StringLit "/* not a comment */"`, "Ident x")
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, reporter := makeTestLexer("/* unterminated\nfoo")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %s", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Fatal("Expected error report for unterminated block comment")
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after fatal error, got %s", next.Kind)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
}

func TestTokenSpansMatchText(t *testing.T) {
	input := "int main(void) {\r\n  snprintf(buf, 10, \"%s\", /* c */ name);\r\n}\r\n"
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.c", []byte(input))
	toks, ok := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if !ok {
		t.Fatal("unexpected failure")
	}
	for _, tok := range toks {
		if input[tok.Span.Start:tok.Span.End] != tok.Text {
			t.Fatalf("span %v does not match %q", tok.Span, tok.Text)
		}
	}
}

func TestTokenTextOutlivesContent(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.c", []byte(`printf("%d", n);`)))
	toks, ok := lexer.Tokenize(file, lexer.Options{})
	if !ok || len(toks) == 0 {
		t.Fatal("unexpected failure")
	}
	// буфер файла переиспользуется, текст токена не должен меняться
	for i := range file.Content {
		file.Content[i] = ' '
	}
	if toks[0].Text != "printf" {
		t.Fatalf("token text changed with the buffer: %q", toks[0].Text)
	}
}

func TestPositionsAfterBlockComment(t *testing.T) {
	input := "/* line1\n   line2\n*/ printf(\"x\");"
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.c", []byte(input))
	toks, _ := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if toks[1].Text != "printf" {
		t.Fatalf("unexpected token %s", tokensToString(toks))
	}
	start, _ := fs.Resolve(toks[1].Span)
	if start.Line != 3 || start.Col != 4 {
		t.Fatalf("printf at %d:%d, want 3:4", start.Line, start.Col)
	}
}
