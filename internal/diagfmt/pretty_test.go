package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"fmtguard/internal/diag"
	"fmtguard/internal/source"
)

func render(t *testing.T, fs *source.FileSet, opts PrettyOpts, ds ...diag.Diagnostic) string {
	t.Helper()
	bag := diag.NewBag(0)
	for _, d := range ds {
		bag.Add(d)
	}
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, opts); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	return buf.String()
}

func TestPrettyCodeFrame(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.c", []byte("int main(void) {\n    printf(\"%s is %s\", input);\n}\n"))

	fmtSpan := source.Span{File: id, Start: 28, End: 38}
	argSpan := source.Span{File: id, Start: 40, End: 45}
	d := diag.NewError(diag.FmtExcessSpecifiers, fmtSpan, "format string reads 1 argument that the call does not supply").
		WithLabel(fmtSpan, "1 too many specifiers").
		WithLabel(argSpan, "not enough arguments").
		WithHelp("Add an argument or remove a specifier.")

	got := render(t, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename}, d)
	want := strings.Join([]string{
		"error[FMT3003]: format string reads 1 argument that the call does not supply",
		" --> main.c:2:12",
		"  |",
		"1 | int main(void) {",
		"2 |     printf(\"%s is %s\", input);",
		"  |            ^^^^^^^^^^ 1 too many specifiers",
		"  |                        ----- not enough arguments",
		"3 | }",
		"  = help: Add an argument or remove a specifier.",
		"",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.c", []byte("printf(\"oops\n"))
	fs.SetBaseDir("/home/user/project")

	d := diag.NewError(diag.LexUnterminated, source.Span{File: fileID, Start: 7, End: 12}, "unterminated string literal")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "--> /home/user/project/src/test.c:1:8"},
		{"Relative path", PathModeRelative, "--> src/test.c:1:8"},
		{"Basename only", PathModeBasename, "--> test.c:1:8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := render(t, fs, PrettyOpts{Context: 1, PathMode: tt.mode}, d)
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "error[LEX1001]: unterminated string literal") {
				t.Errorf("Expected header in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettyUnlabeledPrimary(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("printf(\"%n\", &n);\n"))
	d := diag.NewWarning(diag.FmtWriteBack, source.Span{File: id, Start: 8, End: 10}, "write-back")

	output := render(t, fs, PrettyOpts{PathMode: PathModeBasename}, d)
	if !strings.Contains(output, "warning[FMT3006]: write-back") {
		t.Fatalf("missing header:\n%s", output)
	}
	if !strings.Contains(output, "  |         ^^\n") {
		t.Fatalf("expected bare caret under %%n, got:\n%s", output)
	}
}

func TestPrettyEmptySpanGetsOneCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("printf(\"%d\");\n"))
	at := source.Span{File: id, Start: 11, End: 11}
	d := diag.NewError(diag.FmtExcessSpecifiers, at, "missing").WithLabel(at, "not enough arguments")

	output := render(t, fs, PrettyOpts{PathMode: PathModeBasename}, d)
	if !strings.Contains(output, "  |            ^ not enough arguments\n") {
		t.Fatalf("expected single caret before ')', got:\n%s", output)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("printf(\"日本%d\", x);\n")
	id := fs.AddVirtual("a.c", content)
	start := uint32(bytes.Index(content, []byte("%d")))
	sp := source.Span{File: id, Start: start, End: start + 2}
	d := diag.NewWarning(diag.FmtTypeMismatch, sp, "m").WithLabel(sp, "here")

	output := render(t, fs, PrettyOpts{PathMode: PathModeBasename}, d)
	if !strings.Contains(output, "  | "+strings.Repeat(" ", 12)+"^^ here\n") {
		t.Fatalf("caret not aligned under wide runes:\n%s", output)
	}
	if !strings.Contains(output, "--> a.c:1:11") {
		t.Fatalf("column must count characters:\n%s", output)
	}
}

func TestPrettyLatin1Line(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("printf(\"caf\xe9 %d\", x);\n")
	id := fs.AddVirtual("a.c", content)
	start := uint32(bytes.Index(content, []byte("%d")))
	sp := source.Span{File: id, Start: start, End: start + 2}
	d := diag.NewWarning(diag.FmtTypeMismatch, sp, "m").WithLabel(sp, "here")

	output := render(t, fs, PrettyOpts{PathMode: PathModeBasename}, d)
	if !strings.Contains(output, "printf(\"café %d\", x);") {
		t.Fatalf("expected Latin-1 decoding, got:\n%s", output)
	}
	if !strings.Contains(output, "  | "+strings.Repeat(" ", 13)+"^^ here\n") {
		t.Fatalf("caret misaligned:\n%s", output)
	}
}

func TestPrettyTabs(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("\tprintf(x);\n"))
	sp := source.Span{File: id, Start: 8, End: 9}
	d := diag.NewError(diag.FmtNonLiteral, sp, "m").WithLabel(sp, "not a string literal")

	output := render(t, fs, PrettyOpts{PathMode: PathModeBasename}, d)
	if !strings.Contains(output, "1 |     printf(x);\n") {
		t.Fatalf("tab not expanded:\n%s", output)
	}
	if !strings.Contains(output, "  | "+strings.Repeat(" ", 11)+"^ not a string literal\n") {
		t.Fatalf("caret misaligned after tab:\n%s", output)
	}
}

func TestPrettySeparatesDistantLabels(t *testing.T) {
	fs := source.NewFileSet()
	var src strings.Builder
	for range 10 {
		src.WriteString("x;\n")
	}
	id := fs.AddVirtual("a.c", []byte(src.String()))
	first := source.Span{File: id, Start: 0, End: 1}
	last := source.Span{File: id, Start: 27, End: 28}
	d := diag.NewError(diag.SynUnbalancedParens, first, "m").
		WithLabel(first, "a").
		WithLabel(last, "b")

	output := render(t, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename}, d)
	if !strings.Contains(output, "\n...\n") {
		t.Fatalf("expected gap marker:\n%s", output)
	}
	if strings.Contains(output, " 5 |") {
		t.Fatalf("line 5 is outside the context:\n%s", output)
	}
	if !strings.Contains(output, "10 | x;") {
		t.Fatalf("expected line 10:\n%s", output)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("printf(\"%d\", (float) x);\n"))
	sp := source.Span{File: id, Start: 8, End: 10}
	d := diag.NewWarning(diag.FmtTypeMismatch, sp, "m").
		WithFix("Change the specifier to `%f`", diag.FixEdit{Span: sp, NewText: "%f", OldText: "%d"})

	output := render(t, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true}, d)
	for _, want := range []string{
		"= fix: Change the specifier to `%f`",
		"- printf(\"%d\", (float) x);",
		"+ printf(\"%f\", (float) x);",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}

	output = render(t, fs, PrettyOpts{PathMode: PathModeBasename}, d)
	if strings.Contains(output, "fix:") {
		t.Fatalf("fixes must be hidden by default:\n%s", output)
	}
}

func TestPrettyMaxAndColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("printf(x); printf(y);\n"))
	a := diag.NewError(diag.FmtNonLiteral, source.Span{File: id, Start: 7, End: 8}, "first")
	b := diag.NewError(diag.FmtNonLiteral, source.Span{File: id, Start: 18, End: 19}, "second")

	output := render(t, fs, PrettyOpts{Max: 1}, a, b)
	if strings.Contains(output, "second") || !strings.Contains(output, "1 more diagnostic(s) not shown") {
		t.Fatalf("Max not honoured:\n%s", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Fatalf("unexpected escape codes:\n%q", output)
	}

	output = render(t, fs, PrettyOpts{Color: true}, a)
	if !strings.Contains(output, "\x1b[") {
		t.Fatalf("expected escape codes:\n%q", output)
	}
}

func TestFrameRanges(t *testing.T) {
	byLine := map[uint32][]mark{2: nil, 3: nil, 9: nil}
	got := frameRanges(byLine, 1, 10)
	want := [][2]uint32{{1, 4}, {8, 10}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
