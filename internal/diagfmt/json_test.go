package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fmtguard/internal/diag"
	"fmtguard/internal/lexer"
	"fmtguard/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("src/test.c", []byte("int x;\nprintf(\"%d\", (float) f);\n"))

	spec := source.Span{File: id, Start: 15, End: 17}
	cast := source.Span{File: id, Start: 20, End: 27}
	bag := diag.NewBag(0)
	bag.Add(diag.NewWarning(diag.FmtTypeMismatch, cast, "`%d` expects integer argument, but it is cast to `float` (floating)").
		WithLabel(spec, "format string expects `int` value").
		WithLabel(cast, "argument is cast as `float`").
		WithHelp("Change the specifier to `%f`, or change the cast to `(int)`.").
		WithFix("Change the specifier to `%f`", diag.FixEdit{Span: spec, NewText: "%f", OldText: "%d"}))
	bag.Add(diag.NewError(diag.FmtNonLiteral, source.Span{File: id, Start: 0, End: 3}, "format string is not a string literal"))
	return bag, fs
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeLabels:    true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || output.Errors != 1 || output.Warnings != 1 {
		t.Fatalf("unexpected counts: %+v", output)
	}

	d := output.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "FMT3005" || d.Kind != "TypeMismatch" {
		t.Errorf("unexpected header fields: %+v", d)
	}
	if d.Location.File != "test.c" {
		t.Errorf("Expected file=test.c, got %s", d.Location.File)
	}
	if d.Location.StartByte != 20 || d.Location.EndByte != 27 {
		t.Errorf("unexpected bytes: %+v", d.Location)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 14 {
		t.Errorf("unexpected position: %+v", d.Location)
	}
	if len(d.Labels) != 2 || d.Labels[0].Message != "format string expects `int` value" {
		t.Errorf("unexpected labels: %+v", d.Labels)
	}
	if !strings.HasPrefix(d.Help, "Change the specifier") {
		t.Errorf("unexpected help: %q", d.Help)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("unexpected fixes: %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != "%f" || edit.OldText != "%d" {
		t.Errorf("unexpected edit: %+v", edit)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != `printf("%f", (float) f);` {
		t.Errorf("unexpected preview: %+v", edit.AfterLines)
	}
}

// TestJSONOmitsOptionalParts проверяет, что без опций выводятся только основные поля
func TestJSONOmitsOptionalParts(t *testing.T) {
	bag, fs := sampleBag(t)
	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 1})

	if output.Count != 1 {
		t.Fatalf("Max not honoured: %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Labels != nil || d.Fixes != nil {
		t.Errorf("labels and fixes must be omitted: %+v", d)
	}
	if d.Location.StartLine != 0 {
		t.Errorf("positions must be omitted: %+v", d.Location)
	}
	// counters describe the whole bag, not the truncated list
	if output.Errors != 1 || output.Warnings != 1 {
		t.Errorf("unexpected counters: %+v", output)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(0), source.NewFileSet(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Fatalf("expected empty array, got %s", buf.String())
	}
}

func TestSarif(t *testing.T) {
	bag, fs := sampleBag(t)
	fs.SetBaseDir(".")

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "fmtguard", ToolVersion: "1.2.3", InvocationArgs: []string{"check", "src"}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatal(err)
	}

	var log map[string]any
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log["version"] != "2.1.0" {
		t.Fatalf("unexpected version: %v", log["version"])
	}

	var parsed sarifLog
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatal(err)
	}
	run := parsed.Runs[0]
	if run.Tool.Driver.Name != "fmtguard" || len(run.Tool.Driver.Rules) != len(diag.Codes()) {
		t.Fatalf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	res := run.Results[0]
	if res.RuleID != "FMT3005" || res.Level != "warning" {
		t.Errorf("unexpected result: %+v", res)
	}
	if rule := run.Tool.Driver.Rules[res.RuleIndex]; rule.ID != res.RuleID || rule.DefaultConfiguration.Level != "warning" {
		t.Errorf("ruleIndex points to %+v", rule)
	}
	loc := res.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "src/test.c" || loc.Region.StartLine != 2 || loc.Region.ByteLength != 7 {
		t.Errorf("unexpected location: %+v", loc)
	}
	if len(res.RelatedLocations) != 2 || len(res.Fixes) != 1 {
		t.Errorf("expected labels and fixes: %+v", res)
	}
	if got := res.Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text; got != "%f" {
		t.Errorf("unexpected replacement %q", got)
	}
	if run.Results[1].Level != "error" {
		t.Errorf("unexpected level: %+v", run.Results[1])
	}
}

func TestShort(t *testing.T) {
	bag, fs := sampleBag(t)
	fs.SetBaseDir(".")
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, 0, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "warning FMT3005 src/test.c:2:14 ") {
		t.Errorf("unexpected line %q", lines[0])
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.c", []byte("f(x);\n// done\n")))
	toks, ok := lexer.Tokenize(file, lexer.Options{})
	if !ok {
		t.Fatal("tokenize failed")
	}

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(toks) {
		t.Fatalf("expected %d tokens, got %d", len(toks), len(out))
	}
	if out[0].Text != "f" || out[0].Start != "1:1" {
		t.Errorf("unexpected first token %+v", out[0])
	}
	if last := out[len(out)-1]; last.Text != "// done" || last.Start != "2:1" {
		t.Errorf("unexpected comment token %+v", last)
	}

	buf.Reset()
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\"x\" at 1:3-1:4") {
		t.Errorf("unexpected pretty dump:\n%s", buf.String())
	}
}
