package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"fmtguard/internal/diag"
	"fmtguard/internal/token"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestListSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.c"), "")
	writeFile(t, filepath.Join(dir, "sub", "a.h"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".git", "x.c"), "")
	explicit := filepath.Join(dir, "notes.txt")

	files, err := ListSources([]string{dir, explicit, filepath.Join(dir, "b.c")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "b.c"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "sub", "a.h"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("got %v, want %v", files, want)
		}
	}
}

func TestListSourcesEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.md"), "")
	if _, err := ListSources([]string{dir}); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
	if _, err := ListSources([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatal("expected stat error")
	}
}

func TestCheckFilesOrderAndProgress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.c"), `printf("%s is %s", input);`+"\n")
	writeFile(t, filepath.Join(dir, "b.c"), `printf("ok\n");`+"\n")
	writeFile(t, filepath.Join(dir, "c.c"), `printf("%d", 1, 2);`+"\n")

	var seen atomic.Int32
	res, err := CheckPaths(context.Background(), []string{dir}, Options{
		Jobs:     2,
		Timings:  true,
		Progress: func(FileResult) { seen.Add(1) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen.Load() != 3 {
		t.Fatalf("progress called %d times", seen.Load())
	}
	if len(res.Files) != 3 || filepath.Base(res.Files[0].Path) != "a.c" || filepath.Base(res.Files[2].Path) != "c.c" {
		t.Fatalf("unexpected order: %+v", res.Files)
	}
	if !res.HasErrors() {
		t.Fatal("a.c must fail")
	}
	if res.Files[1].Bag.Len() != 0 {
		t.Fatalf("b.c must be clean: %v", res.Files[1].Bag.Items())
	}
	codes := []diag.Code{}
	for _, d := range res.Bag().Items() {
		codes = append(codes, d.Code)
	}
	if len(codes) != 2 || codes[0] != diag.FmtExcessSpecifiers || codes[1] != diag.FmtExcessArguments {
		t.Fatalf("codes = %v", codes)
	}
	if res.Files[0].Timing == nil || len(res.Timings.Report().Phases) != 3 {
		t.Fatalf("timings missing: %+v", res.Timings.Report())
	}
}

func TestCheckFilesCache(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.c")
	writeFile(t, src, "int n;\nprintf(\"%s\", (long) n);\n")
	cache, err := OpenDiskCache("fmtguard", filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	first, err := CheckFiles(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CheckFiles(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached || !second.Files[0].Cached {
		t.Fatalf("cached flags: %v %v", first.Files[0].Cached, second.Files[0].Cached)
	}
	a := diag.FormatShortDiagnostics(first.Files[0].Bag.Items(), first.FileSet, true)
	b := diag.FormatShortDiagnostics(second.Files[0].Bag.Items(), second.FileSet, true)
	if a != b || a == "" {
		t.Fatalf("cached diagnostics differ:\n%s\n---\n%s", a, b)
	}
	if len(second.Files[0].Bag.Items()[0].Fixes) != 1 {
		t.Fatal("fixes must survive the cache")
	}

	// другой конфиг - другой ключ
	opts.ConfigHash[0] = 1
	third, err := CheckFiles(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Fatal("config change must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	opts.ConfigHash = [32]byte{}
	fourth, err := CheckFiles(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Files[0].Cached {
		t.Fatal("DropAll must empty the cache")
	}
}

func TestCheckFilesMissing(t *testing.T) {
	_, err := CheckFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.c")}, Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestCheckFilesCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.c"), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckPaths(ctx, []string{dir}, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.c")
	if err := WriteOutput(dst, []byte("one"), false); err != nil {
		t.Fatal(err)
	}
	if err := WriteOutput(dst, []byte("two"), false); !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
	if err := os.Chmod(dst, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteOutput(dst, []byte("three"), true); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(dst)
	info, _ := os.Stat(dst)
	if string(data) != "three" || info.Mode().Perm() != 0o600 {
		t.Fatalf("got %q %v", data, info.Mode())
	}
}

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.c")
	writeFile(t, path, "printf(\"x\"); // done\n")
	res, err := Tokenize(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 || len(res.Tokens) == 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.Comment {
		t.Fatalf("last token = %v", last.Kind)
	}
}
