package lexer

import (
	"testing"

	"fmtguard/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for i, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF at %d", i)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek at %d = %q, want %q", i, got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump at %d = %q, want %q", i, got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF")
	}
	// после конца всё нули
	if cursor.Peek() != 0 || cursor.Bump() != 0 || cursor.PeekAt(3) != 0 {
		t.Fatal("expected zero bytes past the end")
	}
	if cursor.Off() != 3 {
		t.Fatalf("Off = %d, want 3", cursor.Off())
	}
}

func TestCursorPrefix(t *testing.T) {
	cursor := NewCursor(createFile("<<= x"))
	if !cursor.HasPrefix("<<") || cursor.HasPrefix("<<=  x!") {
		t.Fatal("HasPrefix mismatch")
	}
	if cursor.EatPrefix(">>") {
		t.Fatal("EatPrefix consumed a mismatch")
	}
	if !cursor.EatPrefix("<<=") || cursor.Peek() != ' ' {
		t.Fatalf("EatPrefix left cursor at %d", cursor.Off())
	}
	cursor.Advance(100)
	if !cursor.EOF() || cursor.Off() != 5 {
		t.Fatalf("Advance past end: off=%d", cursor.Off())
	}
}

func TestCursorSpliceLen(t *testing.T) {
	cases := []struct {
		src  string
		want uint32
	}{
		{"\\\nx", 2},
		{"\\\r\nx", 3},
		{"\\\r", 0},
		{"\\n", 0},
		{"x", 0},
		{"", 0},
	}
	for _, tc := range cases {
		cursor := NewCursor(createFile(tc.src))
		if got := cursor.SpliceLen(); got != tc.want {
			t.Errorf("SpliceLen(%q) = %d, want %d", tc.src, got, tc.want)
		}
	}
}

func TestCursorPeekRune(t *testing.T) {
	cursor := NewCursor(createFile("aé日"))
	want := []struct {
		r    rune
		size uint32
	}{{'a', 1}, {'é', 2}, {'日', 3}}
	for _, w := range want {
		r, size := cursor.PeekRune()
		if r != w.r || size != w.size {
			t.Fatalf("PeekRune = %q/%d, want %q/%d", r, size, w.r, w.size)
		}
		cursor.Advance(size)
	}
	if _, size := cursor.PeekRune(); size != 0 {
		t.Fatalf("PeekRune at EOF size = %d", size)
	}
}

func TestCursorMarkSpan(t *testing.T) {
	file := createFile("printf")
	cursor := NewCursor(file)
	cursor.Bump()
	m := cursor.Mark()
	cursor.Advance(3)
	sp := cursor.SpanFrom(m)
	if sp.File != file.ID || sp.Start != 1 || sp.End != 4 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	if file.Text(sp) != "rin" {
		t.Fatalf("span text = %q", file.Text(sp))
	}
}
