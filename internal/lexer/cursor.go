package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"fmtguard/internal/source"
)

// Cursor is a byte position in one file. Past the end every peek yields 0.
type Cursor struct {
	src  []byte
	file source.FileID
	off  uint32
	end  uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{src: f.Content, file: f.ID, end: end}
}

// Off is the current byte offset.
func (c *Cursor) Off() uint32 { return c.off }

func (c *Cursor) EOF() bool { return c.off >= c.end }

// Peek returns the current byte.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.end {
		return 0
	}
	return c.src[c.off+n]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// Advance skips n bytes, stopping at the end.
func (c *Cursor) Advance(n uint32) {
	c.off = min(c.off+n, c.end)
}

// HasPrefix reports whether the input at the cursor starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	if uint32(len(s)) > c.end-c.off {
		return false
	}
	return string(c.src[c.off:c.off+uint32(len(s))]) == s
}

// EatPrefix consumes s if the input starts with it.
func (c *Cursor) EatPrefix(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.off += uint32(len(s))
	return true
}

// SpliceLen is the length of a line splice (`\` + "\n" or "\r\n") at the
// cursor, or 0.
func (c *Cursor) SpliceLen() uint32 {
	switch {
	case c.HasPrefix("\\\n"):
		return 2
	case c.HasPrefix("\\\r\n"):
		return 3
	}
	return 0
}

// PeekRune decodes the rune at the cursor; size 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size uint32) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(c.src[c.off:c.end])
	return r, uint32(sz) // #nosec G115 -- sz <= utf8.UTFMax
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.off) }

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.off}
}
