package format

import (
	"strings"

	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

// Piece is one string-literal token of a (possibly concatenated) format string.
type Piece struct {
	Tok        token.Token
	Prefix     string // u8, u, U, L or ""
	Start, End int    // content offsets
	FileStart  uint32 // file offset of the first body byte
}

// Model is a parsed format string together with its source mapping.
type Model struct {
	Content  string
	Pieces   []Piece
	Segments []Segment
	Specs    []*Specifier // SegSpec directives in order
}

// FromTokens builds a model from string-literal tokens (comments already removed).
// The bodies are concatenated the way the C compiler joins adjacent literals.
func FromTokens(toks []token.Token) *Model {
	m := &Model{}
	var b strings.Builder
	for _, tok := range toks {
		body, off := tok.StringBody()
		start := b.Len()
		b.WriteString(body)
		m.Pieces = append(m.Pieces, Piece{
			Tok:       tok,
			Prefix:    tok.Text[:max(off-1, 0)],
			Start:     start,
			End:       b.Len(),
			FileStart: tok.Span.Start + uint32(off),
		})
	}
	m.Content = b.String()
	m.Segments = Parse(m.Content)
	for i := range m.Segments {
		seg := &m.Segments[i]
		if seg.Spec != nil {
			seg.Spec.Span = m.FileSpan(seg.Start, seg.End)
			m.Specs = append(m.Specs, seg.Spec)
		}
	}
	return m
}

// File returns the file the model was parsed from.
func (m *Model) File() source.FileID {
	if len(m.Pieces) == 0 {
		return 0
	}
	return m.Pieces[0].Tok.Span.File
}

// Span covers every literal token, quotes and prefixes included.
func (m *Model) Span() source.Span {
	if len(m.Pieces) == 0 {
		return source.Span{}
	}
	return m.Pieces[0].Tok.Span.Cover(m.Pieces[len(m.Pieces)-1].Tok.Span)
}

// HasPrefix reports whether any piece carries an encoding prefix.
func (m *Model) HasPrefix() bool {
	for _, p := range m.Pieces {
		if p.Prefix != "" {
			return true
		}
	}
	return false
}

// ArgCount is the number of variadic arguments the format string consumes.
func (m *Model) ArgCount() int {
	n := 0
	for _, s := range m.Specs {
		n += s.ArgCount()
	}
	return n
}

func (m *Model) pieceAt(off int) int {
	for i, p := range m.Pieces {
		if off < p.End {
			return i
		}
	}
	return len(m.Pieces) - 1
}

// FileSpan maps a content range [start, end) to a file span. A range that
// crosses literals covers the quotes between them.
func (m *Model) FileSpan(start, end int) source.Span {
	if len(m.Pieces) == 0 {
		return source.Span{}
	}
	ps := m.Pieces[m.pieceAt(start)]
	last := end - 1
	if end <= start {
		last = start
	}
	pe := m.Pieces[m.pieceAt(last)]
	sp := source.Span{
		File:  ps.Tok.Span.File,
		Start: ps.FileStart + uint32(start-ps.Start),
		End:   pe.FileStart + uint32(last-pe.Start) + 1,
	}
	if end <= start {
		sp.End = sp.Start
	}
	return sp
}

// Literal renders the given non-directive segments as C string-literal text
// for the runtime, which prints literals verbatim: `%%` becomes `%`. Text that
// came from different source literals stays in separate adjacent literals so
// escapes keep their meaning.
func (m *Model) Literal(segs []Segment) string {
	type chunk struct {
		piece int
		text  strings.Builder
	}
	var chunks []*chunk
	add := func(piece int, text string) {
		if n := len(chunks); n > 0 && chunks[n-1].piece == piece {
			chunks[n-1].text.WriteString(text)
			return
		}
		c := &chunk{piece: piece}
		c.text.WriteString(text)
		chunks = append(chunks, c)
	}

	for _, seg := range segs {
		switch seg.Kind {
		case SegPercent:
			add(m.pieceAt(seg.Start), "%")
		case SegText:
			for i := m.pieceAt(seg.Start); i < len(m.Pieces); i++ {
				p := m.Pieces[i]
				lo, hi := max(seg.Start, p.Start), min(seg.End, p.End)
				if lo >= seg.End {
					break
				}
				if hi > lo {
					add(i, m.Content[lo:hi])
				}
			}
		}
	}

	if len(chunks) == 0 {
		return `""`
	}
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = `"` + c.text.String() + `"`
	}
	return strings.Join(parts, " ")
}
