package diagfmt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"

	"fmtguard/internal/source"
)

const tabWidth = 4

// displayText makes raw source bytes printable. Lines that are not valid
// UTF-8 come from single-byte sources and are shown as Latin-1.
func displayText(raw string) string {
	if !utf8.ValidString(raw) {
		if decoded, err := charmap.ISO8859_1.NewDecoder().String(raw); err == nil {
			raw = decoded
		}
	}
	return strings.ReplaceAll(raw, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth is the terminal width of raw once rendered.
func displayWidth(raw string) int {
	return runewidth.StringWidth(displayText(raw))
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

func lineEndOffsetInclusive(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}
