package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"fmtguard/internal/diag"
	"fmtguard/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	bold, dim       *color.Color
	help, secondary *color.Color
	removed, added  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:       color.New(color.FgRed, color.Bold),
		warn:      color.New(color.FgYellow, color.Bold),
		info:      color.New(color.FgBlue, color.Bold),
		bold:      color.New(color.Bold),
		dim:       color.New(color.FgBlue),
		help:      color.New(color.FgGreen, color.Bold),
		secondary: color.New(color.FgCyan),
		removed:   color.New(color.FgRed),
		added:     color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.bold, p.dim, p.help, p.secondary, p.removed, p.added} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// mark is one underline inside a code frame.
type mark struct {
	line    uint32
	pad     int // display columns before the underline
	width   int
	msg     string
	primary bool
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
//
//	error[FMT3003]: message
//	  --> path:line:col
//	   |
//	 2 |     printf("%s is %s", input);
//	   |            ^^^^^^^^^^ 1 too many specifiers
//	   = help: ...
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	items := bag.Items()
	n := limit(len(items), opts.Max)

	var b strings.Builder
	for i := range n {
		renderDiagnostic(&b, &items[i], fs, opts, p)
		b.WriteByte('\n')
	}
	if rest := len(items) - n; rest > 0 {
		fmt.Fprintf(&b, "%s %d more diagnostic(s) not shown\n", p.dim.Sprint("..."), rest)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderDiagnostic(b *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	b.WriteString(p.severity(d.Severity).Sprintf("%s[%s]", d.Severity.Label(), d.Code.ID()))
	b.WriteString(p.bold.Sprintf(": %s", d.Message))
	b.WriteByte('\n')

	var file *source.File
	if fs != nil {
		file = fs.Get(d.Primary.File)
	}
	if file == nil {
		renderTrailer(b, d, fs, opts, p, "")
		return
	}

	marks := collectMarks(file, d)
	last := marks[0].line
	for _, m := range marks {
		last = max(last, m.line)
	}
	ctx := uint32(max(opts.Context, 0))
	lastShown := min(last+ctx, file.LineCount())
	indent := strings.Repeat(" ", len(strconv.Itoa(int(lastShown))))
	bar := p.dim.Sprint("|")

	pos := file.LineCol(d.Primary.Start)
	fmt.Fprintf(b, "%s%s %s:%d:%d\n", indent, p.dim.Sprint("-->"), formatPath(file, fs, opts.PathMode), pos.Line, pos.Col)
	fmt.Fprintf(b, "%s %s\n", indent, bar)

	byLine := make(map[uint32][]mark, len(marks))
	for _, m := range marks {
		byLine[m.line] = append(byLine[m.line], m)
	}
	for i, r := range frameRanges(byLine, ctx, file.LineCount()) {
		if i > 0 {
			fmt.Fprintf(b, "%s\n", p.dim.Sprint("..."))
		}
		for line := r[0]; line <= r[1]; line++ {
			num := p.dim.Sprintf("%*d", len(indent), line)
			text := displayText(file.GetLine(line))
			if text == "" {
				fmt.Fprintf(b, "%s %s\n", num, bar)
			} else {
				fmt.Fprintf(b, "%s %s %s\n", num, bar, text)
			}
			for _, m := range byLine[line] {
				renderMark(b, indent, bar, m, d.Severity, p)
			}
		}
	}
	renderTrailer(b, d, fs, opts, p, indent)
}

// frameRanges merges [line-ctx, line+ctx] windows around marked lines;
// consecutive ranges are separated by at least one hidden line.
func frameRanges(byLine map[uint32][]mark, ctx, lineCount uint32) [][2]uint32 {
	lines := make([]uint32, 0, len(byLine))
	for l := range byLine {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })

	var out [][2]uint32
	for _, l := range lines {
		lo := uint32(1)
		if l > ctx {
			lo = l - ctx
		}
		hi := min(l+ctx, max(lineCount, l))
		if n := len(out); n > 0 && lo <= out[n-1][1]+1 {
			out[n-1][1] = max(out[n-1][1], hi)
			continue
		}
		out = append(out, [2]uint32{lo, hi})
	}
	return out
}

func renderMark(b *strings.Builder, indent, bar string, m mark, sev diag.Severity, p palette) {
	c, ch := p.secondary, "-"
	if m.primary {
		c, ch = p.severity(sev), "^"
	}
	under := c.Sprint(strings.Repeat(ch, m.width))
	if m.msg != "" {
		under += " " + c.Sprint(m.msg)
	}
	fmt.Fprintf(b, "%s %s %s%s\n", indent, bar, strings.Repeat(" ", m.pad), under)
}

func renderTrailer(b *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette, indent string) {
	if d.Help != "" {
		fmt.Fprintf(b, "%s %s %s\n", indent, p.dim.Sprint("="), p.help.Sprint("help: ")+d.Help)
	}
	if !opts.ShowFixes {
		return
	}
	for _, fix := range d.Fixes {
		fmt.Fprintf(b, "%s %s %s\n", indent, p.dim.Sprint("="), p.help.Sprint("fix: ")+fix.Title)
		for _, edit := range fix.Edits {
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			for _, l := range preview.before {
				fmt.Fprintf(b, "%s %s\n", indent, p.removed.Sprint("- "+displayText(l)))
			}
			for _, l := range preview.after {
				fmt.Fprintf(b, "%s %s\n", indent, p.added.Sprint("+ "+displayText(l)))
			}
		}
	}
}

// collectMarks turns labels into underlines. The label sitting on the primary
// span is drawn with '^'; if there is none, an unlabeled '^' is added.
func collectMarks(file *source.File, d *diag.Diagnostic) []mark {
	marks := make([]mark, 0, len(d.Labels)+1)
	hasPrimary := false
	for _, l := range d.Labels {
		isPrimary := l.Span == d.Primary
		hasPrimary = hasPrimary || isPrimary
		marks = append(marks, makeMark(file, l.Span, l.Msg, isPrimary))
	}
	if !hasPrimary {
		marks = append([]mark{makeMark(file, d.Primary, "", true)}, marks...)
	}
	sort.SliceStable(marks, func(i, j int) bool {
		if marks[i].line != marks[j].line {
			return marks[i].line < marks[j].line
		}
		return marks[i].pad < marks[j].pad
	})
	return marks
}

func makeMark(file *source.File, sp source.Span, msg string, primary bool) mark {
	line := file.LineCol(sp.Start).Line
	text := file.GetLine(line)
	start := lineStartOffset(file, line)

	from := min(int(sp.Start-start), len(text))
	to := len(text)
	if endLine := file.LineCol(sp.End).Line; endLine == line || sp.End == sp.Start {
		to = min(int(sp.End-start), len(text))
	}
	to = max(to, from)
	return mark{
		line:    line,
		pad:     displayWidth(text[:from]),
		width:   max(displayWidth(text[from:to]), 1),
		msg:     msg,
		primary: primary,
	}
}
