package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"fmtguard/internal/source"
)

// FormatShortDiagnostics renders diagnostics one per line:
//
//	error FMT3003 path/to/file.c:3:12 message
//
// Labels are rendered as "note" lines when includeLabels is set. The order of
// diags is preserved; callers sort the Bag beforehand.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeLabels bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]string, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if line, ok := shortLine(fs, d.Severity.Label(), d.Code, d.Primary, d.Message); ok {
			lines = append(lines, line)
		}
		if !includeLabels {
			continue
		}
		for _, l := range d.Labels {
			if l.Msg == "" {
				continue
			}
			if line, ok := shortLine(fs, "note", d.Code, l.Span, l.Msg); ok {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(fs *source.FileSet, sev string, code Code, span source.Span, msg string) (string, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return "", false
	}
	start := file.LineCol(span.Start)
	path := normalizePath(file.FormatPath("relative", fs.BaseDir()))
	return fmt.Sprintf("%s %s %s:%d:%d %s", sev, code.ID(), path, start.Line, start.Col, sanitizeMessage(msg)), true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
