package diagfmt

import (
	"io"

	"fmtguard/internal/diag"
	"fmtguard/internal/source"
)

// Short prints one line per diagnostic (see diag.FormatShortDiagnostics).
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, maxItems int, withLabels bool) error {
	items := bag.Items()
	out := diag.FormatShortDiagnostics(items[:limit(len(items), maxItems)], fs, withLabels)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
