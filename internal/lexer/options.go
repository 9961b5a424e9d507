package lexer

import (
	"fmtguard/internal/diag"
	"fmtguard/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем
}

// fatal reports an unterminated construct and stops the lexer: every further
// Next returns EOF. The caller decides whether the file is analysed at all.
func (lx *Lexer) fatal(sp, opener source.Span, msg, what, help string) {
	lx.failed = true
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, diag.LexUnterminated, sp, msg).
		WithLabel(opener, what+" starts here").
		WithHelp(help).
		Emit()
}
