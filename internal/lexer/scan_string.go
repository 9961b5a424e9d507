package lexer

import (
	"fmtguard/internal/token"
)

// scanQuoted читает строковый или символьный литерал, начиная с открывающей
// кавычки (префикс, если был, уже съеден и входит в start).
// Escape-последовательности не декодируются: '\' съедает следующий байт,
// так что \" и \\ не закрывают литерал, а \ + newline продолжает его.
func (lx *Lexer) scanQuoted(start Mark, quote byte) token.Token {
	kind, what := token.StringLit, "string literal"
	if quote == '\'' {
		kind, what = token.CharLit, "character literal"
	}
	openAt := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	opener := lx.cursor.SpanFrom(openAt)

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case '\\':
			if lx.eatLineSplice() {
				continue
			}
			lx.cursor.Bump() // '\\'
			lx.cursor.Bump() // экранированный байт (на EOF ничего не делает)
			continue
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.fatal(tok.Span, opener, "newline in "+what, what,
				"Close the literal with `"+string(quote)+"` on the same line, or continue it with a trailing `\\`.")
			return tok
		}
		lx.cursor.Bump()
	}

	tok := lx.emit(token.Invalid, start)
	lx.fatal(tok.Span, opener, "unterminated "+what, what,
		"Close the literal with `"+string(quote)+"`.")
	return tok
}
