package lexer

import (
	"fmtguard/internal/token"
)

func (lx *Lexer) atComment() bool {
	return lx.cursor.HasPrefix("//") || lx.cursor.HasPrefix("/*")
}

// scanComment читает // ... до конца строки или /* ... */ (без вложенности).
// Склейка строк (\ + newline) продолжает однострочный комментарий, как в C.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Bump() == '/' {
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if b == '\n' {
				break
			}
			if b == '\\' && lx.eatLineSplice() {
				continue
			}
			lx.cursor.Bump()
		}
		return lx.emit(token.Comment, start)
	}

	opener := lx.cursor.SpanFrom(start)
	for !lx.cursor.EOF() {
		if lx.cursor.EatPrefix("*/") {
			return lx.emit(token.Comment, start)
		}
		lx.cursor.Bump()
	}

	tok := lx.emit(token.Invalid, start)
	lx.fatal(tok.Span, opener, "unterminated block comment", "comment",
		"Close the comment with `*/`.")
	return tok
}
