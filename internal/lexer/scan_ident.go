package lexer

import (
	"fmtguard/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdent сканирует идентификатор. Ключевые слова C не выделяются.
// Если идентификатор является префиксом литерала (u8, u, U, L) и сразу за ним кавычка,
// сканируется литерал целиком вместе с префиксом.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if sz == 0 {
		return lx.emit(token.Invalid, start)
	}
	if r < utf8RuneSelf {
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			return lx.emit(token.Other, start)
		}
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= utf8RuneSelf {
			r2, sz2 := lx.cursor.PeekRune()
			if sz2 > 0 && isIdentContinueRune(r2) {
				lx.bumpRune()
				continue
			}
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && isLiteralPrefix(lx.file.Content[sp.Start:sp.End]) {
		return lx.scanQuoted(start, q)
	}
	return lx.emit(token.Ident, start)
}

func isLiteralPrefix(b []byte) bool {
	switch string(b) {
	case "u8", "u", "U", "L":
		return true
	default:
		return false
	}
}
