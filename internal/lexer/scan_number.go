package lexer

import (
	"fmtguard/internal/token"
)

// scanNumber читает preprocessing number: цифра (или .цифра), затем
// [0-9a-zA-Z_.] и знаки после e/E/p/P. Суффиксы (u, l, f) входят в токен.
// Разделитель цифр C23 (') допускается между цифрами.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
			if b == 'e' || b == 'E' || b == 'p' || b == 'P' {
				if s := lx.cursor.Peek(); s == '+' || s == '-' {
					lx.cursor.Bump()
				}
			}
		case b == '\'':
			if isHex(lx.cursor.PeekAt(1)) {
				lx.cursor.Bump()
				continue
			}
			return lx.emit(token.Number, start)
		default:
			return lx.emit(token.Number, start)
		}
	}
	return lx.emit(token.Number, start)
}
