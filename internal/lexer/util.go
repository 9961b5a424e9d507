package lexer

import (
	"unicode"
)

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.cursor.PeekRune()
	lx.cursor.Advance(sz)
}

// eatLineSplice consumes a backslash followed by "\n" or "\r\n".
func (lx *Lexer) eatLineSplice() bool {
	n := lx.cursor.SpliceLen()
	lx.cursor.Advance(n)
	return n > 0
}

// Идентификаторы C: ASCII плюс '$' (расширение GCC), остальное через unicode.
func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// isHex также принимает цифры; нужен для разделителя C23 в 0x1'F.
func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// ".5": точка, за которой цифра
func (lx *Lexer) isNumberAfterDot() bool {
	return lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1))
}
