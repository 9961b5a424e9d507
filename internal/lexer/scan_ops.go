package lexer

import (
	"fmtguard/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// Все операторы имеют вид token.Punct; отдельные виды только у '(', ')' и ','.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, op := range multiCharOps {
		if lx.cursor.EatPrefix(op) {
			return lx.emit(token.Punct, start)
		}
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '[', ']', '{', '}', '.', '&', '*', '+', '-', '~', '!', '/', '%',
		'<', '>', '^', '|', '?', ':', ';', '=', '#':
		return lx.emit(token.Punct, start)
	}
	return lx.emit(token.Other, start)
}

var multiCharOps = [...]string{
	"<<=", ">>=", "...",
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"*=", "/=", "%=", "+=", "-=", "&=", "^=", "|=", "##", "::",
}
