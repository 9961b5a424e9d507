package lexer

import (
	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	failed bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен, включая комментарии; пробелы пропускаются.
// После EOF (или фатальной ошибки) всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.failed {
		return lx.eof()
	}

	lx.skipSpace()
	if lx.cursor.EOF() {
		return lx.eof()
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '/' && lx.atComment():
		return lx.scanComment()
	case ch == '"':
		return lx.scanQuoted(lx.cursor.Mark(), '"')
	case ch == '\'':
		return lx.scanQuoted(lx.cursor.Mark(), '\'')
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		// u8"..", L'x' и прочие префиксы литералов разбираются там же
		return lx.scanIdent()
	case isDec(ch), ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Failed reports whether an unterminated literal or comment stopped the lexer.
func (lx *Lexer) Failed() bool {
	return lx.failed
}

// All drains the lexer and returns every token before EOF.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

// Tokenize lexes the whole file. ok is false when the file hit a fatal error;
// the tokens produced up to that point are still returned.
func Tokenize(file *source.File, opts Options) (toks []token.Token, ok bool) {
	lx := New(file, opts)
	toks = lx.All()
	return toks, !lx.Failed()
}

func (lx *Lexer) eof() token.Token {
	return token.Token{
		Kind: token.EOF,
		Span: lx.emptySpan(),
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off(), End: lx.cursor.Off()}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

// skipSpace пропускает пробелы, переводы строк и склейки строк (\ + newline).
func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			lx.cursor.Bump()
		case '\\':
			if !lx.eatLineSplice() {
				return
			}
		default:
			return
		}
	}
}
