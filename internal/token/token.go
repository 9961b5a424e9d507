package token

import (
	"fmtguard/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a string, char or numeric literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, CharLit, Number:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether the token carries no code (comments).
func (t Token) IsTrivia() bool { return t.Kind == Comment }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token is punctuation with exactly the given text.
func (t Token) Is(text string) bool {
	switch t.Kind {
	case Punct, LParen, RParen, Comma:
		return t.Text == text
	default:
		return false
	}
}

// StringBody returns the content between the quotes of a string or char literal,
// skipping any encoding prefix, together with its byte offset inside Text.
// Unterminated literals return the content up to the end of Text.
func (t Token) StringBody() (body string, offset int) {
	if t.Kind != StringLit && t.Kind != CharLit {
		return "", 0
	}
	q := byte('"')
	if t.Kind == CharLit {
		q = '\''
	}
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == q {
			offset = i + 1
			break
		}
	}
	end := len(t.Text)
	if end > offset && t.Text[end-1] == q {
		end--
	}
	if end < offset {
		end = offset
	}
	return t.Text[offset:end], offset
}
