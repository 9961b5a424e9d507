package token_test

import (
	"testing"

	"fmtguard/internal/source"
	"fmtguard/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: uint32(len(text))}, Text: text}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.StringLit, token.CharLit, token.Number}
	for _, k := range lits {
		if !tok(k, "").IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.Comment, token.Punct, token.LParen}
	for _, k := range non {
		if tok(k, "").IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if token.StringLit.String() != "StringLit" {
		t.Fatalf("unexpected name %q", token.StringLit.String())
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Fatalf("unexpected name for unknown kind")
	}
}

func TestIs(t *testing.T) {
	if !tok(token.LParen, "(").Is("(") {
		t.Fatalf("LParen should match (")
	}
	if tok(token.StringLit, `"("`).Is(`"("`) {
		t.Fatalf("literals never match punctuation")
	}
}

func TestStringBody(t *testing.T) {
	tests := []struct {
		kind   token.Kind
		text   string
		body   string
		offset int
	}{
		{token.StringLit, `"hi %d"`, "hi %d", 1},
		{token.StringLit, `u8"x"`, "x", 3},
		{token.StringLit, `L""`, "", 2},
		{token.CharLit, `'\''`, `\'`, 1},
		{token.StringLit, `"open`, "open", 1},
		{token.Ident, "printf", "", 0},
	}
	for _, tt := range tests {
		body, off := tok(tt.kind, tt.text).StringBody()
		if body != tt.body || off != tt.offset {
			t.Errorf("StringBody(%s) = %q,%d; want %q,%d", tt.text, body, off, tt.body, tt.offset)
		}
	}
}
