package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (e.g. an unterminated literal).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier or keyword; C keywords are not distinguished.
	Ident
	// Punct represents any operator or punctuator other than parens and comma.
	Punct
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// Comma represents ','.
	Comma
	// StringLit represents a string literal including its prefix and quotes.
	StringLit
	// CharLit represents a character literal including its prefix and quotes.
	CharLit
	// Comment represents a '//' or '/* */' comment.
	Comment
	// Number represents a preprocessing number (integer or floating literal).
	Number
	// Other represents a byte that starts no C token (stray '@', '$', '`', non-ASCII).
	Other
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	Punct:     "Punct",
	LParen:    "LParen",
	RParen:    "RParen",
	Comma:     "Comma",
	StringLit: "StringLit",
	CharLit:   "CharLit",
	Comment:   "Comment",
	Number:    "Number",
	Other:     "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
