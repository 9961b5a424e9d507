package ctype

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var castLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Star", `\*`, nil},
		{"Whitespace", `[ \t\r\n\v\f]+`, nil},
	},
})

// typeName is `words pointer*`, e.g. `const char * const *`.
type typeName struct {
	Words    []string   `@Ident+`
	Pointers []*pointer `@@*`
}

type pointer struct {
	Star  string   `@Star`
	Quals []string `@Ident*`
}

var parser = buildParser()

func buildParser() *participle.Parser[typeName] {
	p, err := participle.Build[typeName](
		participle.Lexer(castLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build cast parser: %w", err))
	}
	return p
}
