package ctype

import (
	"fmt"
	"sort"
	"strings"
)

// Type is a parsed cast type-name.
type Type struct {
	Base     []string // specifier words in canonical order, qualifiers removed
	Quals    []string // qualifiers in source order (const, volatile, restrict, _Atomic)
	Pointers int
}

var qualifiers = map[string]bool{
	"const":    true,
	"volatile": true,
	"restrict": true,
	"_Atomic":  true,
}

// keywordRank orders builtin specifier keywords so that `long unsigned int`
// and `unsigned long int` normalise identically. Non-keywords keep their
// relative order after the keywords.
var keywordRank = map[string]int{
	"signed":   1,
	"unsigned": 1,
	"short":    2,
	"long":     2,
	"char":     3,
	"int":      3,
	"float":    3,
	"double":   3,
	"void":     3,
	"_Bool":    3,
}

// tags introduce a name (`struct foo`) and must stay in front of it.
var tags = map[string]bool{"struct": true, "union": true, "enum": true}

// IsTypeWord reports whether w is a builtin specifier, qualifier or tag keyword.
func IsTypeWord(w string) bool {
	_, builtin := keywordRank[w]
	return builtin || qualifiers[w] || tags[w]
}

// Parse parses the text between the parentheses of a cast.
func Parse(text string) (Type, error) {
	tn, err := parser.ParseString("", text)
	if err != nil {
		return Type{}, fmt.Errorf("parse type-name %q: %w", text, err)
	}

	var t Type
	for _, w := range tn.Words {
		if qualifiers[w] {
			t.Quals = append(t.Quals, w)
			continue
		}
		t.Base = append(t.Base, w)
	}
	for _, p := range tn.Pointers {
		for _, q := range p.Quals {
			if !qualifiers[q] {
				return Type{}, fmt.Errorf("parse type-name %q: unexpected %q after '*'", text, q)
			}
			t.Quals = append(t.Quals, q)
		}
	}
	t.Pointers = len(tn.Pointers)
	if len(t.Base) == 0 {
		return Type{}, fmt.Errorf("parse type-name %q: no type specifier", text)
	}
	if err := t.normalise(); err != nil {
		return Type{}, fmt.Errorf("parse type-name %q: %w", text, err)
	}
	return t, nil
}

func (t *Type) normalise() error {
	named := 0
	for i, w := range t.Base {
		if _, ok := keywordRank[w]; ok {
			continue
		}
		if tags[w] {
			if i+1 >= len(t.Base) {
				return fmt.Errorf("%q without a name", w)
			}
			continue
		}
		if i > 0 && tags[t.Base[i-1]] {
			continue
		}
		named++
	}
	// `foo bar` is a declaration, not a type-name
	if named > 1 {
		return fmt.Errorf("more than one type name")
	}
	if len(t.Base) > 1 && t.Base[0] != "struct" && t.Base[0] != "union" && t.Base[0] != "enum" {
		sort.SliceStable(t.Base, func(i, j int) bool {
			return rank(t.Base[i]) < rank(t.Base[j])
		})
	}
	return nil
}

func rank(w string) int {
	if r, ok := keywordRank[w]; ok {
		return r
	}
	return 4
}

// Canonical is the normalised spelling: base words separated by one space,
// then one '*' per pointer level, qualifiers dropped ("unsigned long", "char*").
func (t Type) Canonical() string {
	return strings.Join(t.Base, " ") + strings.Repeat("*", t.Pointers)
}

// Normalize parses text and returns its canonical spelling.
func Normalize(text string) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}
	return t.Canonical(), nil
}
