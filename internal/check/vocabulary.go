package check

import (
	"fmt"
	"sort"

	"fmtguard/internal/ctype"
)

// Vocabulary maps normalised cast spellings to type families.
type Vocabulary struct {
	families map[string]ctype.Family
}

var defaultCasts = map[ctype.Family][]string{
	ctype.Integer: {
		"int", "signed", "signed int", "short", "short int", "signed short", "signed short int",
		"long", "long int", "signed long", "signed long int",
		"long long", "long long int", "signed long long", "signed long long int",
		"signed char", "_Bool",
		"ssize_t", "ptrdiff_t", "intmax_t", "intptr_t",
		"int8_t", "int16_t", "int32_t", "int64_t",
	},
	ctype.Unsigned: {
		"unsigned", "unsigned int", "unsigned short", "unsigned short int",
		"unsigned long", "unsigned long int", "unsigned long long", "unsigned long long int",
		"unsigned char",
		"size_t", "uintmax_t", "uintptr_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t",
	},
	ctype.Floating: {"float", "double", "long double"},
	ctype.Char:     {"char", "wchar_t", "wint_t"},
	ctype.String:   {"char*", "unsigned char*", "wchar_t*"},
	ctype.Pointer: {
		"void*", "void**", "FILE*",
		"int*", "short*", "long*", "long long*", "signed char*",
		"intmax_t*", "size_t*", "ssize_t*", "ptrdiff_t*",
	},
}

// DefaultVocabulary returns the built-in cast spellings.
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{families: make(map[string]ctype.Family, 96)}
	for fam, spellings := range defaultCasts {
		for _, s := range spellings {
			if err := v.Add(s, fam); err != nil {
				panic(err)
			}
		}
	}
	return v
}

// Add registers spelling (any layout, normalised here) as fam.
func (v *Vocabulary) Add(spelling string, fam ctype.Family) error {
	if fam == ctype.Unknown {
		return fmt.Errorf("cast %q: family must not be unknown", spelling)
	}
	canon, err := ctype.Normalize(spelling)
	if err != nil {
		return err
	}
	v.families[canon] = fam
	return nil
}

// Lookup returns the family of a normalised spelling.
func (v *Vocabulary) Lookup(canonical string) (ctype.Family, bool) {
	fam, ok := v.families[canonical]
	return fam, ok
}

// Spellings lists every registered spelling, sorted.
func (v *Vocabulary) Spellings() []string {
	out := make([]string, 0, len(v.families))
	for s := range v.families {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
