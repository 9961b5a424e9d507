package check

import "fmtguard/internal/ctype"

// verbFor is the conversion character that prints a value of fam.
func verbFor(fam ctype.Family) byte {
	switch fam {
	case ctype.Integer:
		return 'd'
	case ctype.Unsigned:
		return 'u'
	case ctype.Floating:
		return 'f'
	case ctype.Char:
		return 'c'
	case ctype.String:
		return 's'
	case ctype.Pointer:
		return 'p'
	}
	return 0
}
