package format

import (
	"fmtguard/internal/ctype"
	"fmtguard/internal/source"
)

// Conversion is the kind of a directive, derived from its conversion character.
type Conversion uint8

const (
	ConvInvalid   Conversion = iota
	ConvInt                  // d i
	ConvUnsigned             // u o x X
	ConvFloat                // f F e E g G a A
	ConvChar                 // c
	ConvString               // s
	ConvPointer              // p
	ConvWriteBack            // n
)

var convNames = [...]string{
	ConvInvalid:   "invalid",
	ConvInt:       "int",
	ConvUnsigned:  "unsigned",
	ConvFloat:     "float",
	ConvChar:      "char",
	ConvString:    "string",
	ConvPointer:   "pointer",
	ConvWriteBack: "writeback",
}

func (c Conversion) String() string {
	if int(c) < len(convNames) {
		return convNames[c]
	}
	return "invalid"
}

// AmountKind says how a width or precision was given.
type AmountKind uint8

const (
	AmountNone AmountKind = iota
	AmountLiteral
	AmountStar // taken from an extra int argument
)

type Amount struct {
	Kind  AmountKind
	Value int
}

// Specifier is one `%...` directive other than `%%`.
type Specifier struct {
	Raw       string // the whole directive, e.g. "%-08.3lf"
	Flags     string
	Width     Amount
	Precision Amount
	Length    string // "", hh, h, l, ll, j, z, t, L, q
	Verb      byte   // conversion character, 0 when missing
	Conv      Conversion
	Problem   string // why the directive is invalid

	Start, End int         // content-relative, half-open
	Span       source.Span // file-absolute; zero when parsed from a bare string
}

// Family is the argument family the directive expects.
func (s *Specifier) Family() ctype.Family {
	switch s.Conv {
	case ConvInt:
		return ctype.Integer
	case ConvUnsigned:
		return ctype.Unsigned
	case ConvFloat:
		return ctype.Floating
	case ConvChar:
		return ctype.Char
	case ConvString:
		return ctype.String
	case ConvPointer, ConvWriteBack:
		return ctype.Pointer
	default:
		return ctype.Unknown
	}
}

// Stars is the number of `*` width/precision arguments consumed before the value.
func (s *Specifier) Stars() int {
	n := 0
	if s.Width.Kind == AmountStar {
		n++
	}
	if s.Precision.Kind == AmountStar {
		n++
	}
	return n
}

// ArgCount is the number of variadic arguments the directive consumes.
// Invalid directives still consume their value so counting stays aligned.
func (s *Specifier) ArgCount() int {
	return s.Stars() + 1
}

// Plain reports a bare `%d`-style directive with no flags, width, precision or length.
func (s *Specifier) Plain() bool {
	return s.Flags == "" && s.Width.Kind == AmountNone && s.Precision.Kind == AmountNone && s.Length == ""
}

// CType is the C type a value for this directive should be cast to.
// Empty for invalid directives.
func (s *Specifier) CType() string {
	l := s.Length
	switch s.Conv {
	case ConvInt:
		return map[string]string{
			"": "int", "hh": "signed char", "h": "short", "l": "long", "ll": "long long", "q": "long long",
			"j": "intmax_t", "z": "ssize_t", "t": "ptrdiff_t",
		}[l]
	case ConvUnsigned:
		return map[string]string{
			"": "unsigned int", "hh": "unsigned char", "h": "unsigned short", "l": "unsigned long",
			"ll": "unsigned long long", "q": "unsigned long long", "j": "uintmax_t", "z": "size_t", "t": "size_t",
		}[l]
	case ConvFloat:
		if l == "L" {
			return "long double"
		}
		return "double"
	case ConvChar:
		if l == "l" {
			return "wint_t"
		}
		return "char"
	case ConvString:
		if l == "l" {
			return "wchar_t*"
		}
		return "char*"
	case ConvPointer:
		return "void*"
	case ConvWriteBack:
		return map[string]string{
			"": "int*", "hh": "signed char*", "h": "short*", "l": "long*", "ll": "long long*", "q": "long long*",
			"j": "intmax_t*", "z": "size_t*", "t": "ptrdiff_t*",
		}[l]
	}
	return ""
}
