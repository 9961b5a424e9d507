package format

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SegmentKind classifies a Segment.
type SegmentKind uint8

const (
	SegText    SegmentKind = iota // literal text, escapes included verbatim
	SegPercent                    // "%%"
	SegSpec                       // a conversion directive
)

// Segment is one piece of a format string.
type Segment struct {
	Kind       SegmentKind
	Raw        string
	Start, End int
	Spec       *Specifier // set for SegSpec
}

const flagChars = "-+ #0'"

var lengthMods = []string{"hh", "ll", "h", "l", "j", "z", "t", "L", "q"}

// allowedLengths lists the length modifiers each conversion accepts;
// the leading ",," entry is "no modifier".
var allowedLengths = map[Conversion]string{
	ConvInt:       ",,hh,h,l,ll,j,z,t,q,",
	ConvUnsigned:  ",,hh,h,l,ll,j,z,t,q,",
	ConvWriteBack: ",,hh,h,l,ll,j,z,t,q,",
	ConvFloat:     ",,l,L,",
	ConvChar:      ",,l,",
	ConvString:    ",,l,",
	ConvPointer:   ",,",
}

// Parse splits raw literal content into segments.
func Parse(content string) []Segment {
	var segs []Segment
	litStart := 0
	flush := func(end int) {
		if end > litStart {
			segs = append(segs, Segment{Kind: SegText, Raw: content[litStart:end], Start: litStart, End: end})
		}
	}

	for i := 0; i < len(content); {
		if n := percentAt(content, i); n > 0 {
			flush(i)
			seg := parseDirective(content, i, n)
			segs = append(segs, seg)
			i = seg.End
			litStart = i
			continue
		}
		if content[i] == '\\' {
			i += escapeLen(content, i)
		} else {
			i++
		}
	}
	flush(len(content))
	return segs
}

// parseDirective разбирает директиву, чей `%` занимает n байт (1 или escape).
func parseDirective(s string, start, n int) Segment {
	j := start + n
	if m := percentAt(s, j); m > 0 {
		return Segment{Kind: SegPercent, Raw: s[start : j+m], Start: start, End: j + m}
	}

	spec := &Specifier{Start: start}
	finish := func(problem string) Segment {
		spec.End = j
		spec.Raw = s[start:j]
		spec.Problem = problem
		if problem != "" {
			spec.Conv = ConvInvalid
		}
		return Segment{Kind: SegSpec, Raw: spec.Raw, Start: start, End: j, Spec: spec}
	}

	// %1$d
	k := j
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	if k > j && k < len(s) && s[k] == '$' {
		j = k + 1
		for j < len(s) && !isConvTerminator(s[j]) {
			j++
		}
		if j < len(s) && s[j] != '\\' && s[j] != '%' {
			j++
		}
		return finish("positional arguments (`%n$`) are not supported")
	}

	for j < len(s) && strings.IndexByte(flagChars, s[j]) >= 0 {
		j++
	}
	spec.Flags = s[start+n : j]

	j, spec.Width = parseAmount(s, j)
	if j < len(s) && s[j] == '.' {
		j++
		j, spec.Precision = parseAmount(s, j)
		if spec.Precision.Kind == AmountNone {
			spec.Precision = Amount{Kind: AmountLiteral}
		}
	}

	for _, m := range lengthMods {
		if strings.HasPrefix(s[j:], m) {
			spec.Length = m
			j += len(m)
			break
		}
	}

	if j >= len(s) {
		return finish("incomplete format specifier")
	}
	c := s[j]
	spec.Conv = conversionOf(c)
	if spec.Conv == ConvInvalid {
		if c == '\\' || c == '"' {
			return finish("incomplete format specifier")
		}
		_, size := utf8.DecodeRuneInString(s[j:])
		j += size
		if c == '%' {
			return finish("`%%` takes no flags, width, precision or length")
		}
		return finish(fmt.Sprintf("unknown conversion `%%%s`", s[j-size:j]))
	}
	spec.Verb = c
	j++
	if !strings.Contains(allowedLengths[spec.Conv], ","+spec.Length+",") {
		return finish(fmt.Sprintf("length modifier `%s` is not valid with `%%%c`", spec.Length, c))
	}
	return finish("")
}

func parseAmount(s string, j int) (int, Amount) {
	if j < len(s) && s[j] == '*' {
		return j + 1, Amount{Kind: AmountStar}
	}
	k := j
	v := 0
	for k < len(s) && isDigit(s[k]) {
		if v < 1<<20 {
			v = v*10 + int(s[k]-'0')
		}
		k++
	}
	if k == j {
		return j, Amount{}
	}
	return k, Amount{Kind: AmountLiteral, Value: v}
}

func conversionOf(c byte) Conversion {
	switch c {
	case 'd', 'i':
		return ConvInt
	case 'u', 'o', 'x', 'X':
		return ConvUnsigned
	case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
		return ConvFloat
	case 'c':
		return ConvChar
	case 's':
		return ConvString
	case 'p':
		return ConvPointer
	case 'n':
		return ConvWriteBack
	}
	return ConvInvalid
}

func isConvTerminator(c byte) bool {
	return conversionOf(c) != ConvInvalid || c == '\\' || c == '%' || c == '"'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isOctal(c byte) bool { return c >= '0' && c <= '7' }

func hexVal(c byte) (int, bool) {
	switch {
	case isDigit(c):
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// escapeLen returns the raw length of the escape sequence at s[i] == '\\'.
// Octal escapes take up to three digits, hex escapes every hex digit.
func escapeLen(s string, i int) int {
	n, _ := decodeEscape(s, i)
	return n
}

// decodeEscape returns the raw length of the escape at s[i] and its value
// for numeric escapes, -1 otherwise.
func decodeEscape(s string, i int) (int, int) {
	j := i + 1
	if j >= len(s) {
		return 1, -1
	}
	switch {
	case isOctal(s[j]):
		v := 0
		k := j
		for k < len(s) && k < j+3 && isOctal(s[k]) {
			v = v*8 + int(s[k]-'0')
			k++
		}
		return k - i, v
	case s[j] == 'x':
		v := 0
		k := j + 1
		for k < len(s) {
			d, ok := hexVal(s[k])
			if !ok {
				break
			}
			if v < 1<<16 {
				v = v*16 + d
			}
			k++
		}
		if k == j+1 {
			return 2, -1
		}
		return k - i, v
	}
	return 2, -1
}

// percentAt returns the raw length of a `%` at s[i], written directly or as
// a numeric escape (`\x25`, `\045`), and 0 when s[i] does not start one.
func percentAt(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	switch s[i] {
	case '%':
		return 1
	case '\\':
		if n, v := decodeEscape(s, i); v == '%' {
			return n
		}
	}
	return 0
}
