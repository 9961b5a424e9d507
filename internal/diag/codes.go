package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnterminated Code = 1001

	// Разбор вызовов
	SynUnbalancedParens Code = 2001
	SynEmptyArgument    Code = 2002
	SynMissingArguments Code = 2003

	// Форматные строки
	FmtNonLiteral       Code = 3001
	FmtInvalidSpecifier Code = 3002
	FmtExcessSpecifiers Code = 3003
	FmtExcessArguments  Code = 3004
	FmtTypeMismatch     Code = 3005
	FmtWriteBack        Code = 3006
)

var (
	codeTag = map[Code]string{
		UnknownCode:         "Unknown",
		LexUnterminated:     "UnterminatedLiteralOrComment",
		SynUnbalancedParens: "UnbalancedParentheses",
		SynEmptyArgument:    "EmptyArgument",
		SynMissingArguments: "MissingArguments",
		FmtNonLiteral:       "NonLiteralFormatString",
		FmtInvalidSpecifier: "InvalidSpecifier",
		FmtExcessSpecifiers: "ExcessSpecifiers",
		FmtExcessArguments:  "ExcessArguments",
		FmtTypeMismatch:     "TypeMismatch",
		FmtWriteBack:        "WriteBackSpecifier",
	}
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		LexUnterminated:     "Unterminated string, character literal or block comment",
		SynUnbalancedParens: "Call has no matching closing parenthesis",
		SynEmptyArgument:    "Empty argument slot in call",
		SynMissingArguments: "Call is missing its fixed or format arguments",
		FmtNonLiteral:       "Format string is not a string literal",
		FmtInvalidSpecifier: "Invalid format specifier",
		FmtExcessSpecifiers: "More specifiers than arguments",
		FmtExcessArguments:  "More arguments than specifiers",
		FmtTypeMismatch:     "Specifier and cast disagree on the argument type",
		FmtWriteBack:        "%n writes through a pointer argument",
	}
)

// Codes lists every known code in ascending order.
func Codes() []Code {
	return []Code{
		LexUnterminated,
		SynUnbalancedParens, SynEmptyArgument, SynMissingArguments,
		FmtNonLiteral, FmtInvalidSpecifier, FmtExcessSpecifiers,
		FmtExcessArguments, FmtTypeMismatch, FmtWriteBack,
	}
}

// ID returns the compact identifier such as "FMT3003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// String returns the stable kind tag ("ExcessSpecifiers").
func (c Code) String() string {
	tag, ok := codeTag[c]
	if !ok {
		return codeTag[UnknownCode]
	}
	return tag
}

// ParseCode resolves either an ID ("FMT3005") or a tag ("TypeMismatch").
func ParseCode(s string) (Code, bool) {
	for _, c := range Codes() {
		if c.ID() == s || c.String() == s {
			return c, true
		}
	}
	return UnknownCode, false
}

// DefaultSeverity is the severity the analyzer reports the code with.
func (c Code) DefaultSeverity() Severity {
	switch c {
	case FmtExcessArguments, FmtTypeMismatch, FmtWriteBack:
		return SevWarning
	}
	return SevError
}
