package ctype

// Family is the coarse type classification shared by format specifiers and casts.
type Family uint8

const (
	Unknown Family = iota
	Integer
	Unsigned
	Pointer
	String
	Char
	Floating
)

var familyNames = [...]string{
	Unknown:  "unknown",
	Integer:  "integer",
	Unsigned: "unsigned",
	Pointer:  "pointer",
	String:   "string",
	Char:     "char",
	Floating: "floating",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "unknown"
}

// ParseFamily resolves a family name as written in configuration files.
func ParseFamily(s string) (Family, bool) {
	for i, name := range familyNames {
		if name == s && Family(i) != Unknown {
			return Family(i), true
		}
	}
	return Unknown, false
}
