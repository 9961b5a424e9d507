package callsite

import "sort"

// Param is a fixed parameter that precedes the format string.
type Param struct {
	Name  string
	CType string // declared C type, used by the typecast rewrite
}

// Function describes one tracked formatting function.
type Function struct {
	Name  string
	Fixed []Param
}

// FormatIndex is the index of the format-string argument.
func (f Function) FormatIndex() int {
	return len(f.Fixed)
}

// Functions is the closed lookup table of tracked functions keyed by name.
var Functions = map[string]Function{
	"printf": {Name: "printf"},
	"fprintf": {Name: "fprintf", Fixed: []Param{
		{Name: "stream", CType: "FILE*"},
	}},
	"dprintf": {Name: "dprintf", Fixed: []Param{
		{Name: "fd", CType: "int"},
	}},
	"sprintf": {Name: "sprintf", Fixed: []Param{
		{Name: "buffer", CType: "char* restrict"},
	}},
	"snprintf": {Name: "snprintf", Fixed: []Param{
		{Name: "buffer", CType: "char* restrict"},
		{Name: "bufsz", CType: "size_t"},
	}},
}

// Lookup returns the table entry for name.
func Lookup(name string) (Function, bool) {
	f, ok := Functions[name]
	return f, ok
}

// Set is the tracked subset of Functions used for one run.
type Set struct {
	funcs map[string]Function
}

// NewSet tracks every function in Functions except the disabled names.
// Unknown names in disabled are ignored.
func NewSet(disabled ...string) *Set {
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		off[name] = true
	}
	s := &Set{funcs: make(map[string]Function, len(Functions))}
	for name, f := range Functions {
		if !off[name] {
			s.funcs[name] = f
		}
	}
	return s
}

// Lookup reports whether name is tracked in this set.
func (s *Set) Lookup(name string) (Function, bool) {
	if s == nil {
		return Lookup(name)
	}
	f, ok := s.funcs[name]
	return f, ok
}

// Names returns the tracked names in sorted order.
func (s *Set) Names() []string {
	out := make([]string, 0, len(s.funcs))
	for name := range s.funcs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
