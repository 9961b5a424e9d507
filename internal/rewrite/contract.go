package rewrite

import (
	"fmt"

	"fmtguard/internal/ctype"
)

// SafeCallContract describes the runtime that optimized calls link against:
// the function prefix and the formatter tag for each argument family.
type SafeCallContract struct {
	Version int
	Prefix  string
	Tags    map[ctype.Family]string
}

// DefaultContract is version 1 of the safe_* runtime.
var DefaultContract = SafeCallContract{
	Version: 1,
	Prefix:  "safe_",
	Tags: map[ctype.Family]string{
		ctype.Integer:  "fmt_int",
		ctype.Unsigned: "fmt_uint",
		ctype.Pointer:  "fmt_ptr",
		ctype.String:   "fmt_string",
		ctype.Char:     "fmt_char",
		ctype.Floating: "fmt_float",
	},
}

var contractFamilies = []ctype.Family{
	ctype.Integer, ctype.Unsigned, ctype.Pointer, ctype.String, ctype.Char, ctype.Floating,
}

// Validate checks that every family has a tag.
func (c SafeCallContract) Validate() error {
	if c.Version < 1 {
		return fmt.Errorf("safe call contract: bad version %d", c.Version)
	}
	if c.Prefix == "" {
		return fmt.Errorf("safe call contract v%d: empty prefix", c.Version)
	}
	for _, fam := range contractFamilies {
		if c.Tags[fam] == "" {
			return fmt.Errorf("safe call contract v%d: no tag for %s", c.Version, fam)
		}
	}
	return nil
}

// Tag is the formatter tag for fam.
func (c SafeCallContract) Tag(fam ctype.Family) string {
	return c.Tags[fam]
}
