package rewrite

import (
	"fmt"

	"fmtguard/internal/check"
	"fmtguard/internal/source"
)

// Typecast wraps every argument that lacks a recognised cast in the type its
// slot expects: `(int) (100)`. Fixed parameters get the type declared in the
// function table. Arguments that already carry a recognised cast are left
// alone, so running Typecast on its own output changes nothing.
func Typecast(a *check.Analysis) []Edit {
	var edits []Edit
	for i := range a.Calls {
		res := &a.Calls[i]
		if res.Call.Nested {
			continue
		}
		for k := range res.Fixed {
			edits = appendCast(edits, a.File, &res.Fixed[k], res.Call.Func.Fixed[k].CType)
		}
		for _, p := range res.Pairs {
			want := p.Spec.CType()
			if p.Role != check.RoleValue {
				want = "int"
			}
			if want == "" {
				continue
			}
			edits = appendCast(edits, a.File, p.Arg, want)
		}
	}
	return edits
}

func appendCast(edits []Edit, file *source.File, arg *check.TypedArg, ctype string) []Edit {
	if arg.Explicit() {
		return edits
	}
	return append(edits, Edit{
		Span: arg.Arg.Span,
		Text: castText(file, arg, ctype),
	})
}

func castText(file *source.File, arg *check.TypedArg, ctype string) string {
	return fmt.Sprintf("(%s) (%s)", ctype, file.Text(arg.Arg.Span))
}

// TypecastSource returns the file content with Typecast applied.
func TypecastSource(a *check.Analysis) ([]byte, error) {
	out, err := Apply(a.File.Content, Typecast(a))
	if err != nil {
		return nil, fmt.Errorf("typecast %s: %w", a.File.Path, err)
	}
	return out, nil
}
