package ctype_test

import (
	"testing"

	"fmtguard/internal/ctype"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int", "int"},
		{"  unsigned   int ", "unsigned int"},
		{"long unsigned int", "unsigned long int"},
		{"long long unsigned", "unsigned long long"},
		{"char*", "char*"},
		{"const char *", "char*"},
		{"char * restrict", "char*"},
		{"char* restrict", "char*"},
		{"void * const * volatile", "void**"},
		{"size_t", "size_t"},
		{"const size_t", "size_t"},
		{"struct foo *", "struct foo*"},
		{"FILE*", "FILE*"},
		{"long double", "long double"},
	}
	for _, tt := range tests {
		got, err := ctype.Normalize(tt.in)
		if err != nil {
			t.Errorf("Normalize(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "*", "a * b", "int[3]", "foo bar", "const", "struct", "x + 1", "1"} {
		if _, err := ctype.Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestParseKeepsQualifiers(t *testing.T) {
	typ, err := ctype.Parse("const char * restrict")
	if err != nil {
		t.Fatal(err)
	}
	if typ.Pointers != 1 || len(typ.Quals) != 2 || typ.Quals[0] != "const" || typ.Quals[1] != "restrict" {
		t.Fatalf("unexpected type %+v", typ)
	}
}

func TestFamilyNames(t *testing.T) {
	for _, f := range []ctype.Family{ctype.Integer, ctype.Unsigned, ctype.Pointer, ctype.String, ctype.Char, ctype.Floating} {
		got, ok := ctype.ParseFamily(f.String())
		if !ok || got != f {
			t.Errorf("ParseFamily(%q) = %v,%v", f.String(), got, ok)
		}
	}
	if _, ok := ctype.ParseFamily("unknown"); ok {
		t.Fatalf("unknown is not a configurable family")
	}
}
