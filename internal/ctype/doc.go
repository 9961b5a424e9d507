// Package ctype parses the type-name inside a C cast, such as
// `const unsigned long *` or `char* restrict`, and normalises its spelling so
// that different layouts of the same type compare equal.
//
// Only the subset needed to classify printf arguments is understood: a run of
// specifier/qualifier words followed by pointer declarators. Arrays, function
// pointers and parenthesised declarators are rejected.
package ctype
