// Package format parses printf format strings into an ordered list of
// segments: literal text, `%%` and conversion specifiers.
//
// The parser walks the raw literal content (escapes unresolved). A backslash
// and the byte after it are always literal text, so `\%` is not a directive.
// Every segment keeps its content offsets; a Model built from string-literal
// tokens also maps them to file spans, including across adjacent literals
// ("a" "%d") that C concatenates.
//
// Invariant: concatenating Segment.Raw in order reproduces the content.
package format
