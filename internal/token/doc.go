// Package token defines lexical token kinds for C source as fmtguard sees it.
// Invariants:
//   - Token.Text is a copy of the source bytes under Span (escapes unresolved),
//     so it stays valid when the file content is reused.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace is never a token; comments are tokens so that argument spans
//     and rewrites can reason about them.
//   - Preprocessor lines are lexed as ordinary tokens ('#' is Punct).
package token
