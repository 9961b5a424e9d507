// Package check runs the read path over one file: lex, extract call sites,
// parse format strings and pair specifiers with arguments. The resulting
// Analysis is shared by the diagnostics output and the rewriter so both agree
// on call boundaries.
//
// Argument types come only from an explicit leading cast whose spelling is in
// the Vocabulary. Arguments without one are "unknown": counted, never flagged.
package check
