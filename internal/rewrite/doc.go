// Package rewrite turns a check.Analysis into source edits.
//
// Rewrites never re-serialise the file: each transform produces span
// replacements over the original bytes and Apply splices them in. Typecast
// wraps arguments in explicit casts; Optimize restructures plain calls into the
// safe_* runtime calling convention described by SafeCallContract.
package rewrite
