// Package callsite finds calls to the tracked printf-family functions in a
// token stream and splits their argument lists at top-level commas.
//
// A call exists only when a tracked identifier is followed, ignoring comments,
// by '(' and a balanced ')'. A bare identifier (`void* p = printf;`) is a
// reference and is skipped. Commas nested in deeper parentheses never split
// arguments, so `(size_t) (1023)` stays one argument.
package callsite
