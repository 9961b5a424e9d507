// Package trace records what fmtguard is doing while it runs.
//
// Events are spans (begin/end pairs) and points, tagged with a Scope:
// the driver run, one file, one pass over a file (lex, extract, check,
// rewrite) or a single call site. The Level decides which scopes reach the
// output.
//
//	fmtguard check --trace=- --trace-level=file src/
//
// Tracers are carried through the pipeline in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "lex")
//	defer span.End("")
//
// A ring tracer keeps the last events in memory so they can be dumped
// when the run fails with an internal error.
package trace
