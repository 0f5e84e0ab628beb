// Package trace records structured events while a program moves through the
// pipeline.
//
// Tracing is switched on from the command line:
//
//	walle run --trace=- --trace-level=phase picture.pw
//
// # Levels and scopes
//
// Every event carries a Scope. The configured Level decides which scopes
// are written:
//
//   - LevelPhase: ScopeDriver and ScopePass (lex, parse, sema, run)
//   - LevelDetail: adds ScopeProgram (one event per checked file)
//   - LevelDebug: adds ScopeInstr (one event per executed instruction)
//
// LevelError writes nothing while running; combined with the ring mode it
// keeps the most recent events in memory so they can be dumped when a run
// fails.
//
// # Propagation
//
// The tracer travels in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
