// Package vm executes a validated program against a canvas.
//
// The interpreter walks the instruction list with a program counter. Every
// instruction advances pc by one except a GoTo whose condition is true,
// which jumps to the index recorded in the label table. Execution stops when
// pc runs past the last instruction, on the first runtime failure, or when
// the context is cancelled.
//
// A failure is returned as a *RuntimeError and also reported once through
// Options.Reporter. The canvas keeps every pixel painted before the
// failing instruction.
package vm
