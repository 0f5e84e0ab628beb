package vm

import (
	"fmt"
	"strings"

	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/source"
	"walle/internal/value"
)

// RuntimeError is the failure that halted a run.
type RuntimeError struct {
	Code    diag.Code
	Message string
	Span    source.Span
	Line    int
	PC      int
	Instr   ast.InstrKind
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error %s at line %d: %s", e.Code.ID(), e.Line, e.Message)
}

// FormatWithFiles renders the error with a resolved file:line:col location.
func (e *RuntimeError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runtime error %s: %s\n", e.Code.ID(), e.Message)
	fmt.Fprintf(&sb, "at %s (pc %d, %s)\n", formatSpan(e.Span, files), e.PC, e.Instr)
	return sb.String()
}

// formatSpan formats a span as "file:line:col" or "<no-span>".
func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || span.Empty() && span.Start == 0 {
		return "<no-span>"
	}
	file := files.Get(span.File)
	if file == nil {
		return "<no-span>"
	}
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

// errorBuilder stamps errors with the location of the current instruction.
type errorBuilder struct {
	vm *VM
}

func (eb *errorBuilder) makeError(code diag.Code, msg string) *RuntimeError {
	e := &RuntimeError{Code: code, Message: msg, PC: eb.vm.PC}
	if in := eb.vm.current(); in != nil {
		e.Span = in.Span
		e.Line = in.Line
		e.Instr = in.Kind
	}
	return e
}

// makeErrorAt narrows the span to an expression while keeping the
// instruction's line.
func (eb *errorBuilder) makeErrorAt(code diag.Code, id ast.ExprID, msg string) *RuntimeError {
	e := eb.makeError(code, msg)
	if ex := eb.vm.B.Expr(id); ex != nil {
		e.Span = ex.Span
	}
	return e
}

func (eb *errorBuilder) spawnOutOfBounds(x, y int) *RuntimeError {
	size := eb.vm.Canvas.Size()
	return eb.makeError(diag.RunSpawnOutOfBounds,
		fmt.Sprintf("Spawn(%d, %d) is outside the %dx%d canvas", x, y, size, size))
}

func (eb *errorBuilder) notSpawned(what string) *RuntimeError {
	return eb.makeError(diag.RunNotSpawned, fmt.Sprintf("%s used before Spawn", what))
}

func (eb *errorBuilder) undefinedVariable(id ast.ExprID, name string) *RuntimeError {
	return eb.makeErrorAt(diag.RunUndefinedVariable, id, fmt.Sprintf("variable '%s' read before assignment", name))
}

func (eb *errorBuilder) typeMismatch(id ast.ExprID, want value.Kind, got value.Value) *RuntimeError {
	return eb.makeErrorAt(diag.RunTypeMismatch, id, fmt.Sprintf("expected %s, got %s %s", want, got.Kind, got))
}

func (eb *errorBuilder) divisionByZero(id ast.ExprID, op ast.BinaryOp) *RuntimeError {
	what := "division"
	if op == ast.BinaryMod {
		what = "modulo"
	}
	return eb.makeErrorAt(diag.RunDivisionByZero, id, what+" by zero")
}

func (eb *errorBuilder) badDirection(dx, dy int) *RuntimeError {
	return eb.makeError(diag.RunBadDirection, fmt.Sprintf("direction (%d, %d) must use components -1, 0 or 1", dx, dy))
}

func (eb *errorBuilder) unknownColor(id ast.ExprID, name string) *RuntimeError {
	return eb.makeErrorAt(diag.RunUnknownColor, id, fmt.Sprintf("unknown color %q", name))
}

func (eb *errorBuilder) stepLimit(limit int) *RuntimeError {
	return eb.makeError(diag.RunStepLimit, fmt.Sprintf("step limit of %d instructions exceeded", limit))
}

func (eb *errorBuilder) unknownInstruction(kind ast.InstrKind) *RuntimeError {
	return eb.makeError(diag.RunUnknownInstruction, fmt.Sprintf("cannot execute %s", kind))
}

func (eb *errorBuilder) invalidExpression(id ast.ExprID, reason string) *RuntimeError {
	if reason == "" {
		reason = "invalid expression"
	}
	return eb.makeErrorAt(diag.RunInvalidExpression, id, reason)
}

func (eb *errorBuilder) undefinedLabel(name string) *RuntimeError {
	return eb.makeError(diag.RunUndefinedLabel, fmt.Sprintf("label '%s' is not defined", name))
}
