package ast

import (
	"walle/internal/source"
	"walle/internal/value"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Literals  *Arena[ExprLiteralData]
	Variables *Arena[ExprVariableData]
	Unaries   *Arena[ExprUnaryData]
	Binaries  *Arena[ExprBinaryData]
	Builtins  *Arena[ExprBuiltinData]
	Invalids  *Arena[ExprInvalidData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Variables: NewArena[ExprVariableData](capHint),
		Unaries:   NewArena[ExprUnaryData](capHint / 4),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Builtins:  NewArena[ExprBuiltinData](capHint / 4),
		Invalids:  NewArena[ExprInvalidData](capHint / 8),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, line int, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Line:    line,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, line int, v value.Value) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Value: v})
	return e.new(ExprLiteral, span, line, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLiteral {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewVariable creates a variable read. The parser never passes an empty name.
func (e *Exprs) NewVariable(span source.Span, line int, name string) ExprID {
	payload := e.Variables.Allocate(ExprVariableData{Name: name})
	return e.new(ExprVariable, span, line, PayloadID(payload))
}

// Variable returns the variable data for the given expression ID.
func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprVariable {
		return nil, false
	}
	return e.Variables.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, line int, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, line, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, line int, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, line, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewBuiltinCall creates a builtin call; args are copied.
func (e *Exprs) NewBuiltinCall(span source.Span, line int, fn Builtin, args []ExprID) ExprID {
	payload := e.Builtins.Allocate(ExprBuiltinData{
		Builtin: fn,
		Args:    append([]ExprID(nil), args...),
	})
	return e.new(ExprBuiltin, span, line, PayloadID(payload))
}

// BuiltinCall returns the call data for the given expression ID.
func (e *Exprs) BuiltinCall(id ExprID) (*ExprBuiltinData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBuiltin {
		return nil, false
	}
	return e.Builtins.Get(uint32(expr.Payload)), true
}

// NewInvalid creates the error sentinel.
func (e *Exprs) NewInvalid(span source.Span, line int, reason string) ExprID {
	payload := e.Invalids.Allocate(ExprInvalidData{Reason: reason})
	return e.new(ExprInvalid, span, line, PayloadID(payload))
}

// Invalid returns the reason data for the given expression ID.
func (e *Exprs) Invalid(id ExprID) (*ExprInvalidData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprInvalid {
		return nil, false
	}
	return e.Invalids.Get(uint32(expr.Payload)), true
}
