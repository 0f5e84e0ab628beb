package ast

import (
	"walle/internal/source"
	"walle/internal/value"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprInvalid is the sentinel left behind by parse errors.
	ExprInvalid ExprKind = iota
	// ExprLiteral is an integer, boolean or string literal.
	ExprLiteral
	// ExprVariable reads a variable by name.
	ExprVariable
	ExprUnary
	ExprBinary
	// ExprBuiltin calls one of the fixed builtin functions.
	ExprBuiltin
)

func (k ExprKind) String() string {
	switch k {
	case ExprInvalid:
		return "Invalid"
	case ExprLiteral:
		return "Literal"
	case ExprVariable:
		return "Variable"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprBuiltin:
		return "BuiltinCall"
	default:
		return "Expr(?)"
	}
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Line    int
	Payload PayloadID
}

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota // +
	BinarySub                 // -
	BinaryMul                 // *
	BinaryDiv                 // /
	BinaryMod                 // %
	BinaryPow                 // **

	BinaryEq   // ==
	BinaryLt   // <
	BinaryLtEq // <=
	BinaryGt   // >
	BinaryGtEq // >=

	BinaryAnd // &&
	BinaryOr  // ||
)

var binaryOpText = [...]string{
	BinaryAdd:  "+",
	BinarySub:  "-",
	BinaryMul:  "*",
	BinaryDiv:  "/",
	BinaryMod:  "%",
	BinaryPow:  "**",
	BinaryEq:   "==",
	BinaryLt:   "<",
	BinaryLtEq: "<=",
	BinaryGt:   ">",
	BinaryGtEq: ">=",
	BinaryAnd:  "&&",
	BinaryOr:   "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsArithmetic reports whether op maps two integers to an integer.
func (op BinaryOp) IsArithmetic() bool { return op <= BinaryPow }

// IsRelational reports whether op orders two integers.
func (op BinaryOp) IsRelational() bool { return op >= BinaryLt && op <= BinaryGtEq }

// IsLogical reports whether op combines two booleans.
func (op BinaryOp) IsLogical() bool { return op == BinaryAnd || op == BinaryOr }

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota // -
	UnaryNot                // !
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return "?"
	}
}

type ExprLiteralData struct {
	Value value.Value
}

type ExprVariableData struct {
	Name string
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// ExprBuiltinData holds a builtin call. Args keep the order written in the source;
// arity is checked by the validator, not by the parser.
type ExprBuiltinData struct {
	Builtin Builtin
	Args    []ExprID
}

// ExprInvalidData records why an expression could not be built.
type ExprInvalidData struct {
	Reason string
}
