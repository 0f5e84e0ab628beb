package sema

import (
	"fmt"

	"walle/internal/ast"
	"walle/internal/canvas"
	"walle/internal/diag"
	"walle/internal/value"
)

// typeOf computes and records the type of an expression.
func (tc *typeChecker) typeOf(id ast.ExprID) Type {
	t := tc.exprType(id)
	tc.result.ExprTypes[id] = t
	return t
}

func (tc *typeChecker) exprType(id ast.ExprID) Type {
	e := tc.builder.Expr(id)
	if e == nil {
		return TypeUnknown
	}

	switch e.Kind {
	case ast.ExprLiteral:
		lit, _ := tc.builder.Exprs.Literal(id)
		return literalType(lit.Value)

	case ast.ExprVariable:
		v, _ := tc.builder.Exprs.Variable(id)
		t, ok := tc.result.Vars.Lookup(v.Name)
		if !ok {
			tc.errExpr(diag.SemaUndefinedVariable, id, fmt.Sprintf("variable '%s' is never assigned", v.Name))
			return TypeUnknown
		}
		return t

	case ast.ExprUnary:
		u, _ := tc.builder.Exprs.Unary(id)
		return tc.unaryType(id, u)

	case ast.ExprBinary:
		b, _ := tc.builder.Exprs.Binary(id)
		return tc.binaryType(id, b)

	case ast.ExprBuiltin:
		call, _ := tc.builder.Exprs.BuiltinCall(id)
		return tc.builtinType(id, call)

	case ast.ExprInvalid:
		reason := "invalid expression"
		if inv, ok := tc.builder.Exprs.Invalid(id); ok && inv.Reason != "" {
			reason = inv.Reason
		}
		tc.errExpr(diag.SemaInvalidExpression, id, reason)
		return TypeUnknown
	}
	return TypeUnknown
}

func literalType(v value.Value) Type {
	switch v.Kind {
	case value.KindInt:
		return TypeInt
	case value.KindBool:
		return TypeBool
	case value.KindString:
		return TypeString
	default:
		return TypeUnknown
	}
}

func (tc *typeChecker) unaryType(id ast.ExprID, u *ast.ExprUnaryData) Type {
	t := tc.typeOf(u.Operand)
	want := TypeInt
	if u.Op == ast.UnaryNot {
		want = TypeBool
	}
	if !accepts(want, t) {
		tc.errExpr(diag.SemaOperandType, id, fmt.Sprintf("operator '%s' expects %s, got %s", u.Op, want, t))
		return TypeUnknown
	}
	return want
}

func (tc *typeChecker) binaryType(id ast.ExprID, b *ast.ExprBinaryData) Type {
	lt := tc.typeOf(b.Left)
	rt := tc.typeOf(b.Right)

	var operand, result Type
	switch {
	case b.Op.IsArithmetic():
		operand, result = TypeInt, TypeInt
	case b.Op.IsRelational():
		operand, result = TypeInt, TypeBool
	case b.Op.IsLogical():
		operand, result = TypeBool, TypeBool
	default: // ==
		if lt.IsKnown() && rt.IsKnown() && lt != rt {
			tc.errExpr(diag.SemaOperandType, id, fmt.Sprintf("operator '==' compares %s with %s", lt, rt))
			return TypeUnknown
		}
		return TypeBool
	}

	if !accepts(operand, lt) || !accepts(operand, rt) {
		tc.errExpr(diag.SemaOperandType, id,
			fmt.Sprintf("operator '%s' expects %s operands, got %s and %s", b.Op, operand, lt, rt))
		return TypeUnknown
	}
	return result
}

func (tc *typeChecker) builtinType(id ast.ExprID, call *ast.ExprBuiltinData) Type {
	sig := builtinSignatures[call.Builtin]
	if len(call.Args) != len(sig.params) {
		for _, arg := range call.Args {
			tc.typeOf(arg)
		}
		tc.errExpr(diag.SemaBuiltinArity, id,
			fmt.Sprintf("%s expects %d argument%s, got %d", call.Builtin, len(sig.params), plural(len(sig.params)), len(call.Args)))
		return TypeUnknown
	}

	ok := true
	for i, arg := range call.Args {
		want := sig.params[i]
		if !tc.expect(arg, want, fmt.Sprintf("argument %d of %s", i+1, call.Builtin)) {
			ok = false
			continue
		}
		if want == TypeString && !tc.checkColorLiteral(arg) {
			ok = false
		}
	}
	if !ok {
		return TypeUnknown
	}
	return sig.result
}

// expect types arg and reports when it is not want.
func (tc *typeChecker) expect(arg ast.ExprID, want Type, what string) bool {
	got := tc.typeOf(arg)
	if accepts(want, got) {
		return true
	}
	tc.errExpr(diag.SemaArgType, arg, fmt.Sprintf("%s must be %s, got %s", what, want, got))
	return false
}

// checkColorLiteral reports string literals that are not palette names.
func (tc *typeChecker) checkColorLiteral(id ast.ExprID) bool {
	lit, ok := tc.builder.Exprs.Literal(id)
	if !ok || lit.Value.Kind != value.KindString {
		return true
	}
	if _, known := canvas.ParseColor(lit.Value.Str); known {
		return true
	}
	tc.errExpr(diag.SemaUnknownColor, id, fmt.Sprintf("unknown color %q", lit.Value.Str))
	return false
}

// constInt folds integer literals and their negations.
func (tc *typeChecker) constInt(id ast.ExprID) (int, bool) {
	if lit, ok := tc.builder.Exprs.Literal(id); ok {
		return lit.Value.AsInt()
	}
	if u, ok := tc.builder.Exprs.Unary(id); ok && u.Op == ast.UnaryNeg {
		n, ok := tc.constInt(u.Operand)
		return -n, ok
	}
	return 0, false
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
