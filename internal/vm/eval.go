package vm

import (
	"walle/internal/ast"
	"walle/internal/value"
)

func (vm *VM) eval(id ast.ExprID) (value.Value, *RuntimeError) {
	e := vm.B.Expr(id)
	if e == nil {
		return value.Value{}, vm.eb.invalidExpression(id, "missing expression")
	}
	exprs := vm.B.Exprs

	switch e.Kind {
	case ast.ExprLiteral:
		lit, _ := exprs.Literal(id)
		return lit.Value, nil

	case ast.ExprVariable:
		v, _ := exprs.Variable(id)
		val, ok := vm.Vars[v.Name]
		if !ok {
			return value.Value{}, vm.eb.undefinedVariable(id, v.Name)
		}
		return val, nil

	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		return vm.evalUnary(u)

	case ast.ExprBinary:
		b, _ := exprs.Binary(id)
		return vm.evalBinary(id, b)

	case ast.ExprBuiltin:
		call, _ := exprs.BuiltinCall(id)
		return vm.callBuiltin(id, call)

	case ast.ExprInvalid:
		inv, _ := exprs.Invalid(id)
		reason := ""
		if inv != nil {
			reason = inv.Reason
		}
		return value.Value{}, vm.eb.invalidExpression(id, reason)
	}
	return value.Value{}, vm.eb.invalidExpression(id, "")
}

func (vm *VM) evalInt(id ast.ExprID) (int, *RuntimeError) {
	v, rerr := vm.eval(id)
	if rerr != nil {
		return 0, rerr
	}
	n, ok := v.AsInt()
	if !ok {
		return 0, vm.eb.typeMismatch(id, value.KindInt, v)
	}
	return n, nil
}

func (vm *VM) evalBool(id ast.ExprID) (bool, *RuntimeError) {
	v, rerr := vm.eval(id)
	if rerr != nil {
		return false, rerr
	}
	b, ok := v.AsBool()
	if !ok {
		return false, vm.eb.typeMismatch(id, value.KindBool, v)
	}
	return b, nil
}

// evalInts evaluates ids left to right, stopping at the first failure.
func (vm *VM) evalInts(ids ...ast.ExprID) ([]int, *RuntimeError) {
	out := make([]int, len(ids))
	for i, id := range ids {
		n, rerr := vm.evalInt(id)
		if rerr != nil {
			return nil, rerr
		}
		out[i] = n
	}
	return out, nil
}

func (vm *VM) evalUnary(u *ast.ExprUnaryData) (value.Value, *RuntimeError) {
	if u.Op == ast.UnaryNot {
		b, rerr := vm.evalBool(u.Operand)
		if rerr != nil {
			return value.Value{}, rerr
		}
		return value.Bool(!b), nil
	}
	n, rerr := vm.evalInt(u.Operand)
	if rerr != nil {
		return value.Value{}, rerr
	}
	return value.Int(-n), nil
}

func (vm *VM) evalBinary(id ast.ExprID, b *ast.ExprBinaryData) (value.Value, *RuntimeError) {
	switch {
	case b.Op.IsLogical():
		return vm.evalLogical(b)

	case b.Op == ast.BinaryEq:
		l, rerr := vm.eval(b.Left)
		if rerr != nil {
			return value.Value{}, rerr
		}
		r, rerr := vm.eval(b.Right)
		if rerr != nil {
			return value.Value{}, rerr
		}
		if l.Kind != r.Kind {
			return value.Value{}, vm.eb.typeMismatch(b.Right, l.Kind, r)
		}
		return value.Bool(l.Equal(r)), nil
	}

	l, rerr := vm.evalInt(b.Left)
	if rerr != nil {
		return value.Value{}, rerr
	}
	r, rerr := vm.evalInt(b.Right)
	if rerr != nil {
		return value.Value{}, rerr
	}

	switch b.Op {
	case ast.BinaryAdd:
		return value.Int(l + r), nil
	case ast.BinarySub:
		return value.Int(l - r), nil
	case ast.BinaryMul:
		return value.Int(l * r), nil
	case ast.BinaryDiv, ast.BinaryMod:
		if r == 0 {
			return value.Value{}, vm.eb.divisionByZero(id, b.Op)
		}
		if b.Op == ast.BinaryDiv {
			return value.Int(l / r), nil
		}
		return value.Int(l % r), nil
	case ast.BinaryPow:
		return value.Int(ipow(l, r)), nil
	case ast.BinaryLt:
		return value.Bool(l < r), nil
	case ast.BinaryLtEq:
		return value.Bool(l <= r), nil
	case ast.BinaryGt:
		return value.Bool(l > r), nil
	case ast.BinaryGtEq:
		return value.Bool(l >= r), nil
	}
	return value.Value{}, vm.eb.invalidExpression(id, "unknown operator "+b.Op.String())
}

// evalLogical short-circuits: the right operand is not evaluated when the
// left one decides the result.
func (vm *VM) evalLogical(b *ast.ExprBinaryData) (value.Value, *RuntimeError) {
	l, rerr := vm.evalBool(b.Left)
	if rerr != nil {
		return value.Value{}, rerr
	}
	if b.Op == ast.BinaryAnd && !l || b.Op == ast.BinaryOr && l {
		return value.Bool(l), nil
	}
	r, rerr := vm.evalBool(b.Right)
	if rerr != nil {
		return value.Value{}, rerr
	}
	return value.Bool(r), nil
}

// ipow is integer exponentiation. Negative exponents truncate toward zero
// as integer division would: only bases 1 and -1 give a non-zero result.
func ipow(base, exp int) int {
	if exp < 0 {
		switch base {
		case 1:
			return 1
		case -1:
			if exp%2 == 0 {
				return 1
			}
			return -1
		}
		return 0
	}
	result := 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
