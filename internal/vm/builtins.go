package vm

import (
	"fmt"

	"walle/internal/ast"
	"walle/internal/value"
)

// builtinArity mirrors the validator's catalog; a mismatch here means the
// program skipped validation.
var builtinArity = map[ast.Builtin]int{
	ast.BuiltinGetActualX:    0,
	ast.BuiltinGetActualY:    0,
	ast.BuiltinGetCanvasSize: 0,
	ast.BuiltinGetColorCount: 5,
	ast.BuiltinIsBrushColor:  1,
	ast.BuiltinIsBrushSize:   1,
	ast.BuiltinIsCanvasColor: 3,
}

func boolInt(b bool) value.Value {
	if b {
		return value.Int(1)
	}
	return value.Int(0)
}

func (vm *VM) callBuiltin(id ast.ExprID, call *ast.ExprBuiltinData) (value.Value, *RuntimeError) {
	if want, ok := builtinArity[call.Builtin]; !ok || want != len(call.Args) {
		return value.Value{}, vm.eb.invalidExpression(id,
			fmt.Sprintf("%s called with %d arguments", call.Builtin, len(call.Args)))
	}
	args := call.Args

	switch call.Builtin {
	case ast.BuiltinGetActualX, ast.BuiltinGetActualY:
		if !vm.Pen.Spawned {
			return value.Value{}, vm.eb.notSpawned(call.Builtin.String())
		}
		if call.Builtin == ast.BuiltinGetActualX {
			return value.Int(vm.Pen.X), nil
		}
		return value.Int(vm.Pen.Y), nil

	case ast.BuiltinGetCanvasSize:
		return value.Int(vm.Canvas.Size()), nil

	case ast.BuiltinGetColorCount:
		col, rerr := vm.evalColor(args[0])
		if rerr != nil {
			return value.Value{}, rerr
		}
		c, rerr := vm.evalInts(args[1:]...)
		if rerr != nil {
			return value.Value{}, rerr
		}
		return value.Int(vm.Canvas.Count(col, c[0], c[1], c[2], c[3])), nil

	case ast.BuiltinIsBrushColor:
		col, rerr := vm.evalColor(args[0])
		if rerr != nil {
			return value.Value{}, rerr
		}
		return boolInt(vm.Pen.Color == col), nil

	case ast.BuiltinIsBrushSize:
		n, rerr := vm.evalInt(args[0])
		if rerr != nil {
			return value.Value{}, rerr
		}
		return boolInt(vm.Pen.Size == n), nil

	case ast.BuiltinIsCanvasColor:
		if !vm.Pen.Spawned {
			return value.Value{}, vm.eb.notSpawned(call.Builtin.String())
		}
		col, rerr := vm.evalColor(args[0])
		if rerr != nil {
			return value.Value{}, rerr
		}
		off, rerr := vm.evalInts(args[1], args[2])
		if rerr != nil {
			return value.Value{}, rerr
		}
		vertical, horizontal := off[0], off[1]
		return boolInt(vm.Canvas.At(vm.Pen.X+horizontal, vm.Pen.Y+vertical) == col), nil
	}
	return value.Value{}, vm.eb.invalidExpression(id, "unknown builtin "+call.Builtin.String())
}
