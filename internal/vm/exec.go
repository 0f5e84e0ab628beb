package vm

import (
	"walle/internal/ast"
	"walle/internal/canvas"
	"walle/internal/value"
)

// exec runs one instruction and returns the next pc.
func (vm *VM) exec(id ast.InstrID, in *ast.Instr) (int, *RuntimeError) {
	next := vm.PC + 1
	instrs := vm.B.Instrs

	switch in.Kind {
	case ast.InstrSpawn:
		d, _ := instrs.Spawn(id)
		return next, vm.execSpawn(d)

	case ast.InstrColor:
		d, _ := instrs.Color(id)
		col, rerr := vm.evalColor(d.Color)
		if rerr != nil {
			return next, rerr
		}
		vm.Pen.Color = col
		return next, nil

	case ast.InstrSize:
		d, _ := instrs.Size(id)
		n, rerr := vm.evalInt(d.Size)
		if rerr != nil {
			return next, rerr
		}
		vm.Pen.Size = NormalizeBrush(n)
		return next, nil

	case ast.InstrDrawLine:
		d, _ := instrs.DrawLine(id)
		args, rerr := vm.evalInts(d.DX, d.DY, d.Dist)
		if rerr != nil {
			return next, rerr
		}
		return next, vm.drawLine(args[0], args[1], args[2])

	case ast.InstrDrawCircle:
		d, _ := instrs.DrawCircle(id)
		args, rerr := vm.evalInts(d.DX, d.DY, d.Radius)
		if rerr != nil {
			return next, rerr
		}
		return next, vm.drawCircle(args[0], args[1], args[2])

	case ast.InstrDrawRectangle:
		d, _ := instrs.DrawRectangle(id)
		args, rerr := vm.evalInts(d.DX, d.DY, d.Dist, d.Width, d.Height)
		if rerr != nil {
			return next, rerr
		}
		return next, vm.drawRectangle(args[0], args[1], args[2], args[3], args[4])

	case ast.InstrFill:
		return next, vm.fill()

	case ast.InstrAssign:
		d, _ := instrs.Assign(id)
		v, rerr := vm.eval(d.Value)
		if rerr != nil {
			return next, rerr
		}
		if v.Kind == value.KindString {
			return next, vm.eb.typeMismatch(d.Value, value.KindInt, v)
		}
		vm.Vars[d.Name] = v
		return next, nil

	case ast.InstrLabel:
		return next, nil

	case ast.InstrGoTo:
		d, _ := instrs.GoTo(id)
		cond, rerr := vm.evalBool(d.Cond)
		if rerr != nil || !cond {
			return next, rerr
		}
		target, ok := vm.Prog.Labels.Lookup(d.Label)
		if !ok {
			return next, vm.eb.undefinedLabel(d.Label)
		}
		return target, nil
	}
	return next, vm.eb.unknownInstruction(in.Kind)
}

func (vm *VM) execSpawn(d *ast.InstrSpawnData) *RuntimeError {
	args, rerr := vm.evalInts(d.X, d.Y)
	if rerr != nil {
		return rerr
	}
	x, y := args[0], args[1]
	if !vm.Canvas.InBounds(x, y) {
		return vm.eb.spawnOutOfBounds(x, y)
	}
	vm.Pen.X, vm.Pen.Y = x, y
	vm.Pen.Spawned = true
	return nil
}

func (vm *VM) evalColor(id ast.ExprID) (canvas.Color, *RuntimeError) {
	v, rerr := vm.eval(id)
	if rerr != nil {
		return canvas.None, rerr
	}
	name, ok := v.AsString()
	if !ok {
		return canvas.None, vm.eb.typeMismatch(id, value.KindString, v)
	}
	col, ok := canvas.ParseColor(name)
	if !ok {
		return canvas.None, vm.eb.unknownColor(id, name)
	}
	return col, nil
}
