package sema

import (
	"fmt"

	"walle/internal/ast"
	"walle/internal/diag"
)

func (tc *typeChecker) checkInstr(id ast.InstrID) {
	in := tc.builder.Instr(id)
	if in == nil {
		return
	}
	instrs := tc.builder.Instrs

	switch in.Kind {
	case ast.InstrSpawn:
		d, _ := instrs.Spawn(id)
		tc.requireInts("Spawn", d.X, d.Y)

	case ast.InstrColor:
		d, _ := instrs.Color(id)
		if tc.expect(d.Color, TypeString, "argument of Color") {
			tc.checkColorLiteral(d.Color)
		}

	case ast.InstrSize:
		d, _ := instrs.Size(id)
		tc.requireInts("Size", d.Size)

	case ast.InstrDrawLine:
		d, _ := instrs.DrawLine(id)
		tc.requireInts("DrawLine", d.DX, d.DY, d.Dist)
		for _, dir := range []ast.ExprID{d.DX, d.DY} {
			if n, ok := tc.constInt(dir); ok && (n < -1 || n > 1) {
				tc.errExpr(diag.SemaDirection, dir, fmt.Sprintf("DrawLine direction must be -1, 0 or 1, got %d", n))
			}
		}

	case ast.InstrDrawCircle:
		d, _ := instrs.DrawCircle(id)
		tc.requireInts("DrawCircle", d.DX, d.DY, d.Radius)

	case ast.InstrDrawRectangle:
		d, _ := instrs.DrawRectangle(id)
		tc.requireInts("DrawRectangle", d.DX, d.DY, d.Dist, d.Width, d.Height)

	case ast.InstrFill, ast.InstrLabel:
		// nothing to check

	case ast.InstrAssign:
		d, _ := instrs.Assign(id)
		tc.checkAssign(in, d)

	case ast.InstrGoTo:
		d, _ := instrs.GoTo(id)
		if !d.LabelReported {
			if _, ok := tc.prog.Labels.Lookup(d.Label); !ok {
				tc.errAt(diag.SemaUndefinedLabel, in.Line, d.LabelSpan, fmt.Sprintf("label '%s' is not defined", d.Label))
			}
		}
		if t := tc.typeOf(d.Cond); !accepts(TypeBool, t) {
			tc.errExpr(diag.SemaConditionType, d.Cond, fmt.Sprintf("GoTo condition must be bool, got %s", t))
		}
	}
}

func (tc *typeChecker) requireInts(instr string, args ...ast.ExprID) {
	for i, arg := range args {
		tc.expect(arg, TypeInt, fmt.Sprintf("argument %d of %s", i+1, instr))
	}
}

// checkAssign types the right-hand side and refines the variable type.
// Strings are rejected and a concrete type never changes.
func (tc *typeChecker) checkAssign(in *ast.Instr, d *ast.InstrAssignData) {
	t := tc.typeOf(d.Value)
	if t == TypeString {
		tc.errAt(diag.SemaAssignString, in.Line, in.Span, fmt.Sprintf("cannot assign a string to '%s'", d.Name))
		return
	}
	if !t.IsKnown() {
		return
	}
	cur, _ := tc.result.Vars.Lookup(d.Name)
	if cur.IsKnown() && cur != t {
		tc.errAt(diag.SemaAssignConflict, in.Line, in.Span,
			fmt.Sprintf("variable '%s' is %s, cannot assign %s", d.Name, cur, t))
		return
	}
	tc.result.Vars.Set(d.Name, t)
}
