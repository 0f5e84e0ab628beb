package ast

import (
	"testing"

	"walle/internal/source"
	"walle/internal/value"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena returned an element")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("allocate: id=%d len=%d", id, a.Len())
	}
}

func TestExprAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	lit := b.Exprs.NewLiteral(source.Span{}, 1, value.Int(3))
	v := b.Exprs.NewVariable(source.Span{}, 1, "n")
	sum := b.Exprs.NewBinary(source.Span{}, 1, BinaryAdd, lit, v)

	if _, ok := b.Exprs.Binary(lit); ok {
		t.Errorf("literal accepted as binary")
	}
	data, ok := b.Exprs.Binary(sum)
	if !ok || data.Left != lit || data.Right != v || data.Op != BinaryAdd {
		t.Fatalf("binary payload = %+v", data)
	}
	if name, _ := b.Exprs.Variable(v); name.Name != "n" {
		t.Errorf("variable name = %q", name.Name)
	}
	args := []ExprID{lit}
	call := b.Exprs.NewBuiltinCall(source.Span{}, 1, BuiltinIsBrushSize, args)
	args[0] = v
	if c, _ := b.Exprs.BuiltinCall(call); c.Args[0] != lit {
		t.Errorf("builtin args not copied")
	}
}

func TestOperatorClasses(t *testing.T) {
	for _, op := range []BinaryOp{BinaryAdd, BinarySub, BinaryMul, BinaryDiv, BinaryMod, BinaryPow} {
		if !op.IsArithmetic() || op.IsRelational() || op.IsLogical() {
			t.Errorf("%s misclassified", op)
		}
	}
	for _, op := range []BinaryOp{BinaryLt, BinaryLtEq, BinaryGt, BinaryGtEq} {
		if !op.IsRelational() || op.IsArithmetic() {
			t.Errorf("%s misclassified", op)
		}
	}
	if BinaryEq.IsRelational() || BinaryEq.IsArithmetic() || BinaryEq.IsLogical() {
		t.Errorf("== misclassified")
	}
	if !BinaryOr.IsLogical() || BinaryOr.String() != "||" {
		t.Errorf("|| misclassified")
	}
}

func TestLookupBuiltin(t *testing.T) {
	b, ok := LookupBuiltin("GetColorCount")
	if !ok || b != BuiltinGetColorCount || b.String() != "GetColorCount" {
		t.Fatalf("lookup = %v %v", b, ok)
	}
	if _, ok := LookupBuiltin("getcolorcount"); ok {
		t.Errorf("lookup must be case-sensitive")
	}
}

func TestLabelTableKeepsFirstDefinition(t *testing.T) {
	tab := NewLabelTable()
	if _, ok := tab.Define(LabelDef{Name: "Loop", Index: 2, Line: 2}); !ok {
		t.Fatalf("first define failed")
	}
	prev, ok := tab.Define(LabelDef{Name: "Loop", Index: 5, Line: 5})
	if ok || prev.Line != 2 {
		t.Fatalf("duplicate accepted: %+v %v", prev, ok)
	}
	if idx, _ := tab.Lookup("Loop"); idx != 2 || tab.Len() != 1 {
		t.Errorf("lookup = %d len = %d", idx, tab.Len())
	}
	var nilTab *LabelTable
	if _, ok := nilTab.Lookup("x"); ok || nilTab.Len() != 0 {
		t.Errorf("nil table should be empty")
	}
}
