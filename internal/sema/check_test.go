package sema

import (
	"fmt"
	"strings"
	"testing"

	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/lexer"
	"walle/internal/parser"
	"walle/internal/source"
)

// checkSource parses input with forward labels enabled and runs the checker.
// Parse diagnostics fail the test so every case exercises the validator only.
func checkSource(t *testing.T, input string) (Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pw", []byte(input))

	parseBag := diag.NewBag(0)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: parseBag}})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseProgram(fs, lx, builder, parser.Options{
		Reporter:      diag.BagReporter{Bag: parseBag},
		ForwardLabels: true,
	})
	if parseBag.HasErrors() {
		t.Fatalf("parse errors: %s", summary(parseBag))
	}

	bag := diag.NewBag(0)
	return Check(builder, res.Program, Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func summary(bag *diag.Bag) string {
	items := bag.Items()
	if len(items) == 0 {
		return "<none>"
	}
	parts := make([]string, len(items))
	for i, d := range items {
		parts[i] = fmt.Sprintf("[%s] line %d: %s", d.Code.ID(), d.Line, d.Message)
	}
	return strings.Join(parts, "; ")
}

func TestValidProgramsHaveNoDiagnostics(t *testing.T) {
	programs := map[string]string{
		"basic": "Spawn(0,0)\nColor(\"Red\")\nSize(3)\nDrawLine(1,0,3)\n",
		"loop": "Spawn(10,10)\n" +
			"i <- 0\n" +
			"Loop\n" +
			"DrawCircle(0,1,i)\n" +
			"i <- i + 1\n" +
			"GoTo[Loop](i < 5 && !(i == 3))\n",
		"negative direction": "Spawn(5,5)\nDrawLine(-1,-1,2)\n",
		"builtins": "Spawn(1,1)\n" +
			"n <- GetColorCount(\"White\", 0, 0, GetCanvasSize() - 1, 3)\n" +
			"b <- IsBrushColor(\"Transparent\") + IsBrushSize(1) + IsCanvasColor(\"Blue\", 0, -1)\n" +
			"x <- GetActualX() * GetActualY() ** 2 % 7\n",
		"bool vars": "Spawn(0,0)\nflag <- 1 < 2\nGoTo[End](flag || false)\nEnd\n",
		"backward read": "Spawn(0,0)\n" +
			"GoTo[Set](false)\n" +
			"Use\n" +
			"DrawLine(0,1,k)\n" +
			"GoTo[Done](true)\n" +
			"Set\n" +
			"k <- 2\n" +
			"GoTo[Use](true)\n" +
			"Done\n",
	}
	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			_, bag := checkSource(t, src)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %s", summary(bag))
			}
		})
	}
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		line int
	}{
		{"arith on bool", "Spawn(0,0)\nx <- 1 + true\n", diag.SemaOperandType, 2},
		{"relational on bool", "Spawn(0,0)\nx <- true < false\n", diag.SemaOperandType, 2},
		{"logical on int", "Spawn(0,0)\nx <- 1 && 2\n", diag.SemaOperandType, 2},
		{"equality mixed", "Spawn(0,0)\nx <- 1 == true\n", diag.SemaOperandType, 2},
		{"negate bool", "Spawn(0,0)\nx <- -true\n", diag.SemaOperandType, 2},
		{"not int", "Spawn(0,0)\nx <- !1\n", diag.SemaOperandType, 2},
		{"assign string", "Spawn(0,0)\nx <- \"Red\"\n", diag.SemaAssignString, 2},
		{"assign conflict", "Spawn(0,0)\nx <- 1\nx <- true\n", diag.SemaAssignConflict, 3},
		{"spawn bool", "Spawn(true,0)\n", diag.SemaArgType, 1},
		{"size string", "Spawn(0,0)\nSize(\"3\")\n", diag.SemaArgType, 2},
		{"color int", "Spawn(0,0)\nColor(3)\n", diag.SemaArgType, 2},
		{"color unknown", "Spawn(0,0)\nColor(\"Pink\")\n", diag.SemaUnknownColor, 2},
		{"direction", "Spawn(0,0)\nDrawLine(2,0,3)\n", diag.SemaDirection, 2},
		{"negative direction", "Spawn(0,0)\nDrawLine(0,-2,3)\n", diag.SemaDirection, 2},
		{"rectangle bool", "Spawn(0,0)\nDrawRectangle(0,0,0,true,1)\n", diag.SemaArgType, 2},
		{"undefined label", "Spawn(0,0)\nGoTo[Nowhere](true)\n", diag.SemaUndefinedLabel, 2},
		{"condition int", "Spawn(0,0)\nL\nGoTo[L](1)\n", diag.SemaConditionType, 3},
		{"builtin arity", "Spawn(0,0)\nx <- GetActualX(1)\n", diag.SemaBuiltinArity, 2},
		{"builtin arg type", "Spawn(0,0)\nx <- IsBrushSize(true)\n", diag.SemaArgType, 2},
		{"builtin color", "Spawn(0,0)\nx <- IsBrushColor(\"Cyan\")\n", diag.SemaUnknownColor, 2},
		{"undefined variable", "Spawn(0,0)\nDrawLine(1,0,steps)\n", diag.SemaUndefinedVariable, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := checkSource(t, tt.src)
			if bag.Len() != 1 {
				t.Fatalf("expected one diagnostic, got %s", summary(bag))
			}
			d := bag.Items()[0]
			if d.Code != tt.code || d.Line != tt.line || d.Category() != diag.CatSemantic {
				t.Errorf("got %s, want %s at line %d", summary(bag), tt.code.ID(), tt.line)
			}
		})
	}
}

func TestUnknownDoesNotCascade(t *testing.T) {
	src := "Spawn(0,0)\nx <- (1 + true) * 2 - 3 < 4\n"
	_, bag := checkSource(t, src)
	if bag.Len() != 1 {
		t.Fatalf("expected a single diagnostic, got %s", summary(bag))
	}
}

func TestEveryViolationIsCollected(t *testing.T) {
	src := "Spawn(0,0)\nColor(1)\nSize(true)\nDrawLine(5,0,1)\nGoTo[Missing](1)\n"
	_, bag := checkSource(t, src)
	if got := bag.Count(diag.CatSemantic); got != 5 {
		t.Fatalf("expected 5 diagnostics, got %s", summary(bag))
	}
}

func TestVariableTypesAreRefined(t *testing.T) {
	src := "Spawn(0,0)\nLoop\ny <- x + 1\nx <- 3\nok <- y > 2\nGoTo[Loop](false)\n"
	res, bag := checkSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", summary(bag))
	}
	want := map[string]Type{"y": TypeInt, "x": TypeInt, "ok": TypeBool}
	for name, typ := range want {
		if got, _ := res.Vars.Lookup(name); got != typ {
			t.Errorf("%s: %v, want %v", name, got, typ)
		}
	}
	if names := res.Vars.Names(); len(names) != 3 || names[0] != "y" || names[1] != "x" {
		t.Errorf("declaration order = %v", names)
	}
}

func TestParserReportedLabelIsNotReportedTwice(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.pw", []byte("Spawn(0,0)\nGoTo[Later](true)\nLater\n"))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseProgram(fs, lexer.New(fs.Get(id), lexer.Options{Reporter: rep}), builder, parser.Options{Reporter: rep})
	Check(builder, res.Program, Options{Reporter: rep})

	if bag.Len() != 1 || bag.Items()[0].Code != diag.SemaUndefinedLabel {
		t.Fatalf("expected one undefined-label diagnostic, got %s", summary(bag))
	}
}

func TestBuiltinArity(t *testing.T) {
	want := map[ast.Builtin]int{
		ast.BuiltinGetActualX:    0,
		ast.BuiltinGetColorCount: 5,
		ast.BuiltinIsCanvasColor: 3,
		ast.BuiltinIsBrushSize:   1,
	}
	for fn, n := range want {
		if got := BuiltinArity(fn); got != n {
			t.Errorf("%s arity = %d, want %d", fn, got, n)
		}
	}
}
