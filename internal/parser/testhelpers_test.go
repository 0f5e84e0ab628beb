package parser

import (
	"fmt"
	"strings"
	"testing"

	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/lexer"
	"walle/internal/source"
)

type parsed struct {
	prog   *ast.Program
	arenas *ast.Builder
	bag    *diag.Bag
}

func parseSource(t *testing.T, input string, opts Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pw", []byte(input))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}

	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	arenas := ast.NewBuilder(ast.Hints{})
	opts.Reporter = rep
	res := ParseProgram(fs, lx, arenas, opts)
	if res.Bag != bag {
		t.Fatalf("result bag does not match reporter bag")
	}
	return parsed{prog: res.Program, arenas: arenas, bag: bag}
}

func (p parsed) kinds() []ast.InstrKind {
	out := make([]ast.InstrKind, 0, len(p.prog.Instrs))
	for _, id := range p.prog.Instrs {
		out = append(out, p.arenas.Instr(id).Kind)
	}
	return out
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] line %d: %s", d.Code.ID(), d.Line, d.Message)
	}
	return strings.Join(lines, "; ")
}

// render prints an expression fully parenthesised.
func render(b *ast.Builder, id ast.ExprID) string {
	e := b.Expr(id)
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ast.ExprLiteral:
		lit, _ := b.Exprs.Literal(id)
		return lit.Value.String()
	case ast.ExprVariable:
		v, _ := b.Exprs.Variable(id)
		return v.Name
	case ast.ExprUnary:
		u, _ := b.Exprs.Unary(id)
		return "(" + u.Op.String() + render(b, u.Operand) + ")"
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return "(" + render(b, bin.Left) + " " + bin.Op.String() + " " + render(b, bin.Right) + ")"
	case ast.ExprBuiltin:
		call, _ := b.Exprs.BuiltinCall(id)
		args := make([]string, len(call.Args))
		for i, a := range call.Args {
			args[i] = render(b, a)
		}
		return call.Builtin.String() + "(" + strings.Join(args, ", ") + ")"
	default:
		return "<invalid>"
	}
}
