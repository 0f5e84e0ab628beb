package fuzztests

import (
	"context"
	"testing"
	"time"

	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/driver"
	"walle/internal/lexer"
	"walle/internal/parser"
	"walle/internal/source"
	"walle/internal/testkit"
	"walle/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.pw", clamp(input)))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		for range len(file.Content) + 2 {
			if lx.Next().Kind == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF")
	})
}

func FuzzParser(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.pw", clamp(input)))

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		builder := ast.NewBuilder(ast.Hints{})
		res := parser.ParseProgram(fs, lx, builder, parser.Options{MaxErrors: 64, Reporter: reporter})
		if res.Program == nil {
			t.Fatalf("parser returned no program")
		}
		if bag.Len() == 0 {
			if err := testkit.CheckProgramInvariants(builder, res.Program, file); err != nil {
				t.Fatal(err)
			}
		}
	})
}

func FuzzRun(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		res, err := driver.RunSource(ctx, "fuzz.pw", clamp(input), driver.Options{
			MaxDiagnostics: 64,
			CanvasSize:     16,
			MaxSteps:       10_000,
		})
		if err != nil && ctx.Err() == nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Executed() && res.RuntimeErr == nil && res.Bag.HasErrors() {
			t.Fatalf("clean run left errors in the bag")
		}
	})
}
