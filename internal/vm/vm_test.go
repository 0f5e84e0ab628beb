package vm_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"walle/internal/ast"
	"walle/internal/canvas"
	"walle/internal/diag"
	"walle/internal/lexer"
	"walle/internal/parser"
	"walle/internal/sema"
	"walle/internal/source"
	"walle/internal/value"
	"walle/internal/vm"
)

type compiled struct {
	b    *ast.Builder
	prog *ast.Program
	fs   *source.FileSet
}

// compile runs the front end and fails the test on any diagnostic.
func compile(t *testing.T, src string) compiled {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pw", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}

	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseProgram(fs, lx, b, parser.Options{Reporter: rep, ForwardLabels: true})
	sema.Check(b, res.Program, sema.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("front end rejected program:\n%s", diag.FormatShortDiagnostics(bag.Items(), fs, false))
	}
	return compiled{b: b, prog: res.Program, fs: fs}
}

type runResult struct {
	vm     *vm.VM
	bag    *diag.Bag
	err    error
	pixels int
}

func run(t *testing.T, src string, opts vm.Options) runResult {
	t.Helper()
	c := compile(t, src)
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	opts.Files = c.fs
	res := runResult{bag: bag}
	inner := opts.OnPixel
	opts.OnPixel = func(x, y int, col canvas.Color) {
		res.pixels++
		if inner != nil {
			inner(x, y, col)
		}
	}
	m, err := vm.New(c.b, c.prog, opts)
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	res.vm = m
	res.err = m.Run(context.Background())
	return res
}

func mustSucceed(t *testing.T, r runResult) {
	t.Helper()
	if r.err != nil || r.bag.HasErrors() {
		t.Fatalf("unexpected failure: %v (%d diagnostics)", r.err, r.bag.Len())
	}
}

func TestNormalizeBrush(t *testing.T) {
	tests := []struct{ in, want int }{
		{4, 3}, {3, 3}, {1, 1}, {2, 1}, {0, 1}, {-3, 1}, {10, 9},
	}
	for _, tt := range tests {
		if got := vm.NormalizeBrush(tt.in); got != tt.want {
			t.Errorf("NormalizeBrush(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRedLine(t *testing.T) {
	r := run(t, "Spawn(0,0)\nColor(\"Red\")\nSize(1)\nDrawLine(1,0,3)\n", vm.Options{CanvasSize: 5})
	mustSucceed(t, r)

	if p := r.vm.Pen; p.X != 3 || p.Y != 0 {
		t.Fatalf("pen at (%d,%d), want (3,0)", p.X, p.Y)
	}
	cv := r.vm.Canvas
	for y := range 5 {
		for x := range 5 {
			want := canvas.White
			if y == 0 && x <= 3 {
				want = canvas.Red
			}
			if got := cv.At(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %s, want %s", x, y, got, want)
			}
		}
	}
	if r.pixels != 4 {
		t.Errorf("DrawLine of distance 3 painted %d points, want 4", r.pixels)
	}
}

func TestGoToFalseFallsThrough(t *testing.T) {
	r := run(t, "Spawn(0,0)\nGoTo[Start](false)\nStart\nColor(\"Blue\")\n", vm.Options{CanvasSize: 4})
	mustSucceed(t, r)
	if r.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", r.bag.Len())
	}
	if r.vm.Pen.Color != canvas.Blue {
		t.Errorf("pen color %s, want Blue", r.vm.Pen.Color)
	}
}

func TestCountedLoop(t *testing.T) {
	src := "Spawn(0,0)\n" +
		"Color(\"Black\")\n" +
		"i <- 0\n" +
		"Loop\n" +
		"DrawLine(1,0,1)\n" +
		"i <- i + 1\n" +
		"GoTo[Loop](i < 3)\n"
	r := run(t, src, vm.Options{CanvasSize: 8})
	mustSucceed(t, r)

	if got, _ := r.vm.Vars["i"].AsInt(); got != 3 {
		t.Errorf("i = %d, want 3", got)
	}
	if r.vm.Pen.X != 3 {
		t.Errorf("pen x = %d, want 3", r.vm.Pen.X)
	}
	if got := r.vm.Canvas.Count(canvas.Black, 0, 0, 7, 0); got != 4 {
		t.Errorf("black pixels on row 0 = %d, want 4", got)
	}
}

func TestRuntimeFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts vm.Options
		code diag.Code
		line int
	}{
		{"spawn outside", "Spawn(5,5)\n", vm.Options{CanvasSize: 4}, diag.RunSpawnOutOfBounds, 1},
		{"negative spawn", "Spawn(-1,0)\n", vm.Options{CanvasSize: 4}, diag.RunSpawnOutOfBounds, 1},
		{"bad direction", "Spawn(0,0)\nd <- 2\nDrawLine(d,0,1)\n", vm.Options{CanvasSize: 4}, diag.RunBadDirection, 3},
		{"division by zero", "Spawn(0,0)\nz <- 0\nx <- 1 / z\n", vm.Options{CanvasSize: 4}, diag.RunDivisionByZero, 3},
		{"modulo by zero", "Spawn(0,0)\nz <- 0\nx <- 1 % z\n", vm.Options{CanvasSize: 4}, diag.RunDivisionByZero, 3},
		{"read before assignment", "Spawn(0,0)\nGoTo[Use](true)\nx <- 1\nUse\ny <- x + 1\n", vm.Options{CanvasSize: 4}, diag.RunUndefinedVariable, 5},
		{"step limit", "Spawn(0,0)\nLoop\nGoTo[Loop](true)\n", vm.Options{CanvasSize: 4, MaxSteps: 10}, diag.RunStepLimit, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.src, tt.opts)
			var rerr *vm.RuntimeError
			if !errors.As(r.err, &rerr) {
				t.Fatalf("expected *RuntimeError, got %v", r.err)
			}
			if rerr.Code != tt.code || rerr.Line != tt.line {
				t.Errorf("got %s at line %d, want %s at line %d", rerr.Code.ID(), rerr.Line, tt.code.ID(), tt.line)
			}
			items := r.bag.Items()
			if len(items) != 1 || items[0].Category() != diag.CatRuntime || items[0].Line != tt.line {
				t.Fatalf("expected exactly one runtime diagnostic on line %d, got %d", tt.line, len(items))
			}
			if !r.vm.Halted {
				t.Errorf("vm should be halted after a failure")
			}
		})
	}
}

func TestFailureKeepsEarlierPixels(t *testing.T) {
	r := run(t, "Spawn(0,0)\nColor(\"Red\")\nDrawLine(0,1,2)\nz <- 0\nx <- 4 / z\n", vm.Options{CanvasSize: 4})
	if r.err == nil {
		t.Fatalf("expected a runtime error")
	}
	if got := r.vm.Canvas.Count(canvas.Red, 0, 0, 0, 3); got != 3 {
		t.Errorf("red pixels = %d, want 3", got)
	}
}

func TestFillIsIdempotent(t *testing.T) {
	r := run(t, "Spawn(1,1)\nColor(\"White\")\nFill()\n", vm.Options{CanvasSize: 4})
	mustSucceed(t, r)
	if r.pixels != 0 {
		t.Errorf("fill over same color notified %d pixels", r.pixels)
	}

	r = run(t, "Spawn(1,1)\nColor(\"Red\")\nFill()\nFill()\n", vm.Options{CanvasSize: 4})
	mustSucceed(t, r)
	if r.pixels != 16 {
		t.Errorf("fill notified %d pixels, want 16", r.pixels)
	}
	if got := r.vm.Canvas.Count(canvas.Red, 0, 0, 3, 3); got != 16 {
		t.Errorf("red pixels = %d, want 16", got)
	}
}

func TestFillStopsAtBorder(t *testing.T) {
	src := "Spawn(0,2)\n" +
		"Color(\"Black\")\n" +
		"DrawLine(1,0,4)\n" +
		"Spawn(0,0)\n" +
		"Color(\"Green\")\n" +
		"Fill()\n"
	r := run(t, src, vm.Options{CanvasSize: 5})
	mustSucceed(t, r)
	cv := r.vm.Canvas
	if got := cv.Count(canvas.Green, 0, 0, 4, 1); got != 10 {
		t.Errorf("green above the line = %d, want 10", got)
	}
	if got := cv.Count(canvas.White, 0, 3, 4, 4); got != 10 {
		t.Errorf("below the line should stay white, got %d", got)
	}
}

func TestTransparentPenPaintsNothing(t *testing.T) {
	r := run(t, "Spawn(0,0)\nDrawLine(1,1,3)\nFill()\n", vm.Options{CanvasSize: 4})
	mustSucceed(t, r)
	if r.pixels != 0 {
		t.Errorf("transparent pen painted %d pixels", r.pixels)
	}
	if r.vm.Pen.X != 3 || r.vm.Pen.Y != 3 {
		t.Errorf("pen should still move, at (%d,%d)", r.vm.Pen.X, r.vm.Pen.Y)
	}
}

func TestShapes(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		r := run(t, "Spawn(5,5)\nColor(\"Red\")\nDrawCircle(0,0,2)\n", vm.Options{CanvasSize: 11})
		mustSucceed(t, r)
		cv := r.vm.Canvas
		for _, p := range [][2]int{{7, 5}, {3, 5}, {5, 7}, {5, 3}} {
			if cv.At(p[0], p[1]) != canvas.Red {
				t.Errorf("(%d,%d) should be on the circle", p[0], p[1])
			}
		}
		if cv.At(5, 5) != canvas.White {
			t.Errorf("centre should stay white")
		}
		if r.vm.Pen.X != 5 || r.vm.Pen.Y != 5 {
			t.Errorf("pen should move to the centre")
		}
	})

	t.Run("circle moves pen along direction", func(t *testing.T) {
		r := run(t, "Spawn(5,5)\nColor(\"Red\")\nDrawCircle(1,0,2)\n", vm.Options{CanvasSize: 11})
		mustSucceed(t, r)
		if r.vm.Pen.X != 7 || r.vm.Pen.Y != 5 {
			t.Errorf("pen at (%d,%d), want (7,5)", r.vm.Pen.X, r.vm.Pen.Y)
		}
	})

	t.Run("rectangle", func(t *testing.T) {
		r := run(t, "Spawn(5,5)\nColor(\"Blue\")\nDrawRectangle(0,0,0,4,2)\n", vm.Options{CanvasSize: 11})
		mustSucceed(t, r)
		cv := r.vm.Canvas
		if got := cv.Count(canvas.Blue, 0, 0, 10, 10); got != 12 {
			t.Errorf("border pixels = %d, want 12", got)
		}
		for _, p := range [][2]int{{3, 4}, {7, 4}, {3, 6}, {7, 6}, {5, 4}, {3, 5}} {
			if cv.At(p[0], p[1]) != canvas.Blue {
				t.Errorf("(%d,%d) should be on the border", p[0], p[1])
			}
		}
		if cv.At(5, 5) != canvas.White {
			t.Errorf("interior should stay white")
		}
	})

	t.Run("brush stamp", func(t *testing.T) {
		r := run(t, "Spawn(0,0)\nColor(\"Red\")\nSize(4)\nDrawLine(0,0,0)\n", vm.Options{CanvasSize: 5})
		mustSucceed(t, r)
		if r.vm.Pen.Size != 3 {
			t.Errorf("brush size %d, want 3", r.vm.Pen.Size)
		}
		// 3x3 brush at a corner is clipped to 2x2.
		if got := r.vm.Canvas.Count(canvas.Red, 0, 0, 4, 4); got != 4 {
			t.Errorf("clipped stamp painted %d pixels, want 4", got)
		}
	})
}

func TestBuiltins(t *testing.T) {
	src := "Spawn(1,1)\n" +
		"Color(\"Red\")\n" +
		"Size(2)\n" +
		"DrawLine(1,0,1)\n" +
		"x <- GetActualX()\n" +
		"y <- GetActualY()\n" +
		"n <- GetCanvasSize()\n" +
		"a <- GetColorCount(\"Red\", 0, 0, 3, 3)\n" +
		"b <- GetColorCount(\"Red\", 3, 3, 0, 0)\n" +
		"c <- GetColorCount(\"Red\", 0, 0, 4, 0)\n" +
		"isRed <- IsBrushColor(\"Red\")\n" +
		"isOne <- IsBrushSize(1)\n" +
		"left <- IsCanvasColor(\"Red\", 0, -1)\n" +
		"below <- IsCanvasColor(\"Red\", 1, 0)\n"
	r := run(t, src, vm.Options{CanvasSize: 4})
	mustSucceed(t, r)

	want := map[string]int{
		"x": 2, "y": 1, "n": 4,
		"a": 2, "b": 2, "c": 0,
		"isRed": 1, "isOne": 1,
		"left": 1, "below": 0,
	}
	for name, w := range want {
		got, ok := r.vm.Vars[name].AsInt()
		if !ok || got != w {
			t.Errorf("%s = %v, want %d", name, r.vm.Vars[name], w)
		}
	}
}

func TestArithmetic(t *testing.T) {
	src := "Spawn(0,0)\n" +
		"a <- 2 ** 10\n" +
		"b <- 2 ** -1\n" +
		"c <- -7 % 3\n" +
		"d <- 7 / 2\n" +
		"e <- 2 ** 3 ** 2\n" +
		"f <- (-1) ** -3\n" +
		"g <- 1 < 2 && 3 >= 3\n" +
		"h <- false || 2 == 3\n"
	r := run(t, src, vm.Options{CanvasSize: 4})
	mustSucceed(t, r)

	want := map[string]value.Value{
		"a": value.Int(1024),
		"b": value.Int(0),
		"c": value.Int(-1),
		"d": value.Int(3),
		"e": value.Int(64),
		"f": value.Int(-1),
		"g": value.Bool(true),
		"h": value.Bool(false),
	}
	for name, w := range want {
		if got := r.vm.Vars[name]; !got.Equal(w) {
			t.Errorf("%s = %s, want %s", name, got, w)
		}
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	r := run(t, "Spawn(0,0)\nz <- 0\nok <- false && 1 / z == 0\n", vm.Options{CanvasSize: 4})
	mustSucceed(t, r)
}

func TestCancelledContext(t *testing.T) {
	c := compile(t, "Spawn(0,0)\nLoop\nGoTo[Loop](true)\n")
	bag := diag.NewBag(0)
	m, err := vm.New(c.b, c.prog, vm.Options{CanvasSize: 4, Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if bag.Len() != 0 {
		t.Errorf("cancellation must not add diagnostics")
	}
}

func TestExecute(t *testing.T) {
	c := compile(t, "Spawn(0,0)\nColor(\"Green\")\nDrawLine(0,1,1)\nSpawn(9,9)\n")
	cv, bag, err := vm.Execute(context.Background(), c.b, c.prog, 4)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.RunSpawnOutOfBounds {
		t.Fatalf("expected one spawn diagnostic, got %d", bag.Len())
	}
	if cv.At(0, 1) != canvas.Green {
		t.Errorf("pixels painted before the failure must survive")
	}
}

func TestExecTracer(t *testing.T) {
	var buf bytes.Buffer
	c := compile(t, "Spawn(0,0)\nGoTo[End](true)\nFill()\nEnd\n")
	m, err := vm.New(c.b, c.prog, vm.Options{CanvasSize: 4, Tracer: vm.NewTracer(&buf, c.fs)})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"[step=0] pc=0 Spawn @ test.pw:1:1",
		"| Spawn(0,0)",
		"jump pc=1 -> pc=4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Fill") {
		t.Errorf("skipped instruction was traced:\n%s", out)
	}
	if m.Steps != 2 {
		t.Errorf("steps = %d, want 2", m.Steps)
	}
}
