package vm

import (
	"context"
	"errors"
	"fmt"

	"walle/internal/ast"
	"walle/internal/canvas"
	"walle/internal/diag"
	"walle/internal/source"
	"walle/internal/trace"
	"walle/internal/value"
)

// DefaultCanvasSize is used when Options.CanvasSize is zero.
const DefaultCanvasSize = 64

// PixelFunc observes every committed pixel write.
type PixelFunc func(x, y int, c canvas.Color)

// Options configure one run.
type Options struct {
	CanvasSize int
	MaxSteps   int // 0 means unlimited
	OnPixel    PixelFunc
	Reporter   diag.Reporter
	Tracer     *Tracer
	Files      *source.FileSet
}

// VM is the interpreter state for one run. It is not safe for concurrent use.
type VM struct {
	B      *ast.Builder
	Prog   *ast.Program
	Canvas *canvas.Canvas
	Pen    Pen
	Vars   map[string]value.Value
	PC     int
	Steps  int
	Halted bool

	opts Options
	eb   *errorBuilder
}

// New prepares a run of prog on a fresh white canvas.
func New(b *ast.Builder, prog *ast.Program, opts Options) (*VM, error) {
	if b == nil || prog == nil {
		return nil, errors.New("vm: nil program")
	}
	if opts.CanvasSize == 0 {
		opts.CanvasSize = DefaultCanvasSize
	}
	cv, err := canvas.New(opts.CanvasSize)
	if err != nil {
		return nil, fmt.Errorf("vm: %w", err)
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}

	vm := &VM{
		B:      b,
		Prog:   prog,
		Canvas: cv,
		Pen:    newPen(),
		Vars:   make(map[string]value.Value),
		opts:   opts,
	}
	vm.eb = &errorBuilder{vm: vm}
	vm.Halted = prog.Len() == 0
	return vm, nil
}

// Run executes until the program ends, fails or ctx is cancelled. A
// failure is reported once and returned as a *RuntimeError; cancellation
// returns ctx.Err() without a diagnostic.
func (vm *VM) Run(ctx context.Context) error {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	perInstr := tr.Level().ShouldEmit(trace.ScopeInstr)

	for !vm.Halted {
		if err := ctx.Err(); err != nil {
			return err
		}
		if perInstr {
			if in := vm.current(); in != nil {
				trace.Point(tr, trace.ScopeInstr, in.Kind.String(), parent, in.Line, fmt.Sprintf("pc=%d", vm.PC))
			}
		}
		if rerr := vm.Step(); rerr != nil {
			vm.fail(rerr)
			return rerr
		}
	}
	return nil
}

// Step executes the instruction at PC. Once the program has ended it only
// sets Halted.
func (vm *VM) Step() *RuntimeError {
	if vm.Halted {
		return nil
	}
	if vm.PC < 0 || vm.PC >= vm.Prog.Len() {
		vm.Halted = true
		return nil
	}
	if vm.opts.MaxSteps > 0 && vm.Steps >= vm.opts.MaxSteps {
		return vm.eb.stepLimit(vm.opts.MaxSteps)
	}

	in := vm.current()
	vm.opts.Tracer.TraceInstr(vm.Steps, vm.PC, in, vm.Pen)
	vm.Steps++

	next, rerr := vm.exec(vm.Prog.Instrs[vm.PC], in)
	if rerr != nil {
		return rerr
	}
	if next != vm.PC+1 {
		vm.opts.Tracer.TraceJump(vm.PC, next)
	}
	vm.PC = next
	if vm.PC >= vm.Prog.Len() {
		vm.Halted = true
	}
	return nil
}

func (vm *VM) current() *ast.Instr {
	if vm.PC < 0 || vm.PC >= vm.Prog.Len() {
		return nil
	}
	return vm.B.Instr(vm.Prog.Instrs[vm.PC])
}

func (vm *VM) fail(rerr *RuntimeError) {
	vm.Halted = true
	vm.opts.Tracer.TraceError(rerr)
	diag.ReportAt(vm.opts.Reporter, rerr.Code, rerr.Line, rerr.Span, rerr.Message).Emit()
}

// Execute runs prog on a fresh canvas of the given size and returns the
// canvas together with the runtime diagnostics. The error is non-nil only
// for failures that are not diagnostics, such as cancellation.
func Execute(ctx context.Context, b *ast.Builder, prog *ast.Program, size int) (*canvas.Canvas, *diag.Bag, error) {
	bag := diag.NewBag(0)
	vm, err := New(b, prog, Options{CanvasSize: size, Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		return nil, bag, err
	}
	err = vm.Run(ctx)
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		err = nil
	}
	return vm.Canvas, bag, err
}
