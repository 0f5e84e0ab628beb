package driver

import (
	"context"
	"errors"
	"strconv"

	"walle/internal/canvas"
	"walle/internal/diag"
	"walle/internal/trace"
	"walle/internal/vm"
)

// RunResult extends CheckResult with the execution outcome. VM is nil when
// the front end reported errors and execution was skipped.
type RunResult struct {
	*CheckResult
	VM         *vm.VM
	Canvas     *canvas.Canvas
	RuntimeErr *vm.RuntimeError
}

// Executed reports whether the interpreter ran.
func (r *RunResult) Executed() bool { return r != nil && r.VM != nil }

// Run checks path and executes it when the front end is clean.
func Run(ctx context.Context, path string, opts Options) (*RunResult, error) {
	checked, err := Check(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return Execute(ctx, checked, opts)
}

// RunSource is Run for an in-memory program.
func RunSource(ctx context.Context, name string, src []byte, opts Options) (*RunResult, error) {
	return Execute(ctx, CheckSource(ctx, name, src, opts), opts)
}

// Execute runs an already checked program. The runtime diagnostic, if any,
// is added to the same bag. The returned error is reserved for failures
// outside the program, such as cancellation.
func Execute(ctx context.Context, checked *CheckResult, opts Options) (*RunResult, error) {
	res := &RunResult{CheckResult: checked}
	if !checked.OK() {
		return res, nil
	}

	machine, err := vm.New(checked.Builder, checked.Program, vm.Options{
		CanvasSize: opts.CanvasSize,
		MaxSteps:   opts.MaxSteps,
		OnPixel:    opts.OnPixel,
		Reporter:   diag.BagReporter{Bag: checked.Bag},
		Tracer:     opts.ExecTracer,
		Files:      checked.FileSet,
	})
	if err != nil {
		return nil, err
	}
	res.VM = machine
	res.Canvas = machine.Canvas

	idx := opts.Timer.Begin("run")
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "run", trace.CurrentSpan(ctx).SpanID)
	runCtx := trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	err = machine.Run(runCtx)

	detail := "ok"
	if errors.As(err, &res.RuntimeErr) {
		detail = res.RuntimeErr.Code.ID()
		err = nil
	} else if err != nil {
		detail = err.Error()
	}
	span.WithExtra("steps", strconv.Itoa(machine.Steps)).End(detail)
	opts.Timer.End(idx, strconv.Itoa(machine.Steps)+" steps")
	return res, err
}
