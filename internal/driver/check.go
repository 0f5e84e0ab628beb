package driver

import (
	"context"
	"fmt"
	"strconv"

	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/lexer"
	"walle/internal/parser"
	"walle/internal/sema"
	"walle/internal/source"
	"walle/internal/trace"
)

// CheckResult is the front-end outcome for one program. Sema is nil when
// the pipeline stopped after parsing.
type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Program *ast.Program
	Sema    *sema.Result
	Bag     *diag.Bag
}

// OK reports whether the program may be executed.
func (r *CheckResult) OK() bool {
	return r != nil && r.Program != nil && !r.Bag.HasErrors()
}

// Parse loads path and builds its AST without validating it.
func Parse(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	fs, file, err := load(path)
	if err != nil {
		return nil, err
	}
	return frontEnd(ctx, fs, file, opts, false), nil
}

// Check loads path and runs lexer, parser and validator.
func Check(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	fs, file, err := load(path)
	if err != nil {
		return nil, err
	}
	return frontEnd(ctx, fs, file, opts, true), nil
}

// CheckSource is Check for an in-memory program.
func CheckSource(ctx context.Context, name string, src []byte, opts Options) *CheckResult {
	fs := source.NewFileSet()
	return frontEnd(ctx, fs, fs.Get(fs.AddVirtual(name, src)), opts, true)
}

func load(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return fs, fs.Get(id), nil
}

// frontEnd parses file and, when validate is set, checks it. Validation
// runs even after syntax errors; invalid nodes simply fail it.
func frontEnd(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, validate bool) *CheckResult {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	idx := opts.Timer.Begin("parse")
	span := trace.Begin(tr, trace.ScopePass, "parse", parent)
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.ParseProgram(fs, lx, builder, parser.Options{
		MaxErrors:     opts.maxErrors(),
		Reporter:      reporter,
		ForwardLabels: opts.ForwardLabels,
	})
	note := strconv.Itoa(parsed.Program.Len()) + " instructions"
	span.WithExtra("diagnostics", strconv.Itoa(bag.Len())).End(note)
	opts.Timer.End(idx, note)

	res := &CheckResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Program: parsed.Program,
		Bag:     bag,
	}
	if !validate {
		return res
	}

	idx = opts.Timer.Begin("sema")
	span = trace.Begin(tr, trace.ScopePass, "sema", parent)
	before := bag.Len()
	sr := sema.Check(builder, parsed.Program, sema.Options{Reporter: reporter})
	res.Sema = &sr
	span.WithExtra("diagnostics", strconv.Itoa(bag.Len()-before)).End("")
	opts.Timer.End(idx, strconv.Itoa(sr.Vars.Len())+" variables")
	return res
}
