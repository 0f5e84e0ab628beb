package sema

import (
	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/source"
)

// Options configure a semantic pass over a program.
type Options struct {
	Reporter diag.Reporter
}

// Result stores the artefacts produced by the checker.
type Result struct {
	Vars      *VarTable
	ExprTypes map[ast.ExprID]Type
}

// Check validates prog and reports every violation it finds. It does not
// modify the AST; execution must only proceed when nothing was reported.
func Check(builder *ast.Builder, prog *ast.Program, opts Options) Result {
	res := Result{
		Vars:      NewVarTable(),
		ExprTypes: make(map[ast.ExprID]Type),
	}
	if builder == nil || prog == nil {
		return res
	}

	checker := typeChecker{
		builder:  builder,
		prog:     prog,
		reporter: opts.Reporter,
		result:   &res,
	}
	checker.run()
	return res
}

type typeChecker struct {
	builder  *ast.Builder
	prog     *ast.Program
	reporter diag.Reporter
	result   *Result
}

func (tc *typeChecker) run() {
	tc.seedVariables()
	for _, id := range tc.prog.Instrs {
		tc.checkInstr(id)
	}
}

// seedVariables registers every assignment target as unknown, so reads that
// precede the assignment in program order (reachable through GoTo) resolve.
func (tc *typeChecker) seedVariables() {
	for _, id := range tc.prog.Instrs {
		if a, ok := tc.builder.Instrs.Assign(id); ok {
			tc.result.Vars.Seed(a.Name)
		}
	}
}

// errExpr reports a problem located at expression id.
func (tc *typeChecker) errExpr(code diag.Code, id ast.ExprID, msg string) {
	e := tc.builder.Expr(id)
	if e == nil {
		tc.errAt(code, 0, tc.prog.Span, msg)
		return
	}
	tc.errAt(code, e.Line, e.Span, msg)
}

func (tc *typeChecker) errAt(code diag.Code, line int, sp source.Span, msg string) {
	if tc.reporter == nil {
		return
	}
	tc.reporter.Report(code, line, sp, msg, nil)
}
