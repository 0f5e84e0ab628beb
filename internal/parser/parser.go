package parser

import (
	"slices"

	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/lexer"
	"walle/internal/source"
	"walle/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// ForwardLabels lets GoTo name a label defined further down; the validator
	// then checks it against the complete table.
	ForwardLabels bool
}

// Enough reports whether the error limit was reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program *ast.Program
	Bag     *diag.Bag
}

// Parser holds the state for one program.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token
	lastLine int

	instrs  []ast.InstrID
	labels  *ast.LabelTable
	stmtErr bool // a syntax error was already reported for the current statement
}

// ParseProgram parses the whole token stream of lx into a Program.
// Diagnostics go to opts.Reporter; parsing always runs to EOF.
func ParseProgram(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
		lastLine: 1,
		labels:   ast.NewLabelTable(),
	}

	startSpan := lx.Peek().Span
	p.parseInstrs()

	prog := &ast.Program{
		File:   lx.File().ID,
		Span:   startSpan.Cover(p.lx.Peek().Span),
		Instrs: p.instrs,
		Labels: p.labels,
	}

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = r.Bag
	case *diag.BagReporter:
		bag = r.Bag
	}
	return Result{Program: prog, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseInstrs is the statement loop: one instruction per line until EOF.
func (p *Parser) parseInstrs() {
	p.skipNewLines()
	if !p.at(token.KwSpawn) {
		tok := p.lx.Peek()
		p.report(diag.SynMissingSpawn, p.getDiagnosticSpan(), p.diagLine(tok), "program must begin with Spawn")
	}

	for {
		p.skipNewLines()
		if p.at(token.EOF) {
			return
		}
		p.stmtErr = false

		id, ok := p.parseInstr()
		if ok && !p.atOr(token.NewLine, token.EOF) {
			tok := p.lx.Peek()
			p.err(diag.SynUnexpectedToken, "unexpected "+describe(tok)+" after instruction")
			ok = false
		}
		if ok {
			p.instrs = append(p.instrs, id)
			continue
		}
		p.resyncLine()
	}
}

// parseInstr dispatches on the leading token of a statement.
func (p *Parser) parseInstr() (ast.InstrID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwSpawn:
		return p.parseSpawn()
	case token.KwColor:
		return p.parseColor()
	case token.KwSize:
		return p.parseSize()
	case token.KwDrawLine:
		return p.parseDrawLine()
	case token.KwDrawCircle:
		return p.parseDrawCircle()
	case token.KwDrawRectangle:
		return p.parseDrawRectangle()
	case token.KwFill:
		return p.parseFill()
	case token.KwGoTo:
		return p.parseGoTo()
	case token.Ident:
		switch p.lx.PeekN(1).Kind {
		case token.NewLine, token.EOF:
			return p.parseLabel()
		case token.Arrow:
			return p.parseAssign()
		}
	case token.Invalid:
		// already reported by the lexer
		p.stmtErr = true
		return ast.NoInstrID, false
	}
	p.err(diag.SynUnknownInstruction, "unknown instruction "+describe(tok))
	return ast.NoInstrID, false
}

func (p *Parser) skipNewLines() {
	for p.at(token.NewLine) {
		p.advance()
	}
}
