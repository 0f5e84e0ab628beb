package parser

import (
	"fmt"

	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/source"
	"walle/internal/token"
	"walle/internal/value"
)

// commandArgs parses the argument list of a command and fits it to
// len(fillers) values. Missing arguments are replaced by the fillers and
// extra ones dropped; both cases are reported.
func (p *Parser) commandArgs(kw token.Token, fillers ...value.Value) ([]ast.ExprID, source.Span, bool) {
	args, closing, ok := p.parseArgs()
	if !ok {
		return nil, source.Span{}, false
	}
	span := kw.Span.Cover(closing.Span)
	if len(args) == len(fillers) {
		return args, span, true
	}

	p.errAt(diag.SynArgCount, span, kw.Line,
		fmt.Sprintf("%s expects %d argument%s, got %d", kw.Text, len(fillers), plural(len(fillers)), len(args)))
	if len(args) > len(fillers) {
		return args[:len(fillers)], span, true
	}
	for i := len(args); i < len(fillers); i++ {
		at := source.Span{File: closing.Span.File, Start: closing.Span.Start, End: closing.Span.Start}
		args = append(args, p.arenas.Exprs.NewLiteral(at, kw.Line, fillers[i]))
	}
	return args, span, true
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (p *Parser) parseSpawn() (ast.InstrID, bool) {
	kw := p.advance()
	args, span, ok := p.commandArgs(kw, value.Int(0), value.Int(0))
	if !ok {
		return ast.NoInstrID, false
	}
	return p.arenas.Instrs.NewSpawn(span, kw.Line, args[0], args[1]), true
}

func (p *Parser) parseColor() (ast.InstrID, bool) {
	kw := p.advance()
	args, span, ok := p.commandArgs(kw, value.String("Transparent"))
	if !ok {
		return ast.NoInstrID, false
	}
	return p.arenas.Instrs.NewColor(span, kw.Line, args[0]), true
}

func (p *Parser) parseSize() (ast.InstrID, bool) {
	kw := p.advance()
	args, span, ok := p.commandArgs(kw, value.Int(1))
	if !ok {
		return ast.NoInstrID, false
	}
	return p.arenas.Instrs.NewSize(span, kw.Line, args[0]), true
}

func (p *Parser) parseDrawLine() (ast.InstrID, bool) {
	kw := p.advance()
	args, span, ok := p.commandArgs(kw, value.Int(0), value.Int(0), value.Int(0))
	if !ok {
		return ast.NoInstrID, false
	}
	return p.arenas.Instrs.NewDrawLine(span, kw.Line, args[0], args[1], args[2]), true
}

func (p *Parser) parseDrawCircle() (ast.InstrID, bool) {
	kw := p.advance()
	args, span, ok := p.commandArgs(kw, value.Int(0), value.Int(0), value.Int(0))
	if !ok {
		return ast.NoInstrID, false
	}
	return p.arenas.Instrs.NewDrawCircle(span, kw.Line, args[0], args[1], args[2]), true
}

func (p *Parser) parseDrawRectangle() (ast.InstrID, bool) {
	kw := p.advance()
	args, span, ok := p.commandArgs(kw, value.Int(0), value.Int(0), value.Int(0), value.Int(1), value.Int(1))
	if !ok {
		return ast.NoInstrID, false
	}
	return p.arenas.Instrs.NewDrawRectangle(span, kw.Line, ast.InstrDrawRectangleData{
		DX:     args[0],
		DY:     args[1],
		Dist:   args[2],
		Width:  args[3],
		Height: args[4],
	}), true
}

// parseFill accepts `Fill()`. Arguments or a missing `()` are reported but
// the instruction is still produced.
func (p *Parser) parseFill() (ast.InstrID, bool) {
	kw := p.advance()
	if !p.at(token.LParen) {
		p.errAt(diag.SynFillArgs, p.getDiagnosticSpan(), kw.Line, "expected '()' after Fill")
		return p.arenas.Instrs.NewFill(kw.Span, kw.Line), true
	}
	args, closing, ok := p.parseArgs()
	if !ok {
		return ast.NoInstrID, false
	}
	span := kw.Span.Cover(closing.Span)
	if len(args) > 0 {
		p.errAt(diag.SynFillArgs, span, kw.Line, "Fill takes no arguments")
	}
	return p.arenas.Instrs.NewFill(span, kw.Line), true
}

// parseGoTo parses `GoTo[label](condition)`.
func (p *Parser) parseGoTo() (ast.InstrID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[' after GoTo"); !ok {
		return ast.NoInstrID, false
	}
	labelTok, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected label name")
	if !ok {
		return ast.NoInstrID, false
	}
	if _, ok = p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' after label"); !ok {
		return ast.NoInstrID, false
	}
	if _, ok = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before GoTo condition"); !ok {
		return ast.NoInstrID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoInstrID, false
	}
	closing, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' after GoTo condition")
	if !ok {
		return ast.NoInstrID, false
	}

	id := p.arenas.Instrs.NewGoTo(kw.Span.Cover(closing.Span), kw.Line, labelTok.Text, labelTok.Span, cond)
	if !p.opts.ForwardLabels {
		if _, defined := p.labels.Lookup(labelTok.Text); !defined {
			// single top-down pass: only labels seen so far are known
			p.report(diag.SemaUndefinedLabel, labelTok.Span, labelTok.Line,
				fmt.Sprintf("label '%s' is not defined", labelTok.Text))
			data, _ := p.arenas.Instrs.GoTo(id)
			data.LabelReported = true
		}
	}
	return id, true
}

// parseLabel registers a bare identifier line. The label points at the
// instruction following it.
func (p *Parser) parseLabel() (ast.InstrID, bool) {
	nameTok := p.advance()
	def := ast.LabelDef{
		Name:  nameTok.Text,
		Index: len(p.instrs) + 1,
		Span:  nameTok.Span,
		Line:  nameTok.Line,
	}
	if prev, ok := p.labels.Define(def); !ok {
		p.report(diag.SynDuplicateLabel, nameTok.Span, nameTok.Line,
			fmt.Sprintf("label '%s' is already defined", nameTok.Text),
			diag.Note{Span: prev.Span, Line: prev.Line, Msg: "first defined here"})
	}
	return p.arenas.Instrs.NewLabel(nameTok.Span, nameTok.Line, nameTok.Text), true
}

// parseAssign parses `name <- expr`.
func (p *Parser) parseAssign() (ast.InstrID, bool) {
	nameTok := p.advance()
	p.advance() // <-
	v, ok := p.parseExpr()
	if !ok {
		return ast.NoInstrID, false
	}
	span := nameTok.Span.Cover(p.arenas.Exprs.Get(v).Span)
	return p.arenas.Instrs.NewAssign(span, nameTok.Line, nameTok.Text, nameTok.Span, v), true
}
