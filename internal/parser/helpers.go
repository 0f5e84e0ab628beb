package parser

import (
	"fmt"

	"walle/internal/diag"
	"walle/internal/source"
	"walle/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
		p.lastLine = tok.Line
	}
	return tok
}

// getDiagnosticSpan points at the next token, or right after the last one at EOF.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// diagLine is the line a diagnostic about tok is attached to.
func (p *Parser) diagLine(tok token.Token) int {
	if tok.Kind == token.EOF && p.lastLine > 0 && tok.Line > p.lastLine {
		return p.lastLine
	}
	return tok.Line
}

// expect consumes a token of kind k or reports msg.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, fmt.Sprintf("%s, got %s", msg, describe(p.lx.Peek())))
	return token.Token{Kind: token.Invalid, Span: p.getDiagnosticSpan(), Text: p.lx.Peek().Text}, false
}

// err reports a syntax error at the next token. An Invalid token was
// already reported by the lexer, so it only marks the statement as failed.
func (p *Parser) err(code diag.Code, msg string) bool {
	if p.at(token.Invalid) {
		p.stmtErr = true
		return false
	}
	return p.errAt(code, p.getDiagnosticSpan(), p.diagLine(p.lx.Peek()), msg)
}

// errAt reports at most one syntax error per statement.
func (p *Parser) errAt(code diag.Code, sp source.Span, line int, msg string) bool {
	if p.stmtErr {
		return false
	}
	p.stmtErr = true
	return p.report(code, sp, line, msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, line int, msg string, notes ...diag.Note) bool {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	p.opts.CurrentErrors++
	p.opts.Reporter.Report(code, line, sp, msg, notes)
	return true
}

// resyncLine discards tokens up to the next NewLine (panic mode).
// The NewLine itself is left for the statement loop.
func (p *Parser) resyncLine() {
	p.resyncUntil(token.NewLine)
}

func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.NewLine:
		return "end of line"
	default:
		return fmt.Sprintf("%q", tok.Text)
	}
}
