package parser

import (
	"walle/internal/ast"
	"walle/internal/diag"
	"walle/internal/token"
)

// parseExpr is the entry point for expressions.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr is precedence climbing over the operator table.
// The right operand is parsed with prec+1, which makes every operator left associative.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		prec := p.getBinaryOperatorPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, opTok.Line, op, left, right)
	}

	return left, true
}

// parseUnaryExpr handles prefix '-' and '!', which bind tighter than any binary operator.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	op, isUnary := p.getUnaryOperator(tok.Kind)
	if !isUnary {
		return p.parsePrimaryExpr()
	}
	opTok := p.advance()

	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, opTok.Line, op, operand), true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()

	switch {
	case tok.IsLiteral():
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, tok.Line, tok.Value), true

	case tok.Kind == token.Ident:
		p.advance()
		if !p.at(token.LParen) {
			return p.arenas.Exprs.NewVariable(tok.Span, tok.Line, tok.Text), true
		}
		// user functions do not exist; consume the call so the statement stays intact
		p.errAt(diag.SynUnknownFunction, tok.Span, tok.Line, "unknown function "+describe(tok))
		_, closing, ok := p.parseArgs()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewInvalid(tok.Span.Cover(closing.Span), tok.Line, "unknown function "+tok.Text), true

	case tok.IsBuiltin():
		return p.parseBuiltinCall()

	case tok.Kind == token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closing, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' to close the expression")
		if !ok {
			return ast.NoExprID, false
		}
		// parentheses only group; widen the span to include them
		if e := p.arenas.Exprs.Get(inner); e != nil {
			e.Span = open.Span.Cover(closing.Span)
		}
		return inner, true

	case tok.Kind == token.Invalid:
		// the lexer already reported this token
		p.advance()
		p.stmtErr = true
		return ast.NoExprID, false

	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return ast.NoExprID, false
	}
}

// parseBuiltinCall parses `Name(args...)`. Arity is left to the validator.
func (p *Parser) parseBuiltinCall() (ast.ExprID, bool) {
	nameTok := p.advance()
	fn, known := ast.LookupBuiltin(nameTok.Text)
	if !p.at(token.LParen) || !known {
		p.errAt(diag.SynBuiltinWithoutCall, nameTok.Span, nameTok.Line, nameTok.Text+" must be called with '(...)'")
		return p.arenas.Exprs.NewInvalid(nameTok.Span, nameTok.Line, nameTok.Text+" used without call"), true
	}
	args, closing, ok := p.parseArgs()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBuiltinCall(nameTok.Span.Cover(closing.Span), nameTok.Line, fn, args), true
}

// parseArgs parses `( [expr {, expr}] )` and returns the closing paren.
func (p *Parser) parseArgs() ([]ast.ExprID, token.Token, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, token.Token{}, false
	}

	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, token.Token{}, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	closing, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ',' or ')' in argument list")
	if !ok {
		return nil, token.Token{}, false
	}
	return args, closing, true
}
