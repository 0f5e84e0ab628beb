package parser

import (
	"walle/internal/ast"
	"walle/internal/token"
)

// Binary operator precedence; a higher number binds tighter.
// Every binary operator is left associative.
const (
	precLogicalOr      = 10 // ||
	precLogicalAnd     = 20 // &&
	precEquality       = 30 // ==
	precComparison     = 40 // < <= > >=
	precAdditive       = 50 // + -
	precMultiplicative = 60 // * / %
	precPower          = 70 // **
	precUnary          = 80 // - !
)

// getBinaryOperatorPrec returns -1 for tokens that are not binary operators.
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.EqEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	case token.StarStar:
		return precPower
	default:
		return -1
	}
}

func (p *Parser) tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Plus:
		return ast.BinaryAdd
	case token.Minus:
		return ast.BinarySub
	case token.Star:
		return ast.BinaryMul
	case token.Slash:
		return ast.BinaryDiv
	case token.Percent:
		return ast.BinaryMod
	case token.StarStar:
		return ast.BinaryPow
	case token.EqEq:
		return ast.BinaryEq
	case token.Lt:
		return ast.BinaryLt
	case token.LtEq:
		return ast.BinaryLtEq
	case token.Gt:
		return ast.BinaryGt
	case token.GtEq:
		return ast.BinaryGtEq
	case token.AndAnd:
		return ast.BinaryAnd
	case token.OrOr:
		return ast.BinaryOr
	default:
		// unreachable while the precedence table is consistent
		return ast.BinaryAdd
	}
}

func (p *Parser) getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Bang:
		return ast.UnaryNot, true
	default:
		return ast.UnaryNeg, false
	}
}
