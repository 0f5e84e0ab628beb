package lexer

import (
	"fmt"

	"walle/internal/diag"
	"walle/internal/token"
)

var singleByteOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'<': token.Lt,
	'>': token.Gt,
	'!': token.Bang,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return lx.emit(k, start)
	}

	// two-byte operators first
	switch {
	case lx.try2('<', '-'):
		return emit(token.Arrow)
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	}

	ch := lx.cursor.Peek()
	if k, ok := singleByteOps[ch]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	r, _ := lx.peekRune()
	lx.bumpRune()
	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r))
	return tok
}
