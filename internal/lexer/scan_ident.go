package lexer

import (
	"fmt"

	"walle/internal/diag"
	"walle/internal/token"
	"walle/internal/value"
)

// scanIdentOrKeyword scans a letter followed by letters, digits or '_'.
// A non-letter rune at this position is reported as an unknown character.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
		return lx.emit(token.Invalid, start)
	}
	lx.bumpRune()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
		switch k {
		case token.KwTrue:
			tok.Value = value.Bool(true)
		case token.KwFalse:
			tok.Value = value.Bool(false)
		}
	}
	return tok
}
