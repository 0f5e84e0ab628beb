package lexer

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"walle/internal/diag"
	"walle/internal/token"
	"walle/internal/value"
)

// scanNumber scans a run of decimal digits. Literals must fit a 32-bit signed integer.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Number, start)

	n, err := strconv.ParseUint(tok.Text, 10, 64)
	if err == nil {
		var v int32
		if v, err = safecast.Conv[int32](n); err == nil {
			tok.Value = value.Int(int(v))
			return tok
		}
	}
	lx.errLex(diag.LexBadNumber, tok.Span, fmt.Sprintf("integer literal %s is out of range", tok.Text))
	tok.Kind = token.Invalid
	return tok
}
