package lexer

import (
	"strings"

	"walle/internal/diag"
	"walle/internal/token"
	"walle/internal/value"
)

// scanString scans a double-quoted literal on a single line.
// Only \" and \\ are escapes; any other backslash pair is kept verbatim.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	var body strings.Builder
	for {
		if lx.cursor.EOF() {
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
			return tok
		}
		b := lx.cursor.Peek()
		switch b {
		case '\n':
			// the newline stays in the stream so the parser can resync on it
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexNewlineInString, tok.Span, "newline in string literal")
			return tok
		case '"':
			lx.cursor.Bump()
			tok := lx.emit(token.String, start)
			tok.Value = value.String(body.String())
			return tok
		case '\\':
			lx.cursor.Bump()
			next := lx.cursor.Peek()
			if next == '"' || next == '\\' {
				lx.cursor.Bump()
				body.WriteByte(next)
				continue
			}
			body.WriteByte('\\')
		default:
			lx.cursor.Bump()
			body.WriteByte(b)
		}
	}
}
