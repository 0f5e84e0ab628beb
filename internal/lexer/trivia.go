package lexer

// skipHorizontalSpace drops blanks between tokens. '\n' is a token, not trivia.
func (lx *Lexer) skipHorizontalSpace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\v', '\f':
			lx.cursor.Bump()
		default:
			return
		}
	}
}
