package lexer

import (
	"walle/internal/source"
	"walle/internal/token"
)

// Lexer turns one file into a finite token stream ending with EOF.
// The stream can be restarted from the beginning with Reset.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	line   int
	look   []token.Token // lookahead queue filled by PeekN
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		line:   1,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.look) > 0 {
		tok := lx.look[0]
		lx.look = lx.look[1:]
		return tok
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	return lx.PeekN(0)
}

// PeekN returns the token n positions ahead (0 is the next one) without consuming anything.
func (lx *Lexer) PeekN(n int) token.Token {
	for len(lx.look) <= n {
		if k := len(lx.look); k > 0 && lx.look[k-1].Kind == token.EOF {
			return lx.look[k-1]
		}
		lx.look = append(lx.look, lx.scan())
	}
	return lx.look[n]
}

// Reset restarts scanning from the beginning of the file.
func (lx *Lexer) Reset() {
	lx.cursor = NewCursor(lx.file)
	lx.line = 1
	lx.look = nil
}

// All drains the stream and returns every token including the final EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// EmptySpan is a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scan() token.Token {
	lx.skipHorizontalSpace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan(), Line: lx.line}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		tok := lx.emit(token.NewLine, start)
		lx.line++
		return tok
	case isLetterByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Line: lx.line,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
