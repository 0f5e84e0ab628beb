package token

import (
	"walle/internal/source"
	"walle/internal/value"
)

// Token is one lexical unit. Tokens are produced once and never mutated.
type Token struct {
	Kind  Kind
	Span  source.Span // Span.Start is the source offset
	Line  int         // 1-based
	Text  string      // raw source text
	Value value.Value // set for Number, String, KwTrue and KwFalse only
}

// IsLiteral reports whether the token carries a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsCommand reports whether the token starts an instruction.
func (t Token) IsCommand() bool {
	return t.Kind >= KwSpawn && t.Kind <= KwGoTo
}

// IsBuiltin reports whether the token names a builtin function.
func (t Token) IsBuiltin() bool {
	return t.Kind >= KwGetActualX && t.Kind <= KwIsCanvasColor
}

// IsKeyword reports whether the token came from the keyword table.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwSpawn && t.Kind <= KwFalse
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Arrow && t.Kind <= Comma
}

// IsIdent reports whether the token is a user identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
