package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a lexical error; the lexer has already reported it.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// NewLine separates statements.
	NewLine

	// Ident represents a user identifier (variable or label).
	Ident
	// Number is a decimal integer literal.
	Number
	// String is a double-quoted string literal.
	String

	// Command keywords.
	KwSpawn
	KwColor
	KwSize
	KwDrawLine
	KwDrawCircle
	KwDrawRectangle
	KwFill
	KwGoTo

	// Builtin function keywords.
	KwGetActualX
	KwGetActualY
	KwGetCanvasSize
	KwGetColorCount
	KwIsBrushColor
	KwIsBrushSize
	KwIsCanvasColor

	// KwTrue is the 'true' literal.
	KwTrue
	// KwFalse is the 'false' literal.
	KwFalse

	// Arrow is the assignment operator '<-'.
	Arrow
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	StarStar // **
	EqEq     // ==
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	AndAnd   // &&
	OrOr     // ||
	Bang     // !
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	Comma    // ,
)

var kindNames = [...]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	NewLine:         "NewLine",
	Ident:           "Ident",
	Number:          "Number",
	String:          "String",
	KwSpawn:         "Spawn",
	KwColor:         "Color",
	KwSize:          "Size",
	KwDrawLine:      "DrawLine",
	KwDrawCircle:    "DrawCircle",
	KwDrawRectangle: "DrawRectangle",
	KwFill:          "Fill",
	KwGoTo:          "GoTo",
	KwGetActualX:    "GetActualX",
	KwGetActualY:    "GetActualY",
	KwGetCanvasSize: "GetCanvasSize",
	KwGetColorCount: "GetColorCount",
	KwIsBrushColor:  "IsBrushColor",
	KwIsBrushSize:   "IsBrushSize",
	KwIsCanvasColor: "IsCanvasColor",
	KwTrue:          "true",
	KwFalse:         "false",
	Arrow:           "<-",
	Plus:            "+",
	Minus:           "-",
	Star:            "*",
	Slash:           "/",
	Percent:         "%",
	StarStar:        "**",
	EqEq:            "==",
	Lt:              "<",
	LtEq:            "<=",
	Gt:              ">",
	GtEq:            ">=",
	AndAnd:          "&&",
	OrOr:            "||",
	Bang:            "!",
	LParen:          "(",
	RParen:          ")",
	LBracket:        "[",
	RBracket:        "]",
	Comma:           ",",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
