package token

var keywords = map[string]Kind{
	"Spawn":         KwSpawn,
	"Color":         KwColor,
	"Size":          KwSize,
	"DrawLine":      KwDrawLine,
	"DrawCircle":    KwDrawCircle,
	"DrawRectangle": KwDrawRectangle,
	"Fill":          KwFill,
	"GoTo":          KwGoTo,
	"GetActualX":    KwGetActualX,
	"GetActualY":    KwGetActualY,
	"GetCanvasSize": KwGetCanvasSize,
	"GetColorCount": KwGetColorCount,
	"IsBrushColor":  KwIsBrushColor,
	"IsBrushSize":   KwIsBrushSize,
	"IsCanvasColor": KwIsCanvasColor,
	"true":          KwTrue,
	"false":         KwFalse,
}

// LookupKeyword returns the keyword kind for an identifier.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
