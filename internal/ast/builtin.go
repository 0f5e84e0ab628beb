package ast

// Builtin identifies one of the fixed query functions usable inside expressions.
type Builtin uint8

const (
	BuiltinGetActualX Builtin = iota
	BuiltinGetActualY
	BuiltinGetCanvasSize
	BuiltinGetColorCount
	BuiltinIsBrushColor
	BuiltinIsBrushSize
	BuiltinIsCanvasColor
)

var builtinNames = [...]string{
	BuiltinGetActualX:    "GetActualX",
	BuiltinGetActualY:    "GetActualY",
	BuiltinGetCanvasSize: "GetCanvasSize",
	BuiltinGetColorCount: "GetColorCount",
	BuiltinIsBrushColor:  "IsBrushColor",
	BuiltinIsBrushSize:   "IsBrushSize",
	BuiltinIsCanvasColor: "IsCanvasColor",
}

func (b Builtin) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return "Builtin(?)"
}

// LookupBuiltin maps a function name to its Builtin. Names are case-sensitive.
func LookupBuiltin(name string) (Builtin, bool) {
	for i, n := range builtinNames {
		if n == name {
			return Builtin(i), true
		}
	}
	return 0, false
}
