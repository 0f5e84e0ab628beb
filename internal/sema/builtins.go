package sema

import "walle/internal/ast"

// signature describes a builtin: parameter types and result type.
type signature struct {
	params []Type
	result Type
}

// builtinSignatures is the closed builtin catalog. Predicates return 1 or 0.
var builtinSignatures = map[ast.Builtin]signature{
	ast.BuiltinGetActualX:    {result: TypeInt},
	ast.BuiltinGetActualY:    {result: TypeInt},
	ast.BuiltinGetCanvasSize: {result: TypeInt},
	ast.BuiltinGetColorCount: {params: []Type{TypeString, TypeInt, TypeInt, TypeInt, TypeInt}, result: TypeInt},
	ast.BuiltinIsBrushColor:  {params: []Type{TypeString}, result: TypeInt},
	ast.BuiltinIsBrushSize:   {params: []Type{TypeInt}, result: TypeInt},
	ast.BuiltinIsCanvasColor: {params: []Type{TypeString, TypeInt, TypeInt}, result: TypeInt},
}

// BuiltinArity returns the number of arguments fn takes.
func BuiltinArity(fn ast.Builtin) int {
	return len(builtinSignatures[fn].params)
}
