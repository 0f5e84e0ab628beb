package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexNewlineInString    Code = 1003
	LexBadNumber          Code = 1004

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynMissingSpawn       Code = 2002
	SynUnknownInstruction Code = 2003
	SynDuplicateLabel     Code = 2004
	SynArgCount           Code = 2005
	SynExpectExpression   Code = 2006
	SynUnknownFunction    Code = 2007
	SynFillArgs           Code = 2008
	SynBuiltinWithoutCall Code = 2009

	// Semantic
	SemaInfo              Code = 3000
	SemaOperandType       Code = 3001
	SemaAssignString      Code = 3002
	SemaAssignConflict    Code = 3003
	SemaArgType           Code = 3004
	SemaDirection         Code = 3005
	SemaUnknownColor      Code = 3006
	SemaUndefinedLabel    Code = 3007
	SemaConditionType     Code = 3008
	SemaBuiltinArity      Code = 3009
	SemaInvalidExpression Code = 3010
	SemaUndefinedVariable Code = 3011

	// Runtime
	RunInfo               Code = 4000
	RunSpawnOutOfBounds   Code = 4001
	RunNotSpawned         Code = 4002
	RunUndefinedVariable  Code = 4003
	RunTypeMismatch       Code = 4004
	RunDivisionByZero     Code = 4005
	RunBadDirection       Code = 4006
	RunUnknownColor       Code = 4007
	RunStepLimit          Code = 4008
	RunUnknownInstruction Code = 4009
	RunInvalidExpression  Code = 4010
	RunUndefinedLabel     Code = 4011
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexNewlineInString:    "Line break inside string literal",
	LexBadNumber:          "Invalid integer literal",

	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynMissingSpawn:       "Program must begin with Spawn",
	SynUnknownInstruction: "Unknown instruction",
	SynDuplicateLabel:     "Duplicate label",
	SynArgCount:           "Wrong number of arguments",
	SynExpectExpression:   "Expect expression",
	SynUnknownFunction:    "Unknown function",
	SynFillArgs:           "Fill takes no arguments",
	SynBuiltinWithoutCall: "Builtin function used without call",

	SemaInfo:              "Semantic information",
	SemaOperandType:       "Operand type mismatch",
	SemaAssignString:      "Strings cannot be assigned",
	SemaAssignConflict:    "Variable type conflict",
	SemaArgType:           "Argument type mismatch",
	SemaDirection:         "Direction out of range",
	SemaUnknownColor:      "Unknown color",
	SemaUndefinedLabel:    "Undefined label",
	SemaConditionType:     "Condition must be bool",
	SemaBuiltinArity:      "Wrong builtin arity",
	SemaInvalidExpression: "Invalid expression",
	SemaUndefinedVariable: "Undefined variable",

	RunInfo:               "Runtime information",
	RunSpawnOutOfBounds:   "Spawn outside canvas",
	RunNotSpawned:         "Pen used before Spawn",
	RunUndefinedVariable:  "Variable read before assignment",
	RunTypeMismatch:       "Runtime type mismatch",
	RunDivisionByZero:     "Division by zero",
	RunBadDirection:       "Invalid direction",
	RunUnknownColor:       "Unknown color",
	RunStepLimit:          "Step limit exceeded",
	RunUnknownInstruction: "Unknown instruction",
	RunInvalidExpression:  "Invalid expression reached execution",
	RunUndefinedLabel:     "Jump to undefined label",
}

// Category maps the code range onto the phase that owns it.
func (c Code) Category() Category {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return CatLexical
	case ic >= 2000 && ic < 3000:
		return CatSyntax
	case ic >= 3000 && ic < 4000:
		return CatSemantic
	case ic >= 4000 && ic < 5000:
		return CatRuntime
	}
	return CatUnknown
}

// ID returns the stable short form, e.g. "SYN2004".
func (c Code) ID() string {
	switch c.Category() {
	case CatLexical:
		return fmt.Sprintf("LEX%04d", int(c))
	case CatSyntax:
		return fmt.Sprintf("SYN%04d", int(c))
	case CatSemantic:
		return fmt.Sprintf("SEM%04d", int(c))
	case CatRuntime:
		return fmt.Sprintf("RUN%04d", int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
