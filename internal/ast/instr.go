package ast

import (
	"walle/internal/source"
)

// InstrKind enumerates statement kinds.
type InstrKind uint8

const (
	InstrSpawn InstrKind = iota
	InstrColor
	InstrSize
	InstrDrawLine
	InstrDrawCircle
	InstrDrawRectangle
	InstrFill
	InstrAssign
	InstrLabel
	InstrGoTo
)

var instrKindNames = [...]string{
	InstrSpawn:         "Spawn",
	InstrColor:         "Color",
	InstrSize:          "Size",
	InstrDrawLine:      "DrawLine",
	InstrDrawCircle:    "DrawCircle",
	InstrDrawRectangle: "DrawRectangle",
	InstrFill:          "Fill",
	InstrAssign:        "Assign",
	InstrLabel:         "Label",
	InstrGoTo:          "GoTo",
}

func (k InstrKind) String() string {
	if int(k) < len(instrKindNames) {
		return instrKindNames[k]
	}
	return "Instr(?)"
}

// Instr is one statement of the program. Line is the source line used in diagnostics.
type Instr struct {
	Kind    InstrKind
	Span    source.Span
	Line    int
	Payload PayloadID
}

type InstrSpawnData struct {
	X, Y ExprID
}

type InstrColorData struct {
	Color ExprID
}

type InstrSizeData struct {
	Size ExprID
}

type InstrDrawLineData struct {
	DX, DY ExprID
	Dist   ExprID
}

type InstrDrawCircleData struct {
	DX, DY ExprID
	Radius ExprID
}

type InstrDrawRectangleData struct {
	DX, DY        ExprID
	Dist          ExprID
	Width, Height ExprID
}

type InstrAssignData struct {
	Name     string
	NameSpan source.Span
	Value    ExprID
}

type InstrLabelData struct {
	Name string
}

type InstrGoToData struct {
	Label     string
	LabelSpan source.Span
	Cond      ExprID
	// LabelReported is set when the parser already reported Label as undefined.
	LabelReported bool
}
