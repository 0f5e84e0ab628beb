package ast

type (
	ExprID  uint32
	InstrID uint32
	// PayloadID indexes the per-kind payload arena of a node.
	PayloadID uint32
)

const (
	NoExprID    ExprID    = 0
	NoInstrID   InstrID   = 0
	NoPayloadID PayloadID = 0
)

func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id InstrID) IsValid() bool   { return id != NoInstrID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
