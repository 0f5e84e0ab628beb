package ast

import "walle/internal/source"

// Instrs manages allocation of instructions and their payloads.
type Instrs struct {
	Arena      *Arena[Instr]
	Spawns     *Arena[InstrSpawnData]
	Colors     *Arena[InstrColorData]
	Sizes      *Arena[InstrSizeData]
	Lines      *Arena[InstrDrawLineData]
	Circles    *Arena[InstrDrawCircleData]
	Rectangles *Arena[InstrDrawRectangleData]
	Assigns    *Arena[InstrAssignData]
	Labels     *Arena[InstrLabelData]
	GoTos      *Arena[InstrGoToData]
}

func NewInstrs(capHint uint) *Instrs {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/4 + 1
	return &Instrs{
		Arena:      NewArena[Instr](capHint),
		Spawns:     NewArena[InstrSpawnData](1),
		Colors:     NewArena[InstrColorData](small),
		Sizes:      NewArena[InstrSizeData](small),
		Lines:      NewArena[InstrDrawLineData](small),
		Circles:    NewArena[InstrDrawCircleData](small),
		Rectangles: NewArena[InstrDrawRectangleData](small),
		Assigns:    NewArena[InstrAssignData](small),
		Labels:     NewArena[InstrLabelData](small),
		GoTos:      NewArena[InstrGoToData](small),
	}
}

func (s *Instrs) new(kind InstrKind, span source.Span, line int, payload PayloadID) InstrID {
	return InstrID(s.Arena.Allocate(Instr{
		Kind:    kind,
		Span:    span,
		Line:    line,
		Payload: payload,
	}))
}

func (s *Instrs) Get(id InstrID) *Instr {
	return s.Arena.Get(uint32(id))
}

func (s *Instrs) payload(id InstrID, kind InstrKind) (uint32, bool) {
	in := s.Get(id)
	if in == nil || in.Kind != kind {
		return 0, false
	}
	return uint32(in.Payload), true
}

func (s *Instrs) NewSpawn(span source.Span, line int, x, y ExprID) InstrID {
	p := s.Spawns.Allocate(InstrSpawnData{X: x, Y: y})
	return s.new(InstrSpawn, span, line, PayloadID(p))
}

func (s *Instrs) Spawn(id InstrID) (*InstrSpawnData, bool) {
	p, ok := s.payload(id, InstrSpawn)
	if !ok {
		return nil, false
	}
	return s.Spawns.Get(p), true
}

func (s *Instrs) NewColor(span source.Span, line int, color ExprID) InstrID {
	p := s.Colors.Allocate(InstrColorData{Color: color})
	return s.new(InstrColor, span, line, PayloadID(p))
}

func (s *Instrs) Color(id InstrID) (*InstrColorData, bool) {
	p, ok := s.payload(id, InstrColor)
	if !ok {
		return nil, false
	}
	return s.Colors.Get(p), true
}

func (s *Instrs) NewSize(span source.Span, line int, size ExprID) InstrID {
	p := s.Sizes.Allocate(InstrSizeData{Size: size})
	return s.new(InstrSize, span, line, PayloadID(p))
}

func (s *Instrs) Size(id InstrID) (*InstrSizeData, bool) {
	p, ok := s.payload(id, InstrSize)
	if !ok {
		return nil, false
	}
	return s.Sizes.Get(p), true
}

func (s *Instrs) NewDrawLine(span source.Span, line int, dx, dy, dist ExprID) InstrID {
	p := s.Lines.Allocate(InstrDrawLineData{DX: dx, DY: dy, Dist: dist})
	return s.new(InstrDrawLine, span, line, PayloadID(p))
}

func (s *Instrs) DrawLine(id InstrID) (*InstrDrawLineData, bool) {
	p, ok := s.payload(id, InstrDrawLine)
	if !ok {
		return nil, false
	}
	return s.Lines.Get(p), true
}

func (s *Instrs) NewDrawCircle(span source.Span, line int, dx, dy, radius ExprID) InstrID {
	p := s.Circles.Allocate(InstrDrawCircleData{DX: dx, DY: dy, Radius: radius})
	return s.new(InstrDrawCircle, span, line, PayloadID(p))
}

func (s *Instrs) DrawCircle(id InstrID) (*InstrDrawCircleData, bool) {
	p, ok := s.payload(id, InstrDrawCircle)
	if !ok {
		return nil, false
	}
	return s.Circles.Get(p), true
}

func (s *Instrs) NewDrawRectangle(span source.Span, line int, data InstrDrawRectangleData) InstrID {
	p := s.Rectangles.Allocate(data)
	return s.new(InstrDrawRectangle, span, line, PayloadID(p))
}

func (s *Instrs) DrawRectangle(id InstrID) (*InstrDrawRectangleData, bool) {
	p, ok := s.payload(id, InstrDrawRectangle)
	if !ok {
		return nil, false
	}
	return s.Rectangles.Get(p), true
}

// NewFill creates a Fill; it has no payload.
func (s *Instrs) NewFill(span source.Span, line int) InstrID {
	return s.new(InstrFill, span, line, NoPayloadID)
}

func (s *Instrs) NewAssign(span source.Span, line int, name string, nameSpan source.Span, v ExprID) InstrID {
	p := s.Assigns.Allocate(InstrAssignData{Name: name, NameSpan: nameSpan, Value: v})
	return s.new(InstrAssign, span, line, PayloadID(p))
}

func (s *Instrs) Assign(id InstrID) (*InstrAssignData, bool) {
	p, ok := s.payload(id, InstrAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Instrs) NewLabel(span source.Span, line int, name string) InstrID {
	p := s.Labels.Allocate(InstrLabelData{Name: name})
	return s.new(InstrLabel, span, line, PayloadID(p))
}

func (s *Instrs) Label(id InstrID) (*InstrLabelData, bool) {
	p, ok := s.payload(id, InstrLabel)
	if !ok {
		return nil, false
	}
	return s.Labels.Get(p), true
}

func (s *Instrs) NewGoTo(span source.Span, line int, label string, labelSpan source.Span, cond ExprID) InstrID {
	p := s.GoTos.Allocate(InstrGoToData{Label: label, LabelSpan: labelSpan, Cond: cond})
	return s.new(InstrGoTo, span, line, PayloadID(p))
}

func (s *Instrs) GoTo(id InstrID) (*InstrGoToData, bool) {
	p, ok := s.payload(id, InstrGoTo)
	if !ok {
		return nil, false
	}
	return s.GoTos.Get(p), true
}
