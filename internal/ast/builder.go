package ast

type Hints struct{ Instrs, Exprs uint }

// Builder owns every arena of one program.
type Builder struct {
	Instrs *Instrs
	Exprs  *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Instrs == 0 {
		hints.Instrs = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Instrs: NewInstrs(hints.Instrs),
		Exprs:  NewExprs(hints.Exprs),
	}
}

// Instr returns the instruction for id.
func (b *Builder) Instr(id InstrID) *Instr {
	return b.Instrs.Get(id)
}

// Expr returns the expression for id.
func (b *Builder) Expr(id ExprID) *Expr {
	return b.Exprs.Get(id)
}
