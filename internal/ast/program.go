package ast

import "walle/internal/source"

// Program is the parsed instruction list. Instrs order is execution order.
type Program struct {
	File   source.FileID
	Span   source.Span
	Instrs []InstrID
	Labels *LabelTable
}

// Len returns the number of instructions.
func (p *Program) Len() int { return len(p.Instrs) }

// LabelDef is one entry of the label table.
type LabelDef struct {
	Name  string
	Index int // index of the instruction right after the label
	Span  source.Span
	Line  int
}

// LabelTable maps label names to instruction indices, keeping definition order.
type LabelTable struct {
	byName map[string]int
	defs   []LabelDef
}

func NewLabelTable() *LabelTable {
	return &LabelTable{byName: make(map[string]int)}
}

// Define registers def. If the name already exists the table is unchanged and
// the earlier definition is returned with ok == false.
func (t *LabelTable) Define(def LabelDef) (prev LabelDef, ok bool) {
	if i, exists := t.byName[def.Name]; exists {
		return t.defs[i], false
	}
	t.byName[def.Name] = len(t.defs)
	t.defs = append(t.defs, def)
	return LabelDef{}, true
}

// Lookup returns the instruction index bound to name.
func (t *LabelTable) Lookup(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.byName[name]
	if !ok {
		return 0, false
	}
	return t.defs[i].Index, true
}

// Def returns the full entry for name.
func (t *LabelTable) Def(name string) (LabelDef, bool) {
	if t == nil {
		return LabelDef{}, false
	}
	i, ok := t.byName[name]
	if !ok {
		return LabelDef{}, false
	}
	return t.defs[i], true
}

func (t *LabelTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.defs)
}

// Defs returns labels in definition order. Callers must not modify the slice.
func (t *LabelTable) Defs() []LabelDef {
	if t == nil {
		return nil
	}
	return t.defs
}
