// Package testkit holds structural checks shared by tests and fuzzers.
package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"walle/internal/ast"
	"walle/internal/source"
)

// CheckProgramInvariants verifies the shape of a parsed program:
//  1. every instruction span lies within the file and starts at or after
//     the previous one
//  2. each instruction's Line is the line its span starts on
//  3. every label index points just past a Label instruction of that name
func CheckProgramInvariants(b *ast.Builder, prog *ast.Program, file *source.File) error {
	if b == nil || prog == nil || file == nil {
		return fmt.Errorf("nil builder, program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevStart uint32
	for i, id := range prog.Instrs {
		in := b.Instr(id)
		if in == nil {
			return fmt.Errorf("instruction %d: unknown id %d", i, id)
		}
		sp := in.Span
		if sp.File != file.ID {
			return fmt.Errorf("instruction %d: span in file %d, want %d", i, sp.File, file.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("instruction %d: span %d..%d outside content of %d bytes", i, sp.Start, sp.End, lenContent)
		}
		if sp.Start < prevStart {
			return fmt.Errorf("instruction %d starts at %d, before previous start %d", i, sp.Start, prevStart)
		}
		prevStart = sp.Start
		if want := 1 + bytes.Count(file.Content[:sp.Start], []byte{'\n'}); in.Line != want {
			return fmt.Errorf("instruction %d (%s): line %d, span starts on line %d", i, in.Kind, in.Line, want)
		}
	}

	for i, id := range prog.Instrs {
		d, ok := b.Instrs.Label(id)
		if !ok {
			continue
		}
		def, ok := prog.Labels.Def(d.Name)
		if !ok {
			return fmt.Errorf("label %q at instruction %d missing from table", d.Name, i)
		}
		if def.Index < 1 || def.Index > prog.Len() {
			return fmt.Errorf("label %q: index %d out of range", d.Name, def.Index)
		}
		// Duplicates keep the first definition.
		if def.Index > i+1 {
			return fmt.Errorf("label %q: index %d is past its first definition at %d", d.Name, def.Index, i)
		}
		first := b.Instr(prog.Instrs[def.Index-1])
		if first.Kind != ast.InstrLabel {
			return fmt.Errorf("label %q: index %d does not follow a label", d.Name, def.Index)
		}
	}
	return nil
}
