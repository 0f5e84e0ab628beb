package vm

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"

	"walle/internal/ast"
	"walle/internal/source"
)

// Tracer prints one line per executed instruction. A nil *Tracer is valid
// and prints nothing.
type Tracer struct {
	w     io.Writer
	files *source.FileSet
}

// NewTracer creates a tracer writing to w. files, when set, lets the
// tracer echo the source text of each instruction.
func NewTracer(w io.Writer, files *source.FileSet) *Tracer {
	return &Tracer{w: w, files: files}
}

// TraceInstr writes "[step=N] pc=P Kind @ file:line:col pen=... | text".
func (t *Tracer) TraceInstr(step, pc int, in *ast.Instr, pen Pen) {
	if t == nil || t.w == nil || in == nil {
		return
	}
	fmt.Fprintf(t.w, "[step=%d] pc=%d %s @ %s pen=%s", step, pc, in.Kind, formatSpan(in.Span, t.files), pen)
	if text := t.sourceLine(in); text != "" {
		fmt.Fprintf(t.w, " | %s", text)
	}
	fmt.Fprintln(t.w)
}

// TraceJump records a taken GoTo.
func (t *Tracer) TraceJump(from, to int) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "    jump pc=%d -> pc=%d\n", from, to)
}

// TraceError records the failure that halted the run.
func (t *Tracer) TraceError(e *RuntimeError) {
	if t == nil || t.w == nil || e == nil {
		return
	}
	fmt.Fprintf(t.w, "    halt %s: %s\n", e.Code.ID(), e.Message)
}

func (t *Tracer) sourceLine(in *ast.Instr) string {
	if t.files == nil || in.Line <= 0 {
		return ""
	}
	f := t.files.Get(in.Span.File)
	if f == nil {
		return ""
	}
	line, err := safecast.Conv[uint32](in.Line)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(f.GetLine(line))
}
