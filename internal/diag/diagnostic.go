package diag

import (
	"fmt"

	"walle/internal/source"
)

type Note struct {
	Span source.Span
	Line int
	Msg  string
}

type Diagnostic struct {
	Code    Code
	Message string
	Line    int // 1-based source line, 0 when unknown
	Primary source.Span
	Notes   []Note
}

func New(code Code, line int, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Line:    line,
		Primary: primary,
		Message: msg,
	}
}

func (d Diagnostic) Category() Category {
	return d.Code.Category()
}

func (d Diagnostic) WithNote(sp source.Span, line int, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Line: line, Msg: msg})
	return d
}

// String renders the diagnostic as "CATEGORY line N: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s line %d: %s", d.Category(), d.Line, d.Message)
}
