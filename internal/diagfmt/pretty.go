package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"walle/internal/diag"
	"walle/internal/source"
)

type palette struct {
	category map[diag.Category]*color.Color
	code     *color.Color
	location *color.Color
	gutter   *color.Color
	caret    *color.Color
	note     *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		category: map[diag.Category]*color.Color{
			diag.CatLexical:  mk(color.FgMagenta, color.Bold),
			diag.CatSyntax:   mk(color.FgRed, color.Bold),
			diag.CatSemantic: mk(color.FgYellow, color.Bold),
			diag.CatRuntime:  mk(color.FgHiRed, color.Bold),
			diag.CatUnknown:  mk(color.Bold),
		},
		code:     mk(color.Faint),
		location: mk(color.Bold),
		gutter:   mk(color.FgBlue),
		caret:    mk(color.FgGreen, color.Bold),
		note:     mk(color.FgCyan),
	}
}

// Pretty writes every diagnostic of bag as
//
//	<path>:<line>:<col>: <CATEGORY> <CODE>: <message>
//
// followed by the source line with the span underlined, then the notes.
// Call bag.Sort beforehand for source order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		cat := d.Category()
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.location.Sprint(location(fs, d.Primary, d.Line, opts.PathMode)),
			pal.category[cat].Sprint(cat.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, fs, d.Primary, d.Line, opts, pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n",
				pal.note.Sprint("note:"),
				location(fs, n.Span, n.Line, opts.PathMode),
				n.Msg,
			)
		}
	}
}

// location renders "path:line:col"; without a file it falls back to the
// diagnostic's line.
func location(fs *source.FileSet, sp source.Span, line int, mode PathMode) string {
	var f *source.File
	if fs != nil {
		f = fs.Get(sp.File)
	}
	if f == nil {
		return fmt.Sprintf("<input>:%d", line)
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, f, mode), start.Line, start.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, line int, opts PrettyOpts, pal palette) {
	if fs == nil {
		return
	}
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	ln := start.Line
	if ln == 0 {
		n, err := safecast.Conv[uint32](line)
		if err != nil || n == 0 {
			return
		}
		ln = n
	}

	first := ln
	if opts.Context > 0 {
		ctx, err := safecast.Conv[uint32](opts.Context)
		if err == nil && ctx < ln {
			first = ln - ctx
		} else {
			first = 1
		}
	}
	gutterWidth := len(fmt.Sprint(ln))
	for n := first; n <= ln; n++ {
		text := expandTabs(f.GetLine(n))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, opts.Width, "…")
		}
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, n), text)
	}

	raw := f.GetLine(ln)
	col := min(max(int(start.Col)-1, 0), len(raw))
	pad := runewidth.StringWidth(expandTabs(raw[:col]))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		stop := min(int(end.Col)-1, len(raw))
		if stop > col {
			width = max(runewidth.StringWidth(expandTabs(raw[col:stop])), 1)
		}
	}
	if opts.Width > 0 && pad >= opts.Width {
		return
	}
	fmt.Fprintf(w, " %s %s%s\n",
		pal.gutter.Sprint(strings.Repeat(" ", gutterWidth)+" |"),
		strings.Repeat(" ", pad),
		pal.caret.Sprint("^"+strings.Repeat("~", width-1)),
	)
}

// expandTabs keeps caret columns aligned with what the terminal shows.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
