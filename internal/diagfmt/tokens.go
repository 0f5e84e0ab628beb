package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"walle/internal/source"
	"walle/internal/token"
)

// TokenJSON is one token in the JSON listing.
type TokenJSON struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
	Span  string `json:"span"`
	Value string `json:"value,omitempty"`
}

// FormatTokensPretty lists tokens as aligned columns: index, line:col, kind, text.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, tok := range tokens {
		text := tok.Text
		switch tok.Kind {
		case token.NewLine:
			text = `\n`
		case token.EOF:
			text = ""
		}
		line, col := tok.Line, uint32(0)
		if fs != nil {
			start, _ := fs.Resolve(tok.Span)
			col = start.Col
		}
		if _, err := fmt.Fprintf(tw, "%4d\t%d:%d\t%s\t%s\n", i, line, col, tok.Kind, strconv.Quote(text)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// FormatTokensJSON writes tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	out := make([]TokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		tj := TokenJSON{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Line: tok.Line,
			Span: formatSpan(tok.Span, fs),
		}
		if tok.IsLiteral() {
			tj.Value = tok.Value.String()
		}
		out = append(out, tj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// formatSpan renders "l:c-l:c", or the byte range when fs cannot resolve sp.
func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || fs.Get(sp.File) == nil {
		return fmt.Sprintf("%d-%d", sp.Start, sp.End)
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
