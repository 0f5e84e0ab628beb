package canvas

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/fatih/color"
)

// WriteText renders one letter per pixel (see Color.Letter), one row per line.
func (c *Canvas) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, c.size+1)
	for y := 0; y < c.size; y++ {
		line = line[:0]
		for _, p := range c.Row(y) {
			line = append(line, p.Letter())
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CanvasJSON is the JSON form of a canvas: pixels[y][x] holds color names.
type CanvasJSON struct {
	Size   int        `json:"size"`
	Pixels [][]string `json:"pixels"`
}

// JSON converts the canvas to its JSON form.
func (c *Canvas) JSON() CanvasJSON {
	out := CanvasJSON{Size: c.size, Pixels: make([][]string, c.size)}
	for y := 0; y < c.size; y++ {
		row := make([]string, c.size)
		for x, p := range c.Row(y) {
			row[x] = p.String()
		}
		out.Pixels[y] = row
	}
	return out
}

// WriteJSON writes the JSON form followed by a newline.
func (c *Canvas) WriteJSON(w io.Writer, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(c.JSON())
}

// WriteANSI draws every pixel as two background-colored cells. With
// useColor unset it falls back to the text renderer.
func (c *Canvas) WriteANSI(w io.Writer, useColor bool) error {
	if !useColor {
		return c.WriteText(w)
	}
	styles := make(map[Color]*color.Color, len(colorNames))
	styleFor := func(p Color) *color.Color {
		if s, ok := styles[p]; ok {
			return s
		}
		rgb := p.RGB()
		s := color.BgRGB(int(rgb.R), int(rgb.G), int(rgb.B))
		s.EnableColor()
		styles[p] = s
		return s
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < c.size; y++ {
		for _, p := range c.Row(y) {
			if _, err := styleFor(p).Fprint(bw, "  "); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
