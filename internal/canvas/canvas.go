package canvas

import (
	"fmt"
)

// Canvas is a size x size grid of colors, row-major, initialised White.
// A Canvas is owned by one interpreter run and is not safe for concurrent use.
type Canvas struct {
	size int
	pix  []Color
}

// New creates a canvas filled with White.
func New(size int) (*Canvas, error) {
	if size <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %d", size)
	}
	c := &Canvas{size: size, pix: make([]Color, size*size)}
	c.Clear(White)
	return c, nil
}

// MustNew is New for sizes known to be valid.
func MustNew(size int) *Canvas {
	c, err := New(size)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Canvas) Size() int { return c.size }

// InBounds reports whether (x, y) lies on the canvas.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.size && y < c.size
}

// At returns the color at (x, y), or None outside the canvas.
func (c *Canvas) At(x, y int) Color {
	if !c.InBounds(x, y) {
		return None
	}
	return c.pix[y*c.size+x]
}

// Set paints (x, y). Writes outside the canvas are dropped and report false.
func (c *Canvas) Set(x, y int, col Color) bool {
	if !c.InBounds(x, y) || col == None {
		return false
	}
	c.pix[y*c.size+x] = col
	return true
}

// Clear paints every pixel with col.
func (c *Canvas) Clear(col Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// Count returns how many pixels in the inclusive rectangle spanned by the two
// corners have color col. Both corners must lie on the canvas, otherwise 0.
func (c *Canvas) Count(col Color, x1, y1, x2, y2 int) int {
	if !c.InBounds(x1, y1) || !c.InBounds(x2, y2) {
		return 0
	}
	minX, maxX := min(x1, x2), max(x1, x2)
	minY, maxY := min(y1, y2), max(y1, y2)

	n := 0
	for y := minY; y <= maxY; y++ {
		row := c.pix[y*c.size : (y+1)*c.size]
		for x := minX; x <= maxX; x++ {
			if row[x] == col {
				n++
			}
		}
	}
	return n
}

// Row returns row y. The slice aliases the canvas.
func (c *Canvas) Row(y int) []Color {
	if y < 0 || y >= c.size {
		return nil
	}
	return c.pix[y*c.size : (y+1)*c.size]
}

// Clone returns an independent copy.
func (c *Canvas) Clone() *Canvas {
	return &Canvas{size: c.size, pix: append([]Color(nil), c.pix...)}
}

// Equal reports whether both canvases have the same size and pixels.
func (c *Canvas) Equal(o *Canvas) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.size != o.size {
		return false
	}
	for i := range c.pix {
		if c.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Histogram counts pixels per color.
func (c *Canvas) Histogram() map[Color]int {
	h := make(map[Color]int)
	for _, p := range c.pix {
		h[p]++
	}
	return h
}
