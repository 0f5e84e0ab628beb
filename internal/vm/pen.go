package vm

import (
	"fmt"

	"walle/internal/canvas"
)

// Pen is the drawing head. X and Y are meaningful only once Spawned is set.
type Pen struct {
	X, Y    int
	Color   canvas.Color
	Size    int
	Spawned bool
}

func newPen() Pen {
	return Pen{Color: canvas.Transparent, Size: 1}
}

func (p Pen) String() string {
	if !p.Spawned {
		return fmt.Sprintf("(unspawned) %s/%d", p.Color, p.Size)
	}
	return fmt.Sprintf("(%d,%d) %s/%d", p.X, p.Y, p.Color, p.Size)
}

// NormalizeBrush returns the largest odd number not above n, at least 1.
func NormalizeBrush(n int) int {
	if n%2 == 0 {
		n--
	}
	return max(n, 1)
}
