package canvas

import "fmt"

// Color is one entry of the fixed palette. The zero value None is what
// out-of-bounds reads return; it is never stored in a canvas.
type Color uint8

const (
	None Color = iota
	White
	Red
	Green
	Blue
	Yellow
	Black
	Orange
	Purple
	Transparent
)

var colorNames = [...]string{
	None:        "None",
	White:       "White",
	Red:         "Red",
	Green:       "Green",
	Blue:        "Blue",
	Yellow:      "Yellow",
	Black:       "Black",
	Orange:      "Orange",
	Purple:      "Purple",
	Transparent: "Transparent",
}

// Palette lists the names accepted by Color(...), in a stable order.
var Palette = []Color{Red, Green, Blue, Yellow, Black, White, Orange, Purple, Transparent}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ParseColor resolves a palette name. Matching is case-sensitive and None is not accepted.
func ParseColor(name string) (Color, bool) {
	for _, c := range Palette {
		if colorNames[c] == name {
			return c, true
		}
	}
	return None, false
}

// RGB is the display color used by renderers.
type RGB struct{ R, G, B uint8 }

var colorRGB = [...]RGB{
	None:        {0, 0, 0},
	White:       {255, 255, 255},
	Red:         {255, 0, 0},
	Green:       {0, 128, 0},
	Blue:        {0, 0, 255},
	Yellow:      {255, 255, 0},
	Black:       {0, 0, 0},
	Orange:      {255, 165, 0},
	Purple:      {128, 0, 128},
	Transparent: {255, 255, 255},
}

// RGB returns the display color of c. Transparent shows as White.
func (c Color) RGB() RGB {
	if int(c) < len(colorRGB) {
		return colorRGB[c]
	}
	return RGB{}
}

// Letter is the one-character code used by the text renderer.
func (c Color) Letter() byte {
	switch c {
	case White:
		return 'W'
	case Red:
		return 'R'
	case Green:
		return 'G'
	case Blue:
		return 'B'
	case Yellow:
		return 'Y'
	case Black:
		return 'K'
	case Orange:
		return 'O'
	case Purple:
		return 'P'
	case Transparent:
		return 'T'
	default:
		return '.'
	}
}
