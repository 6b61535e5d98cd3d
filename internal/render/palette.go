package render

import "image/color"

// Palette holds the checkerboard colors.
type Palette struct {
	Even color.RGBA
	Odd  color.RGBA
	Line color.RGBA
	// LineWidth is the grid line thickness as a fraction of a cell; zero
	// disables lines.
	LineWidth float32
}

// DefaultPalette is a dark two-tone checkerboard without grid lines.
func DefaultPalette() Palette {
	return Palette{
		Even: color.RGBA{R: 28, G: 30, B: 38, A: 255},
		Odd:  color.RGBA{R: 44, G: 47, B: 58, A: 255},
		Line: color.RGBA{R: 90, G: 96, B: 110, A: 255},
	}
}

// Parity returns 0 for cells where x+y is even and 1 otherwise, for any sign.
func Parity(x, y int) uint8 {
	return uint8((x + y) & 1)
}

// ForParity returns the fill color for a parity value.
func (p Palette) ForParity(v uint8) color.RGBA {
	if v&1 == 1 {
		return p.Odd
	}
	return p.Even
}

func (p Palette) entries() []color.RGBA {
	return []color.RGBA{p.Even, p.Odd}
}

// vec4 converts c to the premultiplied [0,1] floats a shader expects.
func vec4(c color.RGBA) []float32 {
	return []float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
