package render

import (
	"image"
	"image/color"

	"pixeloid/internal/core"
	"pixeloid/internal/cull"
)

// FillParity reshapes g to r and stores the parity of every cell, row-major
// from (r.StartX, r.StartY). An empty range leaves a 1x1 grid of zeros.
func FillParity(g *core.ByteGrid, r cull.CellRange) {
	if r.Empty() {
		g.Resize(1, 1)
		g.Clear()
		return
	}
	g.Resize(r.Width(), r.Height())
	cells := g.Cells()
	i := 0
	for y := r.StartY; y < r.EndY; y++ {
		for x := r.StartX; x < r.EndX; x++ {
			cells[i] = Parity(x, y)
			i++
		}
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// ParityImage renders r with one pixel per cell. Pixel (0,0) is cell
// (r.StartX, r.StartY).
func ParityImage(g *core.ByteGrid, r cull.CellRange, p Palette) *image.RGBA {
	FillParity(g, r)
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	if r.Empty() {
		return img
	}
	fillPaletteRGBA(img.Pix, g.Cells(), p.entries())
	return img
}
