package ui

import (
	"fmt"

	"pixeloid/internal/cull"
	"pixeloid/internal/space"
)

// Readout describes the world position under the cursor.
type Readout struct {
	World space.Pixeloid
	CellX int
	CellY int
}

func (r Readout) String() string {
	return fmt.Sprintf("%.2f, %.2f  cell %d,%d", r.World.X, r.World.Y, r.CellX, r.CellY)
}

// CursorReadout maps a screen position into pixeloid space through m.
func CursorReadout(m space.Mapper, cursor space.Screen, offset space.Pixeloid, scale float64) (Readout, error) {
	v, err := space.ScreenToVertex(cursor, scale)
	if err != nil {
		return Readout{}, err
	}
	p := m.ToPixeloid(v, offset)
	x, y := p.Cell()
	return Readout{World: p, CellX: x, CellY: y}, nil
}

// RangeRect returns the screen rectangle covered by r.
func RangeRect(r cull.CellRange, offset space.Pixeloid, scale float64) (x, y, w, h float32) {
	x = float32((float64(r.StartX) - offset.X) * scale)
	y = float32((float64(r.StartY) - offset.Y) * scale)
	w = float32(float64(r.Width()) * scale)
	h = float32(float64(r.Height()) * scale)
	return x, y, w, h
}
