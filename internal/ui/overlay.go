//go:build ebiten

package ui

import (
	"image/color"

	"pixeloid/internal/engine"
	"pixeloid/internal/space"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay outlines the visible and built cell ranges and prints the cell
// under the cursor.
type Overlay struct {
	mapper    space.Mapper
	showRange bool
	readout   string
}

// NewOverlay constructs an overlay resolving the cursor through m.
func NewOverlay(m space.Mapper) *Overlay {
	if m == nil {
		m = space.Arithmetic{}
	}
	return &Overlay{mapper: m}
}

// Update handles the O toggle and refreshes the cursor readout for f.
func (o *Overlay) Update(f engine.Frame) {
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		o.showRange = !o.showRange
	}
	mx, my := ebiten.CursorPosition()
	r, err := CursorReadout(o.mapper, space.Screen{X: float64(mx), Y: float64(my)}, f.Bounds.Offset, f.Context.Scale)
	if err != nil {
		o.readout = ""
		return
	}
	o.readout = r.String()
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, f engine.Frame) {
	if o.showRange {
		x, y, w, h := RangeRect(f.Visible, f.Bounds.Offset, f.Context.Scale)
		vector.StrokeRect(screen, x, y, w, h, 2, visibleColor, false)
		if !f.Mesh.Empty() {
			x, y, w, h = RangeRect(f.Mesh.Range(), f.Bounds.Offset, f.Context.Scale)
			vector.StrokeRect(screen, x, y, w, h, 2, builtColor, false)
		}
	}
	if o.readout != "" {
		b := screen.Bounds()
		ebitenutil.DebugPrintAt(screen, o.readout, 8, b.Dy()-20)
	}
}

var (
	visibleColor = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	builtColor   = color.RGBA{R: 230, G: 140, B: 60, A: 255}
)
