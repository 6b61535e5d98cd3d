package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"pixeloid/internal/engine"
	"pixeloid/internal/mesh"
)

// ErrEmptyFrame is returned when a snapshot has no pixels to draw.
var ErrEmptyFrame = errors.New("render: frame has no viewport area")

// Snapshot rasterizes the frame's mesh into a software gg context sized to
// the viewport. Quads are grouped by parity so each color is one fill. The
// caller owns the returned context and must Close it.
func Snapshot(f engine.Frame, p Palette) (*gg.Context, error) {
	w := int(math.Round(f.Context.Viewport.W))
	h := int(math.Round(f.Context.Viewport.H))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyFrame
	}
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.FromColor(p.Even))
	if f.Mesh.Empty() {
		return dc, nil
	}

	offset := f.Bounds.Offset
	scale := f.Context.Scale
	quads := 0
	for q := 0; q < f.Mesh.CellCount(); q++ {
		x, y := f.Mesh.QuadCell(q)
		if Parity(x, y) == 0 {
			continue
		}
		sx := (float64(x) - offset.X) * scale
		sy := (float64(y) - offset.Y) * scale
		if sx >= float64(w) || sy >= float64(h) || sx+scale <= 0 || sy+scale <= 0 {
			continue
		}
		dc.DrawRectangle(sx, sy, scale, scale)
		quads++
	}
	if quads > 0 {
		dc.SetColor(p.Odd)
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("render: fill odd cells: %w", err)
		}
	}
	if p.LineWidth > 0 {
		if err := strokeGrid(dc, f.Mesh, offset.X, offset.Y, scale, p); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

func strokeGrid(dc *gg.Context, m *mesh.GridMesh, ox, oy, scale float64, p Palette) error {
	r := m.Range()
	w, h := float64(dc.Width()), float64(dc.Height())
	for x := r.StartX; x <= r.EndX; x++ {
		sx := (float64(x) - ox) * scale
		if sx < 0 || sx > w {
			continue
		}
		dc.DrawLine(sx, 0, sx, h)
	}
	for y := r.StartY; y <= r.EndY; y++ {
		sy := (float64(y) - oy) * scale
		if sy < 0 || sy > h {
			continue
		}
		dc.DrawLine(0, sy, w, sy)
	}
	dc.SetColor(p.Line)
	dc.SetLineWidth(float64(p.LineWidth) * scale)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("render: stroke grid: %w", err)
	}
	return nil
}

// WritePNG encodes a snapshot of f to w.
func WritePNG(w io.Writer, f engine.Frame, p Palette) error {
	dc, err := Snapshot(f, p)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}
