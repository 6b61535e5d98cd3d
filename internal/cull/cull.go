// Package cull derives the integer cell range that geometry must cover for a
// viewport.
package cull

import (
	"fmt"
	"math"

	"pixeloid/internal/space"
)

// DefaultPadding is the cell margin added on every side of the viewport.
const DefaultPadding = 2

// MaxCoord bounds the cell coordinates Range produces, so widths and
// padding arithmetic never overflow int.
var MaxCoord = int(min(1<<52, float64(math.MaxInt/4)))

func clampCell(v float64) int {
	limit := float64(MaxCoord)
	return int(min(max(v, -limit), limit))
}

// CellRange is the half-open cell rectangle [StartX,EndX) x [StartY,EndY).
type CellRange struct {
	StartX, EndX int
	StartY, EndY int
}

// Width returns the number of columns, never negative, saturating at
// math.MaxInt.
func (r CellRange) Width() int { return span(r.StartX, r.EndX) }

// Height returns the number of rows, never negative, saturating at
// math.MaxInt.
func (r CellRange) Height() int { return span(r.StartY, r.EndY) }

func span(start, end int) int {
	if end <= start {
		return 0
	}
	if d := end - start; d > 0 {
		return d
	}
	return math.MaxInt
}

// Cells returns the number of cells in the range, saturating at math.MaxInt.
func (r CellRange) Cells() int {
	w, h := r.Width(), r.Height()
	if w != 0 && h > math.MaxInt/w {
		return math.MaxInt
	}
	return w * h
}

// Empty reports whether the range holds no cells.
func (r CellRange) Empty() bool { return r.StartX >= r.EndX || r.StartY >= r.EndY }

// Contains reports whether every cell of o is also in r. An empty o is
// contained in anything.
func (r CellRange) Contains(o CellRange) bool {
	if o.Empty() {
		return true
	}
	if r.Empty() {
		return false
	}
	return r.StartX <= o.StartX && o.EndX <= r.EndX && r.StartY <= o.StartY && o.EndY <= r.EndY
}

// StrictlyContains reports whether r contains o with at least one cell of
// margin on every side.
func (r CellRange) StrictlyContains(o CellRange) bool {
	if o.Empty() || r.Empty() {
		return false
	}
	return r.StartX < o.StartX && o.EndX < r.EndX && r.StartY < o.StartY && o.EndY < r.EndY
}

// ContainsCell reports whether cell (x, y) is in r.
func (r CellRange) ContainsCell(x, y int) bool {
	return x >= r.StartX && x < r.EndX && y >= r.StartY && y < r.EndY
}

// CoversCorners reports whether the rectangle spanned by c lies inside r with
// at least margin cells to spare on every side.
func (r CellRange) CoversCorners(c space.Corners, margin int) bool {
	if r.Empty() {
		return false
	}
	return float64(r.StartX+margin) <= c.TopLeft.X &&
		float64(r.StartY+margin) <= c.TopLeft.Y &&
		c.BottomRight.X <= float64(r.EndX-margin) &&
		c.BottomRight.Y <= float64(r.EndY-margin)
}

func (r CellRange) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.StartX, r.EndX, r.StartY, r.EndY)
}

// Range returns the cells covering corners plus padding cells on every side.
// A viewport with no width or height yields the empty zero range; a negative
// padding is treated as zero. Bounds are clamped to +-MaxCoord.
func Range(c space.Corners, padding int) CellRange {
	if !(c.Width() > 0) || !(c.Height() > 0) {
		return CellRange{}
	}
	padding = min(max(padding, 0), MaxCoord)
	return CellRange{
		StartX: clampCell(math.Floor(c.TopLeft.X)) - padding,
		EndX:   clampCell(math.Ceil(c.TopRight.X)) + padding,
		StartY: clampCell(math.Floor(c.TopLeft.Y)) - padding,
		EndY:   clampCell(math.Ceil(c.BottomLeft.Y)) + padding,
	}
}
