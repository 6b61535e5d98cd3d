// Package space converts between the three coordinate systems used by the
// grid renderer and derives the visible rectangle for a camera.
//
// Screen coordinates are device pixels with the origin at the viewport's
// top-left corner. Vertex coordinates are screen coordinates divided by the
// scale, so vertex (0,0) is always screen (0,0). Pixeloid coordinates address
// the persistent world grid: pixeloid = vertex + offset, where offset is the
// world position of the screen origin.
package space

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScale reports a scale that is zero, negative or not finite.
var ErrInvalidScale = errors.New("space: invalid scale")

// Screen is a position in device pixels.
type Screen struct {
	X, Y float64
}

// Vertex is a scale-normalized position.
type Vertex struct {
	X, Y float64
}

// Pixeloid is a position on the world grid. Integer parts name cells.
type Pixeloid struct {
	X, Y float64
}

// Cell returns the integer cell containing p.
func (p Pixeloid) Cell() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Add returns p translated by (dx, dy).
func (p Pixeloid) Add(dx, dy float64) Pixeloid {
	return Pixeloid{X: p.X + dx, Y: p.Y + dy}
}

// Size is a viewport extent in screen pixels.
type Size struct {
	W, H float64
}

// Degenerate reports whether the viewport has no area.
func (s Size) Degenerate() bool { return !(s.W > 0) || !(s.H > 0) }

// CheckScale returns a wrapped ErrInvalidScale unless scale is a positive
// finite number.
func CheckScale(scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	return nil
}

// ScreenToVertex divides a screen position by the scale.
func ScreenToVertex(s Screen, scale float64) (Vertex, error) {
	if err := CheckScale(scale); err != nil {
		return Vertex{}, err
	}
	return Vertex{X: s.X / scale, Y: s.Y / scale}, nil
}

// VertexToScreen multiplies a vertex position by the scale.
func VertexToScreen(v Vertex, scale float64) (Screen, error) {
	if err := CheckScale(scale); err != nil {
		return Screen{}, err
	}
	return Screen{X: v.X * scale, Y: v.Y * scale}, nil
}

// VertexToPixeloid translates a vertex position by the world offset.
func VertexToPixeloid(v Vertex, offset Pixeloid) Pixeloid {
	return Pixeloid{X: v.X + offset.X, Y: v.Y + offset.Y}
}

// PixeloidToVertex removes the world offset from a pixeloid position.
func PixeloidToVertex(p Pixeloid, offset Pixeloid) Vertex {
	return Vertex{X: p.X - offset.X, Y: p.Y - offset.Y}
}

// ScreenToPixeloid composes ScreenToVertex and VertexToPixeloid.
func ScreenToPixeloid(s Screen, offset Pixeloid, scale float64) (Pixeloid, error) {
	v, err := ScreenToVertex(s, scale)
	if err != nil {
		return Pixeloid{}, err
	}
	return VertexToPixeloid(v, offset), nil
}

// PixeloidToScreen composes PixeloidToVertex and VertexToScreen.
func PixeloidToScreen(p Pixeloid, offset Pixeloid, scale float64) (Screen, error) {
	return VertexToScreen(PixeloidToVertex(p, offset), scale)
}
