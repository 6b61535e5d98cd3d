package space

// Corners are the four pixeloid positions of the visible rectangle.
type Corners struct {
	TopLeft     Pixeloid
	TopRight    Pixeloid
	BottomLeft  Pixeloid
	BottomRight Pixeloid
}

// Width returns the horizontal world extent.
func (c Corners) Width() float64 { return c.TopRight.X - c.TopLeft.X }

// Height returns the vertical world extent.
func (c Corners) Height() float64 { return c.BottomLeft.Y - c.TopLeft.Y }

// Center returns the midpoint of the rectangle.
func (c Corners) Center() Pixeloid {
	return Pixeloid{
		X: (c.TopLeft.X + c.BottomRight.X) / 2,
		Y: (c.TopLeft.Y + c.BottomRight.Y) / 2,
	}
}

// ScreenRect is an axis aligned rectangle in screen space.
type ScreenRect struct {
	Min, Max Screen
}

// VertexRect is an axis aligned rectangle in vertex space.
type VertexRect struct {
	Min, Max Vertex
}

// WorldRect is an axis aligned rectangle in pixeloid space.
type WorldRect struct {
	Min, Max Pixeloid
}

// Contains reports whether p lies inside r, edges included.
func (r WorldRect) Contains(p Pixeloid) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and o overlap with positive area.
func (r WorldRect) Intersects(o WorldRect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Bounds holds one visible rectangle expressed in every coordinate space.
type Bounds struct {
	Corners Corners
	Offset  Pixeloid
	Scale   float64

	Screen ScreenRect
	Vertex VertexRect
	World  WorldRect
}

// halfExtent returns half the world-space size of the viewport.
func halfExtent(viewport Size, scale float64) (float64, float64) {
	return viewport.W / scale / 2, viewport.H / scale / 2
}

// ViewportCorners returns the visible rectangle for a camera centered at
// camera. This is the only corner formula in the module.
func ViewportCorners(camera Pixeloid, viewport Size, scale float64) (Corners, error) {
	if err := CheckScale(scale); err != nil {
		return Corners{}, err
	}
	hw, hh := halfExtent(viewport, scale)
	return Corners{
		TopLeft:     Pixeloid{X: camera.X - hw, Y: camera.Y - hh},
		TopRight:    Pixeloid{X: camera.X + hw, Y: camera.Y - hh},
		BottomLeft:  Pixeloid{X: camera.X - hw, Y: camera.Y + hh},
		BottomRight: Pixeloid{X: camera.X + hw, Y: camera.Y + hh},
	}, nil
}

// OriginOffset returns the world position of screen (0,0) for a camera
// centered at camera. It is the offset to use with the screen and vertex
// conversions.
func OriginOffset(camera Pixeloid, viewport Size, scale float64) (Pixeloid, error) {
	if err := CheckScale(scale); err != nil {
		return Pixeloid{}, err
	}
	hw, hh := halfExtent(viewport, scale)
	return Pixeloid{X: camera.X - hw, Y: camera.Y - hh}, nil
}

// ViewportBounds computes the corners and their screen, vertex and world
// rectangles in one pass.
func ViewportBounds(camera Pixeloid, viewport Size, scale float64) (Bounds, error) {
	corners, err := ViewportCorners(camera, viewport, scale)
	if err != nil {
		return Bounds{}, err
	}
	offset := corners.TopLeft
	return Bounds{
		Corners: corners,
		Offset:  offset,
		Scale:   scale,
		Screen: ScreenRect{
			Max: Screen{X: viewport.W, Y: viewport.H},
		},
		Vertex: VertexRect{
			Min: PixeloidToVertex(corners.TopLeft, offset),
			Max: PixeloidToVertex(corners.BottomRight, offset),
		},
		World: WorldRect{Min: corners.TopLeft, Max: corners.BottomRight},
	}, nil
}
