package app

import (
	"math"

	"pixeloid/internal/engine"
	"pixeloid/internal/space"
)

// Camera holds the viewer's pan and zoom. Pos is the world position at the
// center of the viewport.
type Camera struct {
	Pos      space.Pixeloid
	Scale    float64
	MinScale float64
	MaxScale float64
}

// NewCamera returns a camera at the origin using cfg's scale limits.
func NewCamera(cfg *Config) *Camera {
	return &Camera{Scale: cfg.Scale, MinScale: cfg.MinScale, MaxScale: cfg.MaxScale}
}

// PanScreen moves the camera so content follows a drag of (dx, dy) screen
// pixels.
func (c *Camera) PanScreen(dx, dy float64) {
	c.Pos = c.Pos.Add(-dx/c.Scale, -dy/c.Scale)
}

// Zoom multiplies the scale by factor, clamped to the limits, keeping the
// world point under anchor fixed on screen.
func (c *Camera) Zoom(factor float64, anchor space.Screen, viewport space.Size) {
	next := math.Min(math.Max(c.Scale*factor, c.MinScale), c.MaxScale)
	if next == c.Scale {
		return
	}
	ax := anchor.X - viewport.W/2
	ay := anchor.Y - viewport.H/2
	c.Pos = c.Pos.Add(ax/c.Scale-ax/next, ay/c.Scale-ay/next)
	c.Scale = next
}

// Context builds the frame input for a viewport.
func (c *Camera) Context(viewport space.Size, padding int) engine.FrameContext {
	return engine.FrameContext{Camera: c.Pos, Viewport: viewport, Scale: c.Scale, Padding: padding}
}
