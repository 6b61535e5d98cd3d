package app

import (
	"math"
	"testing"

	"pixeloid/internal/space"
)

func TestPanScreenFollowsDrag(t *testing.T) {
	c := NewCamera(NewConfig())
	c.PanScreen(50, -20)
	if c.Pos != (space.Pixeloid{X: -5, Y: 2}) {
		t.Fatalf("pos = %v", c.Pos)
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	view := space.Size{W: 800, H: 600}
	anchor := space.Screen{X: 620, Y: 130}
	c := NewCamera(NewConfig())
	c.Pos = space.Pixeloid{X: 3, Y: -7}

	under := func() space.Pixeloid {
		f := c.Context(view, 0)
		o, err := f.Offset()
		if err != nil {
			t.Fatal(err)
		}
		p, err := space.ScreenToPixeloid(anchor, o, c.Scale)
		if err != nil {
			t.Fatal(err)
		}
		return p
	}
	before := under()
	c.Zoom(1.5, anchor, view)
	after := under()
	if c.Scale != 15 {
		t.Fatalf("scale = %v", c.Scale)
	}
	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Fatalf("anchor moved from %v to %v", before, after)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewCamera(NewConfig())
	for i := 0; i < 50; i++ {
		c.Zoom(2, space.Screen{}, space.Size{W: 100, H: 100})
	}
	if c.Scale != 64 {
		t.Fatalf("scale = %v, want max 64", c.Scale)
	}
	for i := 0; i < 50; i++ {
		c.Zoom(0.5, space.Screen{}, space.Size{W: 100, H: 100})
	}
	if c.Scale != 1 {
		t.Fatalf("scale = %v, want min 1", c.Scale)
	}
}
