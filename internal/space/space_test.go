package space

import (
	"errors"
	"math"
	"testing"

	"pixeloid/pkg/core"
)

func TestScaleRoundTrip(t *testing.T) {
	rng := core.NewRNG(11)
	scales := []float64{1, 2, 3, 7, 10, 11, 64, 0.5, 1.75}
	for i := 0; i < 2000; i++ {
		p := Screen{X: rng.Range(-5000, 5000), Y: rng.Range(-5000, 5000)}
		s := core.Pick(rng, scales)
		v, err := ScreenToVertex(p, s)
		if err != nil {
			t.Fatalf("ScreenToVertex(%v, %v): %v", p, s, err)
		}
		back, err := VertexToScreen(v, s)
		if err != nil {
			t.Fatalf("VertexToScreen(%v, %v): %v", v, s, err)
		}
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Fatalf("scale round trip drifted: %v -> %v -> %v (scale %v)", p, v, back, s)
		}
	}
}

func TestOffsetRoundTripExact(t *testing.T) {
	rng := core.NewRNG(12)
	for i := 0; i < 2000; i++ {
		p := Pixeloid{X: rng.Dyadic(1_000_000, 1024), Y: rng.Dyadic(1_000_000, 1024)}
		o := Pixeloid{X: rng.Dyadic(1_000_000, 1024), Y: rng.Dyadic(1_000_000, 1024)}
		back := VertexToPixeloid(PixeloidToVertex(p, o), o)
		if back != p {
			t.Fatalf("offset round trip not exact: %v with offset %v came back as %v", p, o, back)
		}
	}
}

func TestInvalidScale(t *testing.T) {
	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := ScreenToVertex(Screen{X: 1, Y: 1}, s); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("ScreenToVertex scale=%v: got %v, want ErrInvalidScale", s, err)
		}
		if _, err := VertexToScreen(Vertex{X: 1, Y: 1}, s); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("VertexToScreen scale=%v: got %v, want ErrInvalidScale", s, err)
		}
		if _, err := ViewportCorners(Pixeloid{}, Size{W: 10, H: 10}, s); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("ViewportCorners scale=%v: got %v, want ErrInvalidScale", s, err)
		}
		if _, err := ViewportBounds(Pixeloid{}, Size{W: 10, H: 10}, s); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("ViewportBounds scale=%v: got %v, want ErrInvalidScale", s, err)
		}
	}
}

func TestViewportCornersCentered(t *testing.T) {
	c, err := ViewportCorners(Pixeloid{}, Size{W: 800, H: 600}, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := Corners{
		TopLeft:     Pixeloid{X: -40, Y: -30},
		TopRight:    Pixeloid{X: 40, Y: -30},
		BottomLeft:  Pixeloid{X: -40, Y: 30},
		BottomRight: Pixeloid{X: 40, Y: 30},
	}
	if c != want {
		t.Fatalf("corners = %+v, want %+v", c, want)
	}
	if c.Center() != (Pixeloid{}) {
		t.Fatalf("center = %v, want origin", c.Center())
	}
	if c.Width() != 80 || c.Height() != 60 {
		t.Fatalf("extent = %vx%v, want 80x60", c.Width(), c.Height())
	}
}

func TestOriginOffsetMapsScreenOrigin(t *testing.T) {
	camera := Pixeloid{X: 12.5, Y: -7.25}
	viewport := Size{W: 640, H: 480}
	const scale = 8.0

	offset, err := OriginOffset(camera, viewport, scale)
	if err != nil {
		t.Fatal(err)
	}
	corners, _ := ViewportCorners(camera, viewport, scale)

	if offset != corners.TopLeft {
		t.Fatalf("offset %v differs from top-left corner %v", offset, corners.TopLeft)
	}
	s, err := PixeloidToScreen(corners.TopLeft, offset, scale)
	if err != nil {
		t.Fatal(err)
	}
	if s != (Screen{}) {
		t.Fatalf("top-left corner maps to %v, want screen origin", s)
	}
	s, _ = PixeloidToScreen(corners.BottomRight, offset, scale)
	if s != (Screen{X: viewport.W, Y: viewport.H}) {
		t.Fatalf("bottom-right corner maps to %v, want %v", s, viewport)
	}
	p, _ := ScreenToPixeloid(Screen{X: 320, Y: 240}, offset, scale)
	if p != camera {
		t.Fatalf("screen center maps to %v, want camera %v", p, camera)
	}
}

func TestViewportBoundsAgree(t *testing.T) {
	b, err := ViewportBounds(Pixeloid{X: 3, Y: 4}, Size{W: 200, H: 100}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if b.World.Min != b.Corners.TopLeft || b.World.Max != b.Corners.BottomRight {
		t.Fatalf("world rect %+v disagrees with corners %+v", b.World, b.Corners)
	}
	if b.Vertex.Min != (Vertex{}) || b.Vertex.Max != (Vertex{X: 50, Y: 25}) {
		t.Fatalf("vertex rect = %+v", b.Vertex)
	}
	if b.Screen.Max != (Screen{X: 200, Y: 100}) {
		t.Fatalf("screen rect = %+v", b.Screen)
	}
	if !b.World.Contains(Pixeloid{X: 3, Y: 4}) {
		t.Fatal("world rect should contain the camera")
	}
}

func TestConversionsDoNotMutate(t *testing.T) {
	p := Pixeloid{X: 1, Y: 2}
	o := Pixeloid{X: 3, Y: 4}
	_ = PixeloidToVertex(p, o)
	_, _ = PixeloidToScreen(p, o, 2)
	if p != (Pixeloid{X: 1, Y: 2}) || o != (Pixeloid{X: 3, Y: 4}) {
		t.Fatal("conversion mutated its arguments")
	}
}

func TestCellFloorsNegatives(t *testing.T) {
	cases := []struct {
		p    Pixeloid
		x, y int
	}{
		{Pixeloid{X: 0, Y: 0}, 0, 0},
		{Pixeloid{X: 0.999, Y: 1.0}, 0, 1},
		{Pixeloid{X: -0.001, Y: -1}, -1, -1},
		{Pixeloid{X: -1.5, Y: 2.5}, -2, 2},
	}
	for _, tc := range cases {
		x, y := tc.p.Cell()
		if x != tc.x || y != tc.y {
			t.Fatalf("Cell(%v) = (%d,%d), want (%d,%d)", tc.p, x, y, tc.x, tc.y)
		}
	}
}

func TestMemoMatchesArithmetic(t *testing.T) {
	rng := core.NewRNG(13)
	memo := NewMemo(8)
	ref := Arithmetic{}
	offsets := []Pixeloid{{X: 0, Y: 0}, {X: 5, Y: -3}, {X: 0.5, Y: 100}}
	points := make([]Pixeloid, 16)
	for i := range points {
		points[i] = Pixeloid{X: rng.Range(-50, 50), Y: rng.Range(-50, 50)}
	}
	for i := 0; i < 500; i++ {
		o := core.Pick(rng, offsets)
		p := core.Pick(rng, points)
		if got, want := memo.ToVertex(p, o), ref.ToVertex(p, o); got != want {
			t.Fatalf("memo ToVertex(%v, %v) = %v, want %v", p, o, got, want)
		}
		v := ref.ToVertex(p, o)
		if got, want := memo.ToPixeloid(v, o), ref.ToPixeloid(v, o); got != want {
			t.Fatalf("memo ToPixeloid(%v, %v) = %v, want %v", v, o, got, want)
		}
	}
	hits, misses := memo.Stats()
	if hits == 0 || misses == 0 {
		t.Fatalf("expected both hits and misses, got %d/%d", hits, misses)
	}
	if len(memo.toV) > 8 || len(memo.toP) > 8 {
		t.Fatalf("memo exceeded its limit: %d/%d", len(memo.toV), len(memo.toP))
	}
}

func TestMapperRegistry(t *testing.T) {
	names := MapperNames()
	if len(names) < 2 || names[0] != "arithmetic" || names[1] != "memo" {
		t.Fatalf("MapperNames = %v", names)
	}
	f, ok := LookupMapper("memo")
	if !ok {
		t.Fatal("memo mapper not registered")
	}
	if _, ok := f().(*Memo); !ok {
		t.Fatal("memo factory returned the wrong type")
	}
	if _, ok := LookupMapper("lookup-table"); ok {
		t.Fatal("unexpected mapper registered")
	}
	RegisterMapper("", nil)
	if len(MapperNames()) != len(names) {
		t.Fatal("empty registration should be ignored")
	}
}
