package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"pixeloid/internal/core"
	"pixeloid/internal/cull"
	"pixeloid/internal/engine"
	"pixeloid/internal/space"
)

type fakeShader struct{ freed int }

func (f *fakeShader) Deallocate() { f.freed++ }

func TestEffectTransitions(t *testing.T) {
	var e Effect[*fakeShader]
	if e.State() != Unattached {
		t.Fatal("zero Effect must start unattached")
	}
	if _, err := e.Detach(); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("Detach on unattached: %v", err)
	}
	s := &fakeShader{}
	if err := e.Attach(s); err != nil {
		t.Fatal(err)
	}
	if err := e.Attach(&fakeShader{}); !errors.Is(err, ErrAlreadyAttached) {
		t.Fatalf("double Attach: %v", err)
	}
	if h, ok := e.Handle(); !ok || h != s {
		t.Fatal("Handle should return the attached shader")
	}
	h, err := e.Detach()
	if err != nil || h != s {
		t.Fatalf("Detach = %v, %v", h, err)
	}
	if s.freed != 0 {
		t.Fatal("Detach must not free the resource")
	}
	if _, ok := e.Handle(); ok {
		t.Fatal("Handle after Detach should report false")
	}
	_ = e.Attach(s)
	e.Release()
	if s.freed != 1 || e.State() != Unattached {
		t.Fatalf("Release: freed=%d state=%v", s.freed, e.State())
	}
	e.Release()
	if s.freed != 1 {
		t.Fatal("Release on unattached effect must be a no-op")
	}
}

func TestParity(t *testing.T) {
	cases := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0}, {1, 0, 1}, {-1, 0, 1}, {-1, -1, 0}, {-3, 2, 1}, {7, 7, 0},
	}
	for _, tc := range cases {
		if got := Parity(tc.x, tc.y); got != tc.want {
			t.Fatalf("Parity(%d,%d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestFillParity(t *testing.T) {
	g := core.NewByteGrid(1, 1)
	r := cull.CellRange{StartX: -2, EndX: 1, StartY: -1, EndY: 1}
	FillParity(g, r)
	if g.W != 3 || g.H != 2 {
		t.Fatalf("grid %dx%d, want 3x2", g.W, g.H)
	}
	want := []uint8{
		1, 0, 1,
		0, 1, 0,
	}
	for i, v := range g.Cells() {
		if v != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, v, want[i])
		}
	}
	FillParity(g, cull.CellRange{})
	if g.W != 1 || g.H != 1 || g.Cells()[0] != 0 {
		t.Fatal("empty range should leave a cleared 1x1 grid")
	}
}

func TestParityImage(t *testing.T) {
	p := DefaultPalette()
	g := core.NewByteGrid(1, 1)
	img := ParityImage(g, cull.CellRange{StartX: 0, EndX: 4, StartY: 0, EndY: 2}, p)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("image bounds %v", img.Bounds())
	}
	if img.RGBAAt(0, 0) != p.Even || img.RGBAAt(1, 0) != p.Odd || img.RGBAAt(0, 1) != p.Odd {
		t.Fatal("image colors do not follow parity")
	}
}

func TestFillPaletteEmptyClears(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{1, 0}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
	fillPaletteRGBA(buf, []uint8{5}, []color.RGBA{{R: 1}, {R: 2}})
	if buf[0] != 2 {
		t.Fatal("out of range values should clamp to the last entry")
	}
}

func TestShaderSource(t *testing.T) {
	src := string(GridShaderSource())
	for _, want := range []string{"//kage:unit pixels", "package main", "func Fragment"} {
		if !strings.Contains(src, want) {
			t.Fatalf("shader source missing %q", want)
		}
	}
	u := ShaderUniforms(DefaultPalette(), 0, 0)
	for name := range u {
		if !strings.Contains(src, "var "+name+" ") {
			t.Fatalf("uniform %q not declared in shader", name)
		}
	}
	if even := u["EvenColor"].([]float32); len(even) != 4 || even[3] != 1 {
		t.Fatalf("EvenColor = %v", even)
	}
	if p := u["OriginParity"].(float32); p != 0 {
		t.Fatalf("OriginParity(0,0) = %v", p)
	}
	if p := ShaderUniforms(DefaultPalette(), 20000001, -4)["OriginParity"].(float32); p != 1 {
		t.Fatalf("OriginParity(20000001,-4) = %v", p)
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func sameColor(a, b color.RGBA) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func snapshotFrame(t *testing.T) engine.Frame {
	t.Helper()
	e, err := engine.New(engine.Config{})
	if err != nil {
		t.Fatal(err)
	}
	f, err := e.Frame(engine.FrameContext{Viewport: space.Size{W: 40, H: 40}, Scale: 10, Padding: 2})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSnapshotColorsCells(t *testing.T) {
	p := DefaultPalette()
	dc, err := Snapshot(snapshotFrame(t), p)
	if err != nil {
		t.Fatal(err)
	}
	defer dc.Close()
	img := dc.Image()
	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{25, 25, p.Even}, // cell (0,0)
		{35, 25, p.Odd},  // cell (1,0)
		{15, 25, p.Odd},  // cell (-1,0)
		{5, 5, p.Even},   // cell (-2,-2)
	}
	for _, tc := range cases {
		got := color.RGBAModel.Convert(img.At(tc.x, tc.y)).(color.RGBA)
		if !sameColor(got, tc.want) {
			t.Fatalf("pixel (%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestSnapshotFarFromOrigin(t *testing.T) {
	e, err := engine.New(engine.Config{})
	if err != nil {
		t.Fatal(err)
	}
	// screen (0,0) lands on cell (20000000, -2^40)
	f, err := e.Frame(engine.FrameContext{
		Camera:   space.Pixeloid{X: 20000002, Y: -(1 << 40) + 2},
		Viewport: space.Size{W: 40, H: 40},
		Scale:    10,
		Padding:  2,
	})
	if err != nil {
		t.Fatal(err)
	}
	p := DefaultPalette()
	dc, err := Snapshot(f, p)
	if err != nil {
		t.Fatal(err)
	}
	defer dc.Close()
	img := dc.Image()
	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, p.Even},
		{15, 5, p.Odd},
		{15, 15, p.Even},
		{35, 25, p.Odd},
	}
	for _, tc := range cases {
		got := color.RGBAModel.Convert(img.At(tc.x, tc.y)).(color.RGBA)
		if !sameColor(got, tc.want) {
			t.Fatalf("pixel (%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, snapshotFrame(t), DefaultPalette()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 40 {
		t.Fatalf("png bounds %v", img.Bounds())
	}
}

func TestSnapshotEmptyViewport(t *testing.T) {
	if _, err := Snapshot(engine.Frame{}, DefaultPalette()); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("got %v, want ErrEmptyFrame", err)
	}
}
