package core

import (
	"testing"
	"time"
)

func TestFixedStepRate(t *testing.T) {
	fs := NewFixedStep(4)
	now := time.Unix(100, 0)
	if !fs.ShouldStep(now) {
		t.Fatal("first call should fire")
	}
	fired := 0
	for i := 0; i < 20; i++ {
		now = now.Add(time.Second / 20)
		if fs.ShouldStep(now) {
			fired++
		}
	}
	if fired != 4 {
		t.Fatalf("fired %d times in one second at 4Hz", fired)
	}
}

func TestFixedStepDoesNotBurst(t *testing.T) {
	fs := NewFixedStep(10)
	now := time.Unix(0, 0)
	fs.ShouldStep(now)
	now = now.Add(5 * time.Second)
	if !fs.ShouldStep(now) {
		t.Fatal("a long pause should fire once")
	}
	bursts := 0
	for i := 0; i < 3; i++ {
		if fs.ShouldStep(now) {
			bursts++
		}
	}
	if bursts > 1 {
		t.Fatalf("fired %d extra times after a pause", bursts)
	}
}

func TestByteGridResize(t *testing.T) {
	g := NewByteGrid(4, 4)
	g.Cells()[g.Index(3, 3)] = 7
	g.Resize(2, 3)
	if g.W != 2 || g.H != 3 || len(g.Cells()) != 6 {
		t.Fatalf("resize produced %dx%d with %d cells", g.W, g.H, len(g.Cells()))
	}
	g.Resize(10, 10)
	if len(g.Cells()) != 100 {
		t.Fatalf("grow produced %d cells", len(g.Cells()))
	}
	g.Cells()[5] = 1
	g.Clear()
	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("cell %d = %d after Clear", i, v)
		}
	}
	if NewByteGrid(0, -1).W != 1 {
		t.Fatal("non-positive dimensions clamp to 1")
	}
}

func TestSnapshotLookup(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "b", Params: []Parameter{{Key: "y", Value: "2"}}},
	}}
	if p, ok := s.Lookup("y"); !ok || p.Value != "2" {
		t.Fatalf("Lookup(y) = %+v, %v", p, ok)
	}
	if _, ok := s.Lookup("z"); ok {
		t.Fatal("Lookup(z) should miss")
	}
	if (Size{W: 3, H: 4}).Area() != 12 || (Size{W: -1, H: 4}).Area() != 0 {
		t.Fatal("Size.Area mismatch")
	}
}
