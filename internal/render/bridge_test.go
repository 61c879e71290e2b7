package render

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/particle"
)

func TestComposeOrdersDraggedLast(t *testing.T) {
	ps := []*particle.Particle{
		particle.New(1, cp.Vector{X: 0, Y: 0}, 60, particle.Disc, 0),
		particle.New(2, cp.Vector{X: 100, Y: 0}, 60, particle.Box, 1),
		particle.New(3, cp.Vector{X: 200, Y: 0}, 60, particle.Wedge, 2),
	}
	ps[0].Dragging = true

	b := NewBridge(nil)
	f := b.Compose(7, ps, cursor.State{}, particle.Bounds{Width: 400, Height: 300})

	if len(f.Items) != 3 || f.Count != 3 || f.Tick != 7 {
		t.Fatalf("unexpected frame %+v", f)
	}
	last := f.Items[2]
	if last.ID != 1 || !last.Dragging {
		t.Errorf("dragged item should be last, got id %d", last.ID)
	}
	if last.Brightness != DragBrightness || last.Elevation != DragElevation {
		t.Errorf("dragged emphasis = %v/%v", last.Brightness, last.Elevation)
	}
	if f.Items[0].ID != 2 || f.Items[1].ID != 3 {
		t.Errorf("non-dragged order changed: %d %d", f.Items[0].ID, f.Items[1].ID)
	}
	if f.Items[0].Brightness != 1 || f.Items[0].Elevation != 0 {
		t.Error("idle items should be unlit and flat")
	}
}

func TestComposeReusesBuffers(t *testing.T) {
	ps := []*particle.Particle{
		particle.New(1, cp.Vector{}, 60, particle.Disc, 0),
		particle.New(2, cp.Vector{}, 60, particle.Disc, 0),
	}
	b := NewBridge(nil)
	f1 := b.Compose(1, ps, cursor.State{}, particle.Bounds{})
	first := &f1.Items[0]
	f2 := b.Compose(2, ps[:1], cursor.State{}, particle.Bounds{})

	if f1 != f2 {
		t.Error("frame should be reused")
	}
	if &f2.Items[0] != first {
		t.Error("item buffer should be reused")
	}
	if len(f2.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(f2.Items))
	}
}

func TestComposeDoesNotMutate(t *testing.T) {
	p := particle.New(1, cp.Vector{X: 3, Y: 4}, 60, particle.Disc, 0)
	p.Vel = cp.Vector{X: 1}
	p.Dragging = true
	before := *p

	NewBridge(nil).Compose(1, []*particle.Particle{p}, cursor.State{}, particle.Bounds{})
	if *p != before {
		t.Errorf("compose mutated particle: %+v", p)
	}
}

func TestComposeCursor(t *testing.T) {
	st := cursor.State{Pos: cp.Vector{X: 5, Y: 6}, Mode: cursor.Pointer, Pressed: true, Scale: 0.9, Level: 3}
	f := NewBridge(nil).Compose(1, nil, st, particle.Bounds{})
	c := f.Cursor
	if c.X != 5 || c.Y != 6 || c.Mode != cursor.Pointer || !c.Pressed || c.Scale != 0.9 || c.Level != 3 {
		t.Errorf("cursor = %+v", c)
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	if len(p) != 4 {
		t.Fatalf("expected 4 swatches, got %d", len(p))
	}
	if p[0].Base.Hex() != "#2dd4bf" {
		t.Errorf("teal base = %s", p[0].Base.Hex())
	}
	if p.At(5).Base != p[1].Base || p.At(-1).Base != p[3].Base {
		t.Error("At should wrap")
	}
}

func TestSwatchLit(t *testing.T) {
	s := DefaultPalette()[0]
	if s.Lit(1) != s.Base {
		t.Error("brightness 1 should return base")
	}
	_, _, l0 := s.Base.Hcl()
	_, _, l1 := s.Lit(DragBrightness).Hcl()
	if l1 <= l0 {
		t.Errorf("lit lightness %v should exceed %v", l1, l0)
	}
}

func TestOutline(t *testing.T) {
	box := Item{Shape: particle.Box, Size: 100, Transform: Transform{X: 0, Y: 0, ScaleX: 1, ScaleY: 1}}

	t.Run("box identity", func(t *testing.T) {
		poly := Outline(box, 0)
		bb := BB(poly)
		if bb.L != 0 || bb.R != 100 || bb.B != 0 || bb.T != 100 {
			t.Errorf("bb = %+v", bb)
		}
	})

	t.Run("box rotated 45", func(t *testing.T) {
		it := box
		it.Transform.Rotation = 45
		bb := BB(Outline(it, 0))
		want := 50 * math.Sqrt2
		if math.Abs(bb.R-50-want) > 1e-9 || math.Abs(bb.L-50+want) > 1e-9 {
			t.Errorf("rotated bb = %+v", bb)
		}
	})

	t.Run("scale before rotation", func(t *testing.T) {
		it := box
		it.Transform.ScaleX = 0.5
		it.Transform.Rotation = 90
		bb := BB(Outline(it, 0))
		// squashed along local x, which now points down
		if math.Abs((bb.R-bb.L)-100) > 1e-9 || math.Abs((bb.T-bb.B)-50) > 1e-9 {
			t.Errorf("bb = %+v", bb)
		}
	})

	t.Run("disc segments", func(t *testing.T) {
		it := box
		it.Shape = particle.Disc
		if n := len(Outline(it, 3)); n != MinSegments {
			t.Errorf("segments = %d", n)
		}
		poly := Outline(it, 32)
		for _, v := range poly {
			if d := v.Sub(cp.Vector{X: 50, Y: 50}).Length(); math.Abs(d-50) > 1e-9 {
				t.Fatalf("vertex off circle: %v", d)
			}
		}
	})

	t.Run("wedge contains", func(t *testing.T) {
		it := box
		it.Shape = particle.Wedge
		poly := Outline(it, 0)
		if len(poly) != 3 {
			t.Fatalf("wedge has %d vertices", len(poly))
		}
		if !Contains(poly, cp.Vector{X: 50, Y: 80}) {
			t.Error("base middle should be inside")
		}
		if Contains(poly, cp.Vector{X: 5, Y: 5}) {
			t.Error("top-left corner should be outside")
		}
	})
}
