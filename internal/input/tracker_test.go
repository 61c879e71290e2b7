package input

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/particle"
)

func setup(t *testing.T) (*particle.Store, *Tracker) {
	t.Helper()
	s := particle.NewStore(rand.New(rand.NewSource(7)))
	if _, err := s.Create(4, particle.Bounds{Width: 1000, Height: 800}); err != nil {
		t.Fatal(err)
	}
	return s, NewTracker(DefaultGrabScale, DefaultThrowCap)
}

func TestPressMiss(t *testing.T) {
	_, tr := setup(t)
	if tr.PressStart(0, cp.Vector{X: 10, Y: 10}, nil) {
		t.Error("press without a hit must not start a drag")
	}
	if _, ok := tr.Active(); ok || tr.Captured() {
		t.Error("tracker should stay idle")
	}
}

func TestPressStartsDrag(t *testing.T) {
	s, tr := setup(t)
	p := s.All()[0]
	p.Pos = cp.Vector{X: 100, Y: 100}

	if !tr.PressStart(0, cp.Vector{X: 120, Y: 130}, p) {
		t.Fatal("expected drag to start")
	}
	if !p.Dragging {
		t.Error("target not marked dragging")
	}
	if p.ScaleX != DefaultGrabScale || p.ScaleY != DefaultGrabScale {
		t.Errorf("expected grab scale bump, got %v,%v", p.ScaleX, p.ScaleY)
	}
	if id, ok := tr.Active(); !ok || id != p.ID {
		t.Errorf("expected active %d, got %d", p.ID, id)
	}
	if !tr.Captured() {
		t.Error("expected pointer capture")
	}
}

func TestMoveKeepsOffsetAndSamplesVelocity(t *testing.T) {
	s, tr := setup(t)
	p := s.All()[1]
	p.Pos = cp.Vector{X: 100, Y: 100}
	tr.PressStart(0, cp.Vector{X: 120, Y: 130}, p)

	tr.Move(s, 0, cp.Vector{X: 150, Y: 125})
	if p.Pos.X != 130 || p.Pos.Y != 95 {
		t.Errorf("expected position (130,95), got %v", p.Pos)
	}
	if p.Vel.X != 30 || p.Vel.Y != -5 {
		t.Errorf("expected velocity sample (30,-5), got %v", p.Vel)
	}

	tr.Move(s, 0, cp.Vector{X: 152, Y: 125})
	if p.Vel.X != 2 || p.Vel.Y != 0 {
		t.Errorf("expected velocity from last sample (2,0), got %v", p.Vel)
	}

	// other pointers are ignored while captured
	tr.Move(s, 3, cp.Vector{X: 900, Y: 900})
	if p.Pos.X != 132 {
		t.Errorf("foreign pointer moved the target to %v", p.Pos)
	}
}

func TestReleaseClampsThrow(t *testing.T) {
	s, tr := setup(t)
	p := s.All()[0]
	tr.PressStart(0, p.Pos, p)
	tr.Move(s, 0, p.Pos.Add(cp.Vector{X: 80, Y: -40}))
	tr.Release(s, 0)

	if p.Dragging {
		t.Error("drag flag not cleared")
	}
	if p.Vel.X != DefaultThrowCap || p.Vel.Y != -DefaultThrowCap {
		t.Errorf("expected clamped velocity (15,-15), got %v", p.Vel)
	}
	if _, ok := tr.Active(); ok || tr.Captured() {
		t.Error("session not cleared on release")
	}
}

func TestSecondPressIgnored(t *testing.T) {
	s, tr := setup(t)
	a, b := s.All()[0], s.All()[1]

	tr.PressStart(0, a.Pos, a)
	if tr.PressStart(1, b.Pos, b) {
		t.Error("second press must be ignored")
	}
	if b.Dragging {
		t.Error("second target must not be dragging")
	}
}

func TestRemovedTargetClearsSilently(t *testing.T) {
	s, tr := setup(t)
	last := s.All()[s.Len()-1]
	tr.PressStart(0, last.Pos, last)
	s.RemoveLast()

	tr.Move(s, 0, cp.Vector{X: 1, Y: 1})
	if _, ok := tr.Active(); ok {
		t.Error("expected drag cleared after target removal")
	}

	tr.PressStart(0, s.All()[0].Pos, s.All()[0])
	s.RemoveLast()
	s.RemoveLast()
	s.RemoveLast()
	tr.Sync(s)
	if _, ok := tr.Active(); ok {
		t.Error("Sync should clear a vanished target")
	}
	tr.Release(s, 0)
}

func TestDragExclusivity(t *testing.T) {
	s, tr := setup(t)
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 5000; i++ {
		ps := s.All()
		switch rng.Intn(4) {
		case 0:
			var hit *particle.Particle
			if len(ps) > 0 && rng.Intn(3) > 0 {
				hit = ps[rng.Intn(len(ps))]
			}
			tr.PressStart(rng.Intn(2), cp.Vector{X: rng.Float64() * 1000, Y: rng.Float64() * 800}, hit)
		case 1:
			tr.Move(s, rng.Intn(2), cp.Vector{X: rng.Float64() * 1000, Y: rng.Float64() * 800})
		case 2:
			tr.Release(s, rng.Intn(2))
		case 3:
			if rng.Intn(2) == 0 {
				s.RemoveLast()
			} else {
				s.Add(particle.Bounds{Width: 1000, Height: 800})
			}
			tr.Sync(s)
		}

		dragging := 0
		for _, p := range s.All() {
			if p.Dragging {
				dragging++
			}
		}
		if dragging > 1 {
			t.Fatalf("step %d: %d particles dragging", i, dragging)
		}
	}
}

func TestDropIgnoresPointer(t *testing.T) {
	s, tr := setup(t)
	p := s.All()[0]
	tr.PressStart(4, p.Center(), p)

	tr.Release(s, 9)
	if _, ok := tr.Active(); !ok {
		t.Fatal("release from a foreign pointer must be ignored")
	}
	tr.Drop(s)
	if _, ok := tr.Active(); ok || p.Dragging || tr.Captured() {
		t.Error("drop should clear the session")
	}
}
