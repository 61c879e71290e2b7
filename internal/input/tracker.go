package input

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/particle"
)

const (
	DefaultGrabScale = 1.1
	DefaultThrowCap  = 15.0
)

// Lookup resolves a particle id against the live set.
type Lookup interface {
	Get(id particle.ID) (*particle.Particle, bool)
}

// Tracker turns pointer events into a single drag session. Only one drag can
// be active; presses while it is held are ignored, including presses from a
// second pointer.
type Tracker struct {
	active   particle.ID
	pointer  int
	offset   cp.Vector
	last     cp.Vector
	captured bool

	grabScale float64
	throwCap  float64
}

func NewTracker(grabScale, throwCap float64) *Tracker {
	if grabScale <= 0 {
		grabScale = DefaultGrabScale
	}
	if throwCap <= 0 {
		throwCap = DefaultThrowCap
	}
	return &Tracker{grabScale: grabScale, throwCap: throwCap}
}

// PressStart begins a drag on hit. It returns false when nothing was hit or a
// drag is already in progress.
func (t *Tracker) PressStart(pointerID int, at cp.Vector, hit *particle.Particle) bool {
	if hit == nil || t.active != 0 {
		return false
	}

	t.active = hit.ID
	t.pointer = pointerID
	t.offset = at.Sub(hit.Pos)
	t.last = at
	t.captured = true

	hit.Dragging = true
	hit.ScaleX = t.grabScale
	hit.ScaleY = t.grabScale
	return true
}

// Move follows the pointer with the drag target. The delta from the previous
// sample becomes the target's velocity so a release carries throw momentum.
func (t *Tracker) Move(store Lookup, pointerID int, at cp.Vector) {
	if t.active == 0 || pointerID != t.pointer {
		return
	}
	p, ok := store.Get(t.active)
	if !ok {
		t.clear()
		return
	}

	p.Pos = at.Sub(t.offset)
	p.Vel = at.Sub(t.last)
	t.last = at
}

// Release ends the drag and caps the throw velocity per axis.
func (t *Tracker) Release(store Lookup, pointerID int) {
	if t.active == 0 || pointerID != t.pointer {
		return
	}
	if p, ok := store.Get(t.active); ok {
		p.Dragging = false
		p.Vel = cp.Vector{
			X: clamp(p.Vel.X, -t.throwCap, t.throwCap),
			Y: clamp(p.Vel.Y, -t.throwCap, t.throwCap),
		}
	}
	t.clear()
}

// Cancel handles a pointer-cancel the same way as a release.
func (t *Tracker) Cancel(store Lookup, pointerID int) {
	t.Release(store, pointerID)
}

// Drop ends the session whatever pointer owns it. The target keeps its
// current velocity.
func (t *Tracker) Drop(store Lookup) {
	if t.active == 0 {
		return
	}
	if p, ok := store.Get(t.active); ok {
		p.Dragging = false
	}
	t.clear()
}

// Sync drops the session when its target no longer exists.
func (t *Tracker) Sync(store Lookup) {
	if t.active == 0 {
		return
	}
	if _, ok := store.Get(t.active); !ok {
		t.clear()
	}
}

// Active returns the drag target, if any.
func (t *Tracker) Active() (particle.ID, bool) {
	return t.active, t.active != 0
}

// Captured reports whether move and release events are routed to the session
// regardless of what lies under the pointer.
func (t *Tracker) Captured() bool { return t.captured }

func (t *Tracker) SetLimits(grabScale, throwCap float64) {
	if grabScale > 0 {
		t.grabScale = grabScale
	}
	if throwCap > 0 {
		t.throwCap = throwCap
	}
}

func (t *Tracker) clear() {
	t.active = 0
	t.pointer = 0
	t.offset = cp.Vector{}
	t.last = cp.Vector{}
	t.captured = false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
