package cursor

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/jakecoffman/cp"
)

// Mode is the visual variant of the cursor, picked from whatever sits under
// the pointer.
type Mode uint8

const (
	Default Mode = iota
	Pointer
	Text
)

func (m Mode) String() string {
	switch m {
	case Pointer:
		return "pointer"
	case Text:
		return "text"
	default:
		return "default"
	}
}

const (
	MinLevel     = 1
	MaxLevel     = 10
	DefaultLevel = 5

	// PressedScale is the resting scale while the primary button is held.
	PressedScale = 0.9

	snapDistance = 0.1

	springFrequency = 12.0
	springDamping   = 0.7
)

// Offscreen is where both current and target start, so nothing is drawn
// before the first pointer sample.
var Offscreen = cp.Vector{X: -100, Y: -100}

// FactorForLevel maps a 1..10 speed level to the per-tick smoothing factor.
// Level 10 is an exact 1.0 so the follower can sync on input instead of
// waiting for a tick.
func FactorForLevel(level int) float64 {
	level = ClampLevel(level)
	if level == MaxLevel {
		return 1.0
	}
	return 0.03 + 0.04*float64(level)
}

func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// State is a copy of the follower for rendering.
type State struct {
	Pos     cp.Vector
	Target  cp.Vector
	Mode    Mode
	Pressed bool
	Scale   float64
	Level   int
}

// Follower chases the raw pointer with exponential smoothing. It runs its own
// tick and never touches particles.
type Follower struct {
	current cp.Vector
	target  cp.Vector

	level  int
	factor float64

	mode    Mode
	pressed bool

	spring   harmonica.Spring
	scale    float64
	scaleVel float64
}

// New builds a follower at the given level. fps sizes the press spring's
// time step.
func New(level, fps int) *Follower {
	if fps <= 0 {
		fps = 60
	}
	f := &Follower{
		current: Offscreen,
		target:  Offscreen,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		scale:   1,
	}
	f.SetLevel(level)
	return f
}

// Sample records a raw pointer position. At full speed the follower jumps
// straight to it.
func (f *Follower) Sample(pt cp.Vector) {
	f.target = pt
	if f.factor == 1.0 {
		f.current = pt
	}
}

// Tick moves current toward target by one smoothing step.
func (f *Follower) Tick() {
	next := cp.Vector{
		X: f.current.X + (f.target.X-f.current.X)*f.factor,
		Y: f.current.Y + (f.target.Y-f.current.Y)*f.factor,
	}
	if math.Abs(next.X-f.target.X)+math.Abs(next.Y-f.target.Y) < snapDistance {
		next = f.target
	}
	f.current = next

	goal := 1.0
	if f.pressed {
		goal = PressedScale
	}
	f.scale, f.scaleVel = f.spring.Update(f.scale, f.scaleVel, goal)
}

// SetLevel clamps level into 1..10 and returns the level applied.
func (f *Follower) SetLevel(level int) int {
	f.level = ClampLevel(level)
	f.factor = FactorForLevel(f.level)
	if f.factor == 1.0 {
		f.current = f.target
	}
	return f.level
}

func (f *Follower) Faster() int { return f.SetLevel(f.level + 1) }
func (f *Follower) Slower() int { return f.SetLevel(f.level - 1) }

func (f *Follower) Level() int        { return f.level }
func (f *Follower) Factor() float64   { return f.factor }
func (f *Follower) Pos() cp.Vector    { return f.current }
func (f *Follower) Target() cp.Vector { return f.target }

func (f *Follower) SetMode(m Mode) { f.mode = m }
func (f *Follower) Mode() Mode     { return f.mode }

func (f *Follower) Press(down bool) { f.pressed = down }

// Hide parks the follower offscreen, e.g. when the pointer leaves the view.
func (f *Follower) Hide() {
	f.current, f.target = Offscreen, Offscreen
	f.mode = Default
	f.pressed = false
}

func (f *Follower) Snapshot() State {
	return State{
		Pos:     f.current,
		Target:  f.target,
		Mode:    f.mode,
		Pressed: f.pressed,
		Scale:   f.scale,
		Level:   f.level,
	}
}
