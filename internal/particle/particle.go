package particle

import (
	"github.com/jakecoffman/cp"
)

// ID identifies a particle for the lifetime of its store. Zero means "no particle".
type ID uint64

type Shape uint8

const (
	Disc Shape = iota
	Box
	Wedge
)

var shapeNames = [...]string{"disc", "box", "wedge"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Shapes lists every shape variant in declaration order.
var Shapes = []Shape{Disc, Box, Wedge}

// Bounds is the viewport the particles live in, in world units.
type Bounds struct {
	Width  float64
	Height float64
}

func (b Bounds) Valid() bool { return b.Width >= 0 && b.Height >= 0 }

// Particle is one simulated body. Pos is the top-left anchor of its bounding box.
// Size, shape and colour are fixed at creation and only readable through accessors.
type Particle struct {
	ID ID

	Pos cp.Vector
	Vel cp.Vector

	Rotation      float64
	RotationSpeed float64

	ScaleX float64
	ScaleY float64

	Dragging bool

	size  float64
	shape Shape
	color int
}

// New builds a resting particle at pos. Stores assign ids themselves; New is
// exported for fixtures and tools that need a body with exact geometry.
func New(id ID, pos cp.Vector, size float64, shape Shape, color int) *Particle {
	return &Particle{
		ID:     id,
		Pos:    pos,
		ScaleX: 1,
		ScaleY: 1,
		size:   size,
		shape:  shape,
		color:  color,
	}
}

func (p *Particle) Size() float64 { return p.size }
func (p *Particle) Shape() Shape  { return p.shape }
func (p *Particle) Color() int    { return p.color }

// Center is the middle of the bounding box, used as the collision circle center.
func (p *Particle) Center() cp.Vector {
	half := p.size / 2
	return cp.Vector{X: p.Pos.X + half, Y: p.Pos.Y + half}
}

// BB is the axis-aligned bounding box in world space (y grows downward, so B < T).
func (p *Particle) BB() cp.BB {
	return cp.BB{L: p.Pos.X, B: p.Pos.Y, R: p.Pos.X + p.size, T: p.Pos.Y + p.size}
}

// Contains reports whether pt lies on the particle. Discs use the inscribed
// circle; boxes and wedges use the bounding box.
func (p *Particle) Contains(pt cp.Vector) bool {
	if p.shape == Disc {
		r := p.size / 2
		return pt.DistanceSq(p.Center()) <= r*r
	}
	return p.BB().ContainsVect(pt)
}
