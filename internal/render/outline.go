package render

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/particle"
)

const MinSegments = 8

// Outline returns the item's shape as a world-space polygon. Local points are
// scaled, rotated about the box center and then translated. segments only
// applies to discs.
func Outline(it Item, segments int) []cp.Vector {
	return AppendOutline(nil, it, segments)
}

// AppendOutline is Outline writing into dst.
func AppendOutline(dst []cp.Vector, it Item, segments int) []cp.Vector {
	half := it.Size / 2
	start := len(dst)

	switch it.Shape {
	case particle.Box:
		dst = append(dst,
			cp.Vector{X: -half, Y: -half},
			cp.Vector{X: half, Y: -half},
			cp.Vector{X: half, Y: half},
			cp.Vector{X: -half, Y: half},
		)
	case particle.Wedge:
		// apex at the top middle, base along the bottom edge
		dst = append(dst,
			cp.Vector{X: 0, Y: -half},
			cp.Vector{X: half, Y: half},
			cp.Vector{X: -half, Y: half},
		)
	default:
		if segments < MinSegments {
			segments = MinSegments
		}
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			dst = append(dst, cp.Vector{X: half * math.Cos(a), Y: half * math.Sin(a)})
		}
	}

	tr := it.Transform
	sx, sy := tr.ScaleX, tr.ScaleY
	if sx == 0 && sy == 0 {
		sx, sy = 1, 1
	}
	rad := tr.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	c := it.Center()

	for i := start; i < len(dst); i++ {
		x, y := dst[i].X*sx, dst[i].Y*sy
		dst[i] = cp.Vector{
			X: c.X + x*cos - y*sin,
			Y: c.Y + x*sin + y*cos,
		}
	}
	return dst
}

// Contains reports whether pt lies inside the convex polygon poly.
func Contains(poly []cp.Vector, pt cp.Vector) bool {
	if len(poly) < 3 {
		return false
	}
	sign := 0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}

// BB is the axis-aligned bounds of a polygon.
func BB(poly []cp.Vector) cp.BB {
	if len(poly) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: poly[0].X, R: poly[0].X, B: poly[0].Y, T: poly[0].Y}
	for _, v := range poly[1:] {
		bb.L = math.Min(bb.L, v.X)
		bb.R = math.Max(bb.R, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}
