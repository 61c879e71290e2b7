package tui

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/render"
	"github.com/san-kum/driftbox/internal/viz"
)

const (
	discSegments = 24
	cursorColor  = "#ccfbf1"
)

// raster maps world units onto braille dots. One terminal cell is cellW x
// cellH world units and holds 2x4 dots.
type raster struct {
	cellW, cellH float64
	poly         []cp.Vector
}

func (r *raster) dotW() float64 { return r.cellW / 2 }
func (r *raster) dotH() float64 { return r.cellH / 4 }

func (r *raster) toDots(v cp.Vector) cp.Vector {
	return cp.Vector{X: v.X / r.dotW(), Y: v.Y / r.dotH()}
}

// cellToWorld returns the world point at the middle of a cell.
func (r *raster) cellToWorld(col, row int) cp.Vector {
	return cp.Vector{X: (float64(col) + 0.5) * r.cellW, Y: (float64(row) + 0.5) * r.cellH}
}

func (r *raster) draw(c *viz.Canvas, f *render.Frame) {
	c.Clear()
	if f == nil {
		return
	}
	for _, it := range f.Items {
		r.poly = render.AppendOutline(r.poly[:0], it, discSegments)
		if it.Elevation > 0 {
			r.shadow(c, it)
		}
		for i, v := range r.poly {
			r.poly[i] = r.toDots(v)
		}
		c.FillPolygon(r.poly, viz.Hex(it.Swatch.Lit(it.Brightness)))
		if it.Dragging {
			c.StrokePolygon(r.poly, viz.Hex(it.Swatch.Highlight))
		}
	}
	r.cursor(c, f.Cursor)
}

// shadow fills the current outline offset down-right by the item's elevation.
func (r *raster) shadow(c *viz.Canvas, it render.Item) {
	off := cp.Vector{X: it.Elevation / 2, Y: it.Elevation}
	shadow := make([]cp.Vector, len(r.poly))
	for i, v := range r.poly {
		shadow[i] = r.toDots(v.Add(off))
	}
	c.FillPolygon(shadow, viz.Hex(it.Swatch.Shadow))
}

func (r *raster) cursor(c *viz.Canvas, cur render.CursorItem) {
	if cur.X < 0 && cur.Y < 0 {
		return
	}
	scale := cur.Scale
	if scale <= 0 {
		scale = 1
	}
	center := r.toDots(cp.Vector{X: cur.X, Y: cur.Y})
	cx, cy := int(math.Round(center.X)), int(math.Round(center.Y))

	switch cur.Mode {
	case cursor.Text:
		h := int(math.Round(3 * scale))
		c.DrawLine(cx, cy-h, cx, cy+h, cursorColor)
	case cursor.Pointer:
		radius := 3 * scale
		for i := 0; i < 12; i++ {
			a := 2 * math.Pi * float64(i) / 12
			c.SetColor(cx+int(math.Round(radius*math.Cos(a))), cy+int(math.Round(radius*math.Sin(a)*2)), cursorColor)
		}
	default:
		c.SetColor(cx, cy, cursorColor)
		c.SetColor(cx+1, cy, cursorColor)
		c.SetColor(cx, cy+1, cursorColor)
		c.SetColor(cx+1, cy+1, cursorColor)
	}
}
