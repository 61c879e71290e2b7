package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
)

// mesh batches convex polygons as triangle fans so a whole frame goes out in
// one DrawTriangles call.
type mesh struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func (m *mesh) reset() {
	m.vertices = m.vertices[:0]
	m.indices = m.indices[:0]
}

// fan appends poly, shifted by off, filled with col. Polygons with fewer than
// three points are skipped.
func (m *mesh) fan(poly []cp.Vector, off cp.Vector, col colorful.Color, alpha float32) {
	if len(poly) < 3 {
		return
	}
	r, g, b := col.Clamped().RGB255()
	cr, cg, cb := float32(r)/255*alpha, float32(g)/255*alpha, float32(b)/255*alpha

	base := uint16(len(m.vertices))
	for _, v := range poly {
		m.vertices = append(m.vertices, ebiten.Vertex{
			DstX:   float32(v.X + off.X),
			DstY:   float32(v.Y + off.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: alpha,
		})
	}
	for i := 1; i < len(poly)-1; i++ {
		m.indices = append(m.indices, base, base+uint16(i), base+uint16(i+1))
	}
}

// full reports whether adding n more vertices would overflow 16-bit indices.
func (m *mesh) full(n int) bool {
	return len(m.vertices)+n > 1<<16-1
}

func (m *mesh) flush(dst, src *ebiten.Image) {
	if len(m.indices) == 0 {
		return
	}
	dst.DrawTriangles(m.vertices, m.indices, src, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	m.reset()
}
