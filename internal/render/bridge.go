package render

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/particle"
)

const (
	DragBrightness = 1.2
	DragElevation  = 20.0
)

// Transform places an item: X,Y is the top-left of its box, rotation is in
// degrees about the box center, scale is applied before rotation.
type Transform struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

type Item struct {
	ID         particle.ID
	Shape      particle.Shape
	Swatch     Swatch
	Size       float64
	Transform  Transform
	Dragging   bool
	Brightness float64
	Elevation  float64
}

// Center is the pivot of the item's transform.
func (it Item) Center() cp.Vector {
	return cp.Vector{X: it.Transform.X + it.Size/2, Y: it.Transform.Y + it.Size/2}
}

type CursorItem struct {
	X, Y    float64
	Mode    cursor.Mode
	Pressed bool
	Scale   float64
	Level   int
}

// Frame is everything a front end needs to draw one tick.
type Frame struct {
	Tick   uint64
	Items  []Item
	Cursor CursorItem
	Bounds particle.Bounds
	Count  int
}

// Bridge turns post-integration particle state into a Frame. It only reads
// particles. The returned frame and its item slice are reused by the next
// Compose call.
type Bridge struct {
	palette Palette
	frame   Frame
}

func NewBridge(p Palette) *Bridge {
	if len(p) == 0 {
		p = DefaultPalette()
	}
	return &Bridge{palette: p}
}

func (b *Bridge) Palette() Palette { return b.palette }

func (b *Bridge) Compose(tick uint64, ps []*particle.Particle, cur cursor.State, bounds particle.Bounds) *Frame {
	f := &b.frame
	f.Tick = tick
	f.Bounds = bounds
	f.Count = len(ps)
	f.Items = f.Items[:0]

	for _, p := range ps {
		it := Item{
			ID:     p.ID,
			Shape:  p.Shape(),
			Swatch: b.palette.At(p.Color()),
			Size:   p.Size(),
			Transform: Transform{
				X:        p.Pos.X,
				Y:        p.Pos.Y,
				Rotation: p.Rotation,
				ScaleX:   p.ScaleX,
				ScaleY:   p.ScaleY,
			},
			Dragging:   p.Dragging,
			Brightness: 1,
		}
		if p.Dragging {
			it.Brightness = DragBrightness
			it.Elevation = DragElevation
		}
		f.Items = append(f.Items, it)
	}
	// dragged item is drawn last
	sort.SliceStable(f.Items, func(i, j int) bool {
		return !f.Items[i].Dragging && f.Items[j].Dragging
	})

	f.Cursor = CursorItem{
		X:       cur.Pos.X,
		Y:       cur.Pos.Y,
		Mode:    cur.Mode,
		Pressed: cur.Pressed,
		Scale:   cur.Scale,
		Level:   cur.Level,
	}
	return f
}
