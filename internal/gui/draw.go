package gui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/render"
)

const (
	discSegments   = 48
	cursorSegments = 16
	shadowAlpha    = 0.55
	statusTimeout  = 3 * time.Second
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)
	f := a.sim.Frame()
	if f == nil {
		return
	}
	a.drawItems(screen, f)
	a.drawBar(screen, f)
	a.drawHUD(screen, f)
	a.drawCursor(screen, f.Cursor)
}

// drawItems fans every outline into one mesh. A dragged item is last in the
// frame; its shadow, body and outline go on top.
func (a *App) drawItems(screen *ebiten.Image, f *render.Frame) {
	a.mesh.reset()
	for _, it := range f.Items {
		a.poly = render.AppendOutline(a.poly[:0], it, discSegments)
		if a.mesh.full(2 * len(a.poly)) {
			a.mesh.flush(screen, whiteSubImage)
		}
		if it.Elevation > 0 {
			a.mesh.fan(a.poly, cp.Vector{X: it.Elevation / 2, Y: it.Elevation}, it.Swatch.Shadow, shadowAlpha)
		}
		a.mesh.fan(a.poly, cp.Vector{}, it.Swatch.Lit(it.Brightness), 1)
		if it.Dragging {
			a.mesh.flush(screen, whiteSubImage)
			strokePoly(screen, a.poly, it.Swatch.Highlight)
		}
	}
	a.mesh.flush(screen, whiteSubImage)
}

func strokePoly(screen *ebiten.Image, poly []cp.Vector, col colorful.Color) {
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 2, col.Clamped(), true)
	}
}

func (a *App) drawBar(screen *ebiten.Image, f *render.Frame) {
	vector.FillRect(screen, 0, float32(a.top), float32(a.width), barHeight, colBar, false)

	for _, b := range a.ctrl.buttons {
		fill := colButton
		if a.hot == b.action {
			fill = colHot
			if b.action == actionRemove {
				fill = colDanger
			}
		}
		r := b.rect
		vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
		ebitenutil.DebugPrintAt(screen, b.label, r.Min.X+btnPadding, r.Min.Y+(btnHeight-16)/2)
	}

	r := a.ctrl.field
	if r.Dx() > 0 {
		vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), colField, false)
		edge := colButton
		if a.seedFocus {
			edge = colOutline
		}
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, edge, false)
		text := string(a.seedText)
		switch {
		case a.seedFocus && (time.Now().UnixMilli()/500)%2 == 0:
			text += "_"
		case !a.seedFocus && text == "":
			text = "seed"
		}
		ebitenutil.DebugPrintAt(screen, text, r.Min.X+btnPadding, r.Min.Y+(btnHeight-16)/2)
	}

	info := fmt.Sprintf("shapes %d  speed %d", f.Count, f.Cursor.Level)
	ebitenutil.DebugPrintAt(screen, info, r.Max.X+2*btnPadding, a.top+(barHeight-16)/2)
}

func (a *App) drawHUD(screen *ebiten.Image, f *render.Frame) {
	st := a.sim.LastStats()
	line := fmt.Sprintf("tick %d  contacts %d  walls %d  tps %.0f", f.Tick, st.Contacts, st.WallHits, ebiten.ActualTPS())
	if a.paused {
		line += "  paused"
	}
	if a.status != "" && time.Since(a.shown) < statusTimeout {
		line += "  " + a.status
	}
	ebitenutil.DebugPrint(screen, line)
}

func (a *App) drawCursor(screen *ebiten.Image, c render.CursorItem) {
	if c.X == cursor.Offscreen.X && c.Y == cursor.Offscreen.Y {
		return
	}
	scale := float32(c.Scale)
	if scale <= 0 {
		scale = 1
	}
	x, y := float32(c.X), float32(c.Y)

	switch c.Mode {
	case cursor.Text:
		h := 10 * scale
		vector.StrokeLine(screen, x, y-h, x, y+h, 2, colCursor, true)
		vector.StrokeLine(screen, x-4*scale, y-h, x+4*scale, y-h, 2, colCursor, true)
		vector.StrokeLine(screen, x-4*scale, y+h, x+4*scale, y+h, 2, colCursor, true)
	case cursor.Pointer:
		vector.StrokeCircle(screen, x, y, 14*scale, 2, colCursor, true)
	default:
		a.poly = a.poly[:0]
		r := 6 * float64(scale)
		for i := 0; i < cursorSegments; i++ {
			t := 2 * math.Pi * float64(i) / cursorSegments
			a.poly = append(a.poly, cp.Vector{X: c.X + r*math.Cos(t), Y: c.Y + r*math.Sin(t)})
		}
		a.mesh.fan(a.poly, cp.Vector{}, colorful.Color{R: 0.8, G: 0.984, B: 0.945}, 1)
		a.mesh.flush(screen, whiteSubImage)
	}
}
