package gui

import (
	"image"

	"github.com/san-kum/driftbox/internal/cursor"
)

const (
	barHeight  = 36
	btnHeight  = 24
	btnPadding = 8
	glyphWidth = 6 // ebitenutil debug font
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionRemove
	actionSlower
	actionFaster
	actionReseed
	actionSeed
)

type button struct {
	label  string
	action action
	rect   image.Rectangle
}

// controls is the button strip along the bottom of the window.
type controls struct {
	buttons []button
	field   image.Rectangle
}

func newControls() *controls {
	return &controls{buttons: []button{
		{label: "+", action: actionAdd},
		{label: "-", action: actionRemove},
		{label: "slower", action: actionSlower},
		{label: "faster", action: actionFaster},
		{label: "reseed", action: actionReseed},
	}}
}

// layout positions the strip for a window of the given size. The playground
// ends at top.
func (c *controls) layout(width, height int) (top int) {
	top = height - barHeight
	if top < 0 {
		top = 0
	}
	y := top + (barHeight-btnHeight)/2
	x := btnPadding
	for i := range c.buttons {
		w := len(c.buttons[i].label)*glyphWidth + 2*btnPadding
		c.buttons[i].rect = image.Rect(x, y, x+w, y+btnHeight)
		x += w + btnPadding
	}
	fieldW := 20*glyphWidth + 2*btnPadding
	if x+fieldW > width-btnPadding {
		fieldW = max(width-btnPadding-x, 0)
	}
	c.field = image.Rect(x, y, x+fieldW, y+btnHeight)
	return top
}

func (c *controls) hit(x, y int) action {
	pt := image.Pt(x, y)
	for _, b := range c.buttons {
		if pt.In(b.rect) {
			return b.action
		}
	}
	if pt.In(c.field) {
		return actionSeed
	}
	return actionNone
}

func modeFor(a action) cursor.Mode {
	switch a {
	case actionNone:
		return cursor.Default
	case actionSeed:
		return cursor.Text
	default:
		return cursor.Pointer
	}
}
