package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/viz"
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionRemove
	actionSlower
	actionFaster
	actionSeed
)

type button struct {
	label  string
	action action
	x0, x1 int // half-open column span
}

// controlBar is the clickable row under the playground.
type controlBar struct {
	buttons []button
	hot     action
	fieldAt int // first column of the seed text field
}

func newControlBar() *controlBar {
	return &controlBar{buttons: []button{
		{label: "+", action: actionAdd},
		{label: "-", action: actionRemove},
		{label: "slower", action: actionSlower},
		{label: "faster", action: actionFaster},
		{label: "seed", action: actionSeed},
	}}
}

// layout renders the bar and records each button's column span. seedField is
// the rendered text input shown after the seed button.
func (c *controlBar) layout(count, level int, seedField string) string {
	var b strings.Builder
	col := 0
	write := func(s string) {
		b.WriteString(s)
		col += lipgloss.Width(s)
	}

	for i := range c.buttons {
		btn := &c.buttons[i]
		if btn.action == actionSlower {
			write(viz.MetricLabel.Render(" shapes ") + viz.MetricValue.Render(strconv.Itoa(count)) + "  ")
		}
		if btn.action == actionSeed {
			write(viz.MetricLabel.Render(" speed ") + viz.MetricValue.Render(strconv.Itoa(level)) + "  ")
		}

		style := viz.Button
		switch {
		case c.hot == btn.action && btn.action == actionRemove:
			style = viz.ButtonDanger
		case c.hot == btn.action:
			style = viz.ButtonHot
		}
		rendered := style.Render(btn.label)
		btn.x0 = col
		write(rendered)
		btn.x1 = col
		write(" ")
	}
	c.fieldAt = col
	write(seedField)
	return b.String()
}

// hit returns the action under column x. The seed text field counts as the
// seed button.
func (c *controlBar) hit(x int) action {
	for _, btn := range c.buttons {
		if x >= btn.x0 && x < btn.x1 {
			return btn.action
		}
	}
	if c.fieldAt > 0 && x >= c.fieldAt {
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
