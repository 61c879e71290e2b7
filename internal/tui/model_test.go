package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/driftbox/internal/config"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/particle"
	"github.com/san-kum/driftbox/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestModel builds an 80x24 terminal whose playground is 80x21 cells.
func newTestModel(t *testing.T, count int) model {
	t.Helper()
	opts := sim.DefaultOptions()
	opts.Bounds = particle.Bounds{Width: 80 * config.DefaultCellWidth, Height: 21 * config.DefaultCellHeight}
	opts.Count = count
	s, err := sim.New(opts)
	require.NoError(t, err)

	m := newModel(s, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(model)
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResizeSetsWorldBounds(t *testing.T) {
	m := newTestModel(t, 3)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, m.canvas.Width)
	assert.Equal(t, 37, m.canvas.Height)
	b := m.sim.Bounds()
	assert.Equal(t, 800.0, b.Width)
	assert.Equal(t, 37*16.0, b.Height)
}

func TestGraphShrinksPlayground(t *testing.T) {
	m := newTestModel(t, 0)
	rows := m.canvas.Height
	m = update(t, m, runes("g"))
	assert.True(t, m.showGraph)
	assert.Equal(t, rows-graphRows, m.canvas.Height)
	assert.Contains(t, m.View(), "no data")

	m = update(t, m, tickMsg{})
	m = update(t, m, tickMsg{})
	assert.Contains(t, m.View(), "kinetic energy")
}

func TestAddRemoveKeys(t *testing.T) {
	m := newTestModel(t, 2)

	m = update(t, m, runes("+"))
	m = update(t, m, runes("="))
	assert.Equal(t, 4, m.sim.Len())

	for i := 0; i < 6; i++ {
		m = update(t, m, runes("-"))
	}
	assert.Equal(t, 0, m.sim.Len(), "remove stops at an empty playground")
}

func TestCursorSpeedKeys(t *testing.T) {
	m := newTestModel(t, 0)
	for i := 0; i < 20; i++ {
		m = update(t, m, runes("]"))
	}
	assert.Equal(t, cursor.MaxLevel, m.sim.Cursor().Level)

	m = update(t, m, runes("["))
	assert.Equal(t, cursor.MaxLevel-1, m.sim.Cursor().Level)
}

func TestPauseStopsTicks(t *testing.T) {
	m := newTestModel(t, 1)
	m = update(t, m, runes(" "))
	require.True(t, m.paused)

	before := m.sim.TickCount()
	m = update(t, m, tickMsg{})
	assert.Equal(t, before, m.sim.TickCount())
	assert.Empty(t, m.energy)

	m = update(t, m, runes("p"))
	m = update(t, m, tickMsg{})
	assert.Equal(t, before+1, m.sim.TickCount())
	assert.Len(t, m.energy, 1)
}

func TestEnergyHistoryIsBounded(t *testing.T) {
	m := newTestModel(t, 0)
	for i := 0; i < historySize+10; i++ {
		m.record(float64(i))
	}
	assert.Len(t, m.energy, historySize)
	assert.Equal(t, float64(historySize+9), m.energy[historySize-1])
	assert.Equal(t, 10.0, m.energy[0])
}

func TestMouseDragThrowsParticle(t *testing.T) {
	m := newTestModel(t, 4)
	ps := m.sim.Particles()
	top := ps[len(ps)-1]
	c := top.Center()
	col := int(c.X / m.raster.cellW)
	row := int(c.Y / m.raster.cellH)

	m = update(t, m, tea.MouseMsg{X: col, Y: row + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.dragging)
	held, ok := m.sim.Dragging()
	require.True(t, ok)
	assert.True(t, held.Dragging)
	assert.Equal(t, cursor.Pointer, m.sim.Cursor().Mode)

	m = update(t, m, tea.MouseMsg{X: col + 3, Y: row + headerRows, Action: tea.MouseActionMotion})
	m = update(t, m, tea.MouseMsg{X: col + 3, Y: row + headerRows, Action: tea.MouseActionRelease})
	assert.False(t, m.dragging)
	_, ok = m.sim.Dragging()
	assert.False(t, ok)
	assert.False(t, held.Dragging)
	assert.Greater(t, held.Vel.X, 0.0, "release throws in the drag direction")
}

func TestMousePressOnEmptySpace(t *testing.T) {
	m := newTestModel(t, 0)
	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.dragging)
	assert.True(t, m.sim.Cursor().Pressed)
}

func TestControlBarClick(t *testing.T) {
	m := newTestModel(t, 1)
	_ = m.View()

	add := m.bar.buttons[0]
	require.Equal(t, actionAdd, add.action)
	require.Greater(t, add.x1, add.x0)

	m = update(t, m, tea.MouseMsg{X: add.x0, Y: m.controlRow(), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 2, m.sim.Len())
	assert.Equal(t, actionAdd, m.bar.hot)

	m = update(t, m, tea.MouseMsg{X: add.x0, Y: m.controlRow(), Action: tea.MouseActionRelease})
	assert.Equal(t, actionNone, m.bar.hot)
}

func TestControlBarHoverModes(t *testing.T) {
	m := newTestModel(t, 0)
	_ = m.View()

	btn := m.bar.buttons[1].x0
	m = update(t, m, tea.MouseMsg{X: btn, Y: m.controlRow(), Action: tea.MouseActionMotion})
	assert.Equal(t, cursor.Pointer, m.sim.Cursor().Mode)
	want := m.raster.cellToWorld(btn, m.controlRow()-headerRows)
	assert.Equal(t, want, m.sim.Cursor().Target, "the follower tracks the pointer over the bar")

	m = update(t, m, tea.MouseMsg{X: m.bar.fieldAt + 1, Y: m.controlRow(), Action: tea.MouseActionMotion})
	assert.Equal(t, cursor.Text, m.sim.Cursor().Mode)
	assert.Equal(t, m.raster.cellToWorld(m.bar.fieldAt+1, m.controlRow()-headerRows), m.sim.Cursor().Target)
}

func TestSeedField(t *testing.T) {
	m := newTestModel(t, 3)
	m = update(t, m, runes("s"))
	require.True(t, m.seed.Focused())
	assert.Equal(t, cursor.Text, m.sim.Cursor().Mode)

	// keys go to the field while it has focus
	m = update(t, m, runes("4"))
	m = update(t, m, runes("2"))
	m = update(t, m, runes("+"))
	assert.Equal(t, 3, m.sim.Len())

	m.seed.SetValue("42")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.seed.Focused())
	assert.Equal(t, "seed 42", m.status)
	assert.Equal(t, 3, m.sim.Len())
	assert.Equal(t, cursor.Default, m.sim.Cursor().Mode)
}

func TestSeedFieldRejectsGarbage(t *testing.T) {
	m := newTestModel(t, 2)
	m = update(t, m, runes("s"))
	m.seed.SetValue("abc")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.status, "bad seed")
}

func TestQuitClosesSimulation(t *testing.T) {
	m := newTestModel(t, 2)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, next.(model).sim.Closed())
	assert.Empty(t, next.(model).View())

	_, cmd = next.Update(tickMsg{})
	assert.Nil(t, cmd, "a closed playground stops scheduling ticks")
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t, 0)
	cfg := config.DefaultConfig()
	cfg.Cursor.Level = 2
	cfg.Physics.Damping = 0.9

	m = update(t, m, ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, 2, m.sim.Cursor().Level)
	assert.Equal(t, 0.9, m.sim.Tuning().Damping)
	assert.Equal(t, "config reloaded", m.status)

	m = update(t, m, ConfigReloadedMsg{Err: assert.AnError})
	assert.Contains(t, m.status, "config:")
}

func TestViewDrawsParticles(t *testing.T) {
	m := newTestModel(t, 5)
	out := m.View()
	assert.Contains(t, out, "driftbox")
	assert.Contains(t, out, "shapes")

	lit := 0
	for _, row := range m.canvas.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
}
