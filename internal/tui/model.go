package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/driftbox/internal/config"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/physics"
	"github.com/san-kum/driftbox/internal/sim"
	"github.com/san-kum/driftbox/internal/viz"
	"go.uber.org/zap"
)

const (
	headerRows  = 1
	footerRows  = 2
	historySize = 240
	pointerID   = 0
)

type tickMsg time.Time

// ConfigReloadedMsg carries a re-read config file, or the error reading it.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

type Options struct {
	FPS        int
	CellWidth  float64
	CellHeight float64
	Title      string
	Logger     *zap.Logger
}

type model struct {
	sim    *sim.Simulation
	opts   Options
	log    *zap.Logger
	keys   keyMap
	help   help.Model
	seed   textinput.Model
	bar    *controlBar
	raster *raster
	canvas *viz.Canvas

	paused    bool
	showGraph bool
	dragging  bool
	status    string

	energy    []float64
	lastFrame time.Time
	fps       float64

	width  int
	height int
}

func newModel(s *sim.Simulation, opts Options) model {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = config.DefaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = config.DefaultCellHeight
	}
	if opts.Title == "" {
		opts.Title = "driftbox"
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "seed"
	ti.CharLimit = 19
	ti.Width = 12
	ti.Prompt = ""

	return model{
		sim:    s,
		opts:   opts,
		log:    log,
		keys:   defaultKeys(),
		help:   help.New(),
		seed:   ti,
		bar:    newControlBar(),
		raster: &raster{cellW: opts.CellWidth, cellH: opts.CellHeight},
		canvas: viz.NewCanvas(0, 0),
		energy: make([]float64, 0, historySize),
		width:  80,
		height: 24,
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return m.tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, nil
	case tickMsg:
		if m.sim.Closed() {
			return m, nil
		}
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1 / dt
			}
		}
		m.lastFrame = now
		if !m.paused {
			m.sim.Tick()
			m.record(physics.KineticEnergy(m.sim.Particles()))
		}
		return m, m.tick()
	}

	if m.seed.Focused() {
		var cmd tea.Cmd
		m.seed, cmd = m.seed.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) resize() {
	cols := m.width
	rows := m.height - headerRows - footerRows
	if m.showGraph {
		rows -= graphRows
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	m.canvas = viz.NewCanvas(cols, rows)
	if err := m.sim.Resize(float64(cols)*m.raster.cellW, float64(rows)*m.raster.cellH); err != nil {
		m.status = err.Error()
	}
}

func (m *model) record(e float64) {
	if len(m.energy) == historySize {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:historySize-1]
	}
	m.energy = append(m.energy, e)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.seed.Focused() {
		switch msg.String() {
		case "enter":
			m.applySeed()
			m.seed.Blur()
			m.sim.Hover(cursor.Default)
			return m, nil
		case "esc":
			m.seed.Blur()
			m.sim.Hover(cursor.Default)
			return m, nil
		case "ctrl+c":
			m.sim.Close()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.seed, cmd = m.seed.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sim.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.trigger(actionAdd)
	case key.Matches(msg, m.keys.Remove):
		m.trigger(actionRemove)
	case key.Matches(msg, m.keys.Faster):
		m.trigger(actionFaster)
	case key.Matches(msg, m.keys.Slower):
		m.trigger(actionSlower)
	case key.Matches(msg, m.keys.Seed):
		return m, m.trigger(actionSeed)
	case key.Matches(msg, m.keys.Reseed):
		seed := time.Now().UnixNano()
		if err := m.sim.Reseed(seed); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("seed %d", seed)
		}
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Graph):
		m.showGraph = !m.showGraph
		m.resize()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// trigger runs a control bar action, from a click or its key.
func (m *model) trigger(a action) tea.Cmd {
	switch a {
	case actionAdd:
		m.sim.AddParticle()
	case actionRemove:
		m.sim.RemoveParticle()
	case actionFaster:
		m.sim.CursorFaster()
	case actionSlower:
		m.sim.CursorSlower()
	case actionSeed:
		m.sim.Hover(cursor.Text)
		return m.seed.Focus()
	}
	return nil
}

func (m *model) applySeed() {
	raw := strings.TrimSpace(m.seed.Value())
	if raw == "" {
		return
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.status = fmt.Sprintf("bad seed %q", raw)
		return
	}
	if err := m.sim.Reseed(seed); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("seed %d", seed)
}

func (m model) controlRow() int { return m.height - footerRows }

// handleMouse routes the terminal mouse into the simulation. Cells map to the
// world point at their middle; rows outside the playground still reach a
// captured drag.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	row := msg.Y - headerRows
	inField := row >= 0 && row < m.canvas.Height
	pt := m.raster.cellToWorld(msg.X, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == m.controlRow() {
			a := m.bar.hit(msg.X)
			m.bar.hot = a
			return m, m.trigger(a)
		}
		if m.seed.Focused() {
			m.seed.Blur()
		}
		if inField {
			m.dragging = m.sim.PointerDown(pointerID, pt.X, pt.Y)
		}
	case tea.MouseActionRelease:
		m.bar.hot = actionNone
		m.sim.PointerUp(pointerID, pt.X, pt.Y)
		m.dragging = false
	case tea.MouseActionMotion:
		switch {
		case inField || m.dragging:
			m.sim.PointerMove(pointerID, pt.X, pt.Y)
		case msg.Y == m.controlRow():
			m.sim.PointerHover(pt.X, pt.Y, modeFor(m.bar.hit(msg.X)))
		default:
			m.sim.PointerLeave()
		}
	}
	return m, nil
}

func (m *model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.status = "config: " + msg.Err.Error()
		m.log.Warn("config reload failed", zap.Error(msg.Err))
		return
	}
	cfg := msg.Config
	m.sim.SetTuning(cfg.Tuning())
	m.sim.SetLimits(cfg.Input.GrabScale, cfg.Input.ThrowCap)
	m.sim.SetCursorSpeedLevel(cfg.Cursor.Level)
	if cfg.TUI.CellWidth != m.raster.cellW || cfg.TUI.CellHeight != m.raster.cellH {
		m.raster.cellW, m.raster.cellH = cfg.TUI.CellWidth, cfg.TUI.CellHeight
		m.resize()
	}
	m.status = "config reloaded"
	m.log.Info("config reloaded", zap.Float64("damping", cfg.Physics.Damping), zap.Int("level", cfg.Cursor.Level))
}

func (m model) View() string {
	if m.sim.Closed() {
		return ""
	}
	m.raster.draw(m.canvas, m.sim.Frame())

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	b.WriteString(m.canvas.Render())
	b.WriteByte('\n')
	if m.showGraph {
		b.WriteString(m.graph())
		b.WriteByte('\n')
	}
	cur := m.sim.Cursor()
	b.WriteString(m.bar.layout(m.sim.Len(), cur.Level, m.seed.View()))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) header() string {
	st := m.sim.LastStats()
	left := viz.Title.Render(m.opts.Title)
	if m.paused {
		left += " " + viz.KeyHint.Render("paused")
	}
	stats := fmt.Sprintf("%s %s  %s %s  %s %.0f",
		viz.MetricLabel.Render("contacts"), viz.MetricValue.Render(strconv.Itoa(st.Contacts)),
		viz.MetricLabel.Render("walls"), viz.MetricValue.Render(strconv.Itoa(st.WallHits)),
		viz.MetricLabel.Render("fps"), m.fps,
	)
	if m.status != "" {
		stats = viz.KeyHint.Render(m.status) + "  " + stats
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(stats)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + stats
}

const graphRows = 6

func (m model) graph() string {
	w := m.width - 12
	if w < 10 {
		w = 10
	}
	return viz.Plot(m.energy, w, graphRows-2, "kinetic energy")
}
