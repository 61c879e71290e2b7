package gui

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/config"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/sim"
	"go.uber.org/zap"
)

const (
	mousePointer = 0
	seedLimit    = 19
)

// Options configures the window.
type Options struct {
	Width, Height int
	FPS           int
	Title         string
	ConfigPath    string
	Logger        *zap.Logger
}

// App is the ebiten game wrapping one simulation.
type App struct {
	sim  *sim.Simulation
	opts Options
	log  *zap.Logger

	ctrl  *controls
	mesh  mesh
	poly  []cp.Vector
	watch *config.Watcher

	width, height int
	top           int

	mouseDown bool
	hot       action
	touches   map[ebiten.TouchID]int

	seedFocus bool
	seedText  []rune

	paused bool
	status string
	shown  time.Time
}

func NewApp(s *sim.Simulation, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.Title == "" {
		opts.Title = "driftbox"
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := s.Bounds()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = int(b.Width), int(b.Height)+barHeight
	}
	return &App{
		sim:     s,
		opts:    opts,
		log:     log,
		ctrl:    newControls(),
		touches: make(map[ebiten.TouchID]int),
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulation, opts Options) error {
	a := NewApp(s, opts)
	if a.opts.ConfigPath != "" {
		w, err := config.NewWatcher(a.opts.ConfigPath)
		if err != nil {
			a.log.Warn("config watch disabled", zap.String("path", a.opts.ConfigPath), zap.Error(err))
		} else {
			a.watch = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(a.opts.Width, a.opts.Height)
	ebiten.SetWindowTitle(a.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.opts.FPS)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	err := ebiten.RunGame(a)
	s.Close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.top = a.ctrl.layout(a.width, a.height)
		if err := a.sim.Resize(float64(a.width), float64(a.top)); err != nil {
			a.log.Warn("resize", zap.Error(err))
		}
	}
	return outsideWidth, outsideHeight
}

func (a *App) Update() error {
	if a.sim.Closed() {
		return ebiten.Termination
	}
	a.reload()

	if err := a.updateKeys(); err != nil {
		return err
	}
	a.updateMouse()
	a.updateTouches()

	if !a.paused {
		a.sim.Tick()
	}
	return nil
}

func (a *App) reload() {
	if a.watch == nil {
		return
	}
	select {
	case path, ok := <-a.watch.Events:
		if !ok {
			a.watch = nil
			return
		}
		cfg, err := config.Load(path)
		if err != nil {
			a.setStatus("config: " + err.Error())
			a.log.Warn("config reload failed", zap.Error(err))
			return
		}
		a.sim.SetTuning(cfg.Tuning())
		a.sim.SetLimits(cfg.Input.GrabScale, cfg.Input.ThrowCap)
		a.sim.SetCursorSpeedLevel(cfg.Cursor.Level)
		a.setStatus("config reloaded")
		a.log.Info("config reloaded", zap.String("path", path))
	case err, ok := <-a.watch.Errors:
		if ok {
			a.log.Warn("config watch", zap.Error(err))
		}
	default:
	}
}

func (a *App) updateKeys() error {
	if a.seedFocus {
		a.seedText = ebiten.AppendInputChars(a.seedText)
		if len(a.seedText) > seedLimit {
			a.seedText = a.seedText[:seedLimit]
		}
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(a.seedText) > 0:
			a.seedText = a.seedText[:len(a.seedText)-1]
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			a.applySeed()
			a.blurSeed()
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			a.blurSeed()
		}
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		a.sim.Close()
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		a.trigger(actionAdd)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		a.trigger(actionRemove)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		a.trigger(actionFaster)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		a.trigger(actionSlower)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.trigger(actionReseed)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.trigger(actionSeed)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.paused = !a.paused
	}
	return nil
}

func (a *App) updateMouse() {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	inside := x >= 0 && y >= 0 && x < a.width && y < a.height
	inField := inside && y < a.top

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if act := a.ctrl.hit(x, y); act != actionNone {
			a.hot = act
			a.trigger(act)
			return
		}
		if a.seedFocus {
			a.blurSeed()
		}
		if inField {
			a.mouseDown = true
			a.sim.PointerDown(mousePointer, fx, fy)
		}
		return
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.hot = actionNone
		if a.mouseDown {
			a.mouseDown = false
			a.sim.PointerUp(mousePointer, fx, fy)
		}
		return
	}

	switch {
	case !inside && !a.mouseDown:
		a.sim.PointerLeave()
	case inField || a.mouseDown:
		a.sim.PointerMove(mousePointer, fx, fy)
	default:
		a.sim.PointerHover(fx, fy, modeFor(a.ctrl.hit(x, y)))
	}
}

// updateTouches feeds every finger as its own pointer. The tracker only lets
// the first one drag.
func (a *App) updateTouches() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		pid := int(id) + 1
		a.touches[id] = pid
		if y < a.top {
			a.sim.PointerDown(pid, float64(x), float64(y))
		} else if act := a.ctrl.hit(x, y); act != actionNone {
			a.trigger(act)
		}
	}
	for id, pid := range a.touches {
		if inpututil.IsTouchJustReleased(id) {
			x, y := inpututil.TouchPositionInPreviousTick(id)
			a.sim.PointerUp(pid, float64(x), float64(y))
			delete(a.touches, id)
			continue
		}
		x, y := ebiten.TouchPosition(id)
		a.sim.PointerMove(pid, float64(x), float64(y))
	}
}

func (a *App) trigger(act action) {
	switch act {
	case actionAdd:
		a.sim.AddParticle()
	case actionRemove:
		a.sim.RemoveParticle()
	case actionFaster:
		a.sim.CursorFaster()
	case actionSlower:
		a.sim.CursorSlower()
	case actionReseed:
		seed := time.Now().UnixNano()
		if err := a.sim.Reseed(seed); err != nil {
			a.setStatus(err.Error())
			return
		}
		a.setStatus(fmt.Sprintf("seed %d", seed))
	case actionSeed:
		a.seedFocus = true
		a.sim.Hover(cursor.Text)
	}
}

func (a *App) applySeed() {
	raw := strings.TrimSpace(string(a.seedText))
	if raw == "" {
		return
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.setStatus(fmt.Sprintf("bad seed %q", raw))
		return
	}
	if err := a.sim.Reseed(seed); err != nil {
		a.setStatus(err.Error())
		return
	}
	a.setStatus(fmt.Sprintf("seed %d", seed))
}

func (a *App) blurSeed() {
	a.seedFocus = false
	a.sim.Hover(cursor.Default)
}

func (a *App) setStatus(s string) {
	a.status = s
	a.shown = time.Now()
}

var (
	colBg      = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	colBar     = color.RGBA{R: 18, G: 24, B: 24, A: 255}
	colButton  = color.RGBA{R: 30, G: 48, B: 48, A: 255}
	colHot     = color.RGBA{R: 20, G: 184, B: 166, A: 255}
	colDanger  = color.RGBA{R: 190, G: 60, B: 60, A: 255}
	colField   = color.RGBA{R: 12, G: 16, B: 16, A: 255}
	colOutline = color.RGBA{R: 94, G: 234, B: 212, A: 255}
	colCursor  = color.RGBA{R: 204, G: 251, B: 241, A: 255}
)
