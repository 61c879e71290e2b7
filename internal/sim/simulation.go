package sim

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/input"
	"github.com/san-kum/driftbox/internal/particle"
	"github.com/san-kum/driftbox/internal/physics"
	"github.com/san-kum/driftbox/internal/render"
	"go.uber.org/zap"
)

// Simulation owns every piece of mutable playground state. Input handlers and
// the frame loop both call into it from one goroutine; it does no locking.
type Simulation struct {
	opts   Options
	bounds particle.Bounds

	store      *particle.Store
	tracker    *input.Tracker
	resolver   *physics.Resolver
	integrator *physics.Integrator
	follower   *cursor.Follower
	bridge     *render.Bridge
	palette    render.Palette

	log       *zap.Logger
	metrics   []Metric
	observers []Observer
	drivers   []Driver

	tick   uint64
	last   physics.Stats
	frame  *render.Frame
	closed bool
}

func New(opts Options, extra ...Option) (*Simulation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		opts:    opts,
		bounds:  opts.Bounds,
		palette: render.DefaultPalette(),
		log:     zap.NewNop(),
	}
	for _, o := range extra {
		o(s)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	s.store = particle.NewStore(rng,
		particle.WithSizeRange(opts.MinSize, opts.MaxSize),
		particle.WithInitialSpeed(opts.InitialSpeed),
		particle.WithPaletteSize(len(s.palette)),
	)
	s.tracker = input.NewTracker(opts.GrabScale, opts.ThrowCap)
	s.resolver = physics.NewResolver(opts.Tuning)
	s.integrator = physics.NewIntegrator(opts.Tuning, rng)
	s.follower = cursor.New(opts.CursorLevel, opts.FPS)
	s.bridge = render.NewBridge(s.palette)

	if _, err := s.store.Create(opts.Count, s.bounds); err != nil {
		return nil, err
	}
	s.compose()

	s.log.Debug("simulation created",
		zap.Int("particles", s.store.Len()),
		zap.Int64("seed", opts.Seed),
		zap.Float64("width", s.bounds.Width),
		zap.Float64("height", s.bounds.Height),
	)
	return s, nil
}

// Tick advances one frame: drag validation, collisions, integration, cursor
// smoothing, then frame composition. It returns nil once the simulation is
// closed. The frame is reused by the next call.
func (s *Simulation) Tick() *render.Frame {
	if s.closed {
		return nil
	}

	s.tracker.Sync(s.store)
	ps := s.store.All()

	contacts := s.resolver.Resolve(ps)
	st := s.integrator.Step(ps, s.bounds)
	st.Contacts = contacts
	s.last = st

	s.follower.Tick()
	s.tick++
	s.compose()

	if len(s.metrics) > 0 || len(s.observers) > 0 {
		smp := s.sample()
		for _, m := range s.metrics {
			m.Observe(smp)
		}
		for _, o := range s.observers {
			o.OnTick(smp)
		}
	}
	return s.frame
}

func (s *Simulation) compose() {
	s.frame = s.bridge.Compose(s.tick, s.store.All(), s.follower.Snapshot(), s.bounds)
}

func (s *Simulation) sample() Sample {
	_, dragging := s.tracker.Active()
	return Sample{
		Tick:      s.tick,
		Particles: s.store.All(),
		Bounds:    s.bounds,
		Contacts:  s.last.Contacts,
		WallHits:  s.last.WallHits,
		Dragging:  dragging,
	}
}

// Frame returns the most recently composed frame without advancing.
func (s *Simulation) Frame() *render.Frame { return s.frame }

func (s *Simulation) TickCount() uint64               { return s.tick }
func (s *Simulation) Len() int                        { return s.store.Len() }
func (s *Simulation) Bounds() particle.Bounds         { return s.bounds }
func (s *Simulation) Particles() []*particle.Particle { return s.store.All() }
func (s *Simulation) Cursor() cursor.State            { return s.follower.Snapshot() }
func (s *Simulation) Tuning() physics.Tuning          { return s.opts.Tuning }
func (s *Simulation) Palette() render.Palette         { return s.palette }
func (s *Simulation) LastStats() physics.Stats        { return s.last }
func (s *Simulation) Closed() bool                    { return s.closed }

// Dragging returns the particle currently held, if any.
func (s *Simulation) Dragging() (*particle.Particle, bool) {
	id, ok := s.tracker.Active()
	if !ok {
		return nil, false
	}
	return s.store.Get(id)
}

// PointerDown samples the cursor, picks its mode from what lies under the
// pointer and starts a drag on the topmost particle there. It reports whether
// a drag began.
func (s *Simulation) PointerDown(pointerID int, x, y float64) bool {
	if s.closed {
		return false
	}
	pt := cp.Vector{X: x, Y: y}
	s.follower.Sample(pt)
	s.follower.Press(true)

	hit := s.store.HitTest(pt)
	if hit != nil || s.tracker.Captured() {
		s.follower.SetMode(cursor.Pointer)
	} else {
		s.follower.SetMode(cursor.Default)
	}
	if !s.tracker.PressStart(pointerID, pt, hit) {
		return false
	}
	s.log.Debug("drag start", zap.Uint64("id", uint64(hit.ID)), zap.Int("pointer", pointerID))
	return true
}

// PointerMove samples the cursor, moves any held particle and refreshes the
// cursor mode from what lies under the pointer.
func (s *Simulation) PointerMove(pointerID int, x, y float64) {
	if s.closed {
		return
	}
	pt := cp.Vector{X: x, Y: y}
	s.follower.Sample(pt)
	s.tracker.Move(s.store, pointerID, pt)

	if s.tracker.Captured() || s.store.HitTest(pt) != nil {
		s.follower.SetMode(cursor.Pointer)
	} else {
		s.follower.SetMode(cursor.Default)
	}
}

// PointerUp ends the drag and throws the particle with its last sampled
// velocity.
func (s *Simulation) PointerUp(pointerID int, x, y float64) {
	if s.closed {
		return
	}
	s.follower.Sample(cp.Vector{X: x, Y: y})
	s.follower.Press(false)

	if id, ok := s.tracker.Active(); ok {
		s.tracker.Release(s.store, pointerID)
		if _, still := s.tracker.Active(); !still {
			s.log.Debug("drag release", zap.Uint64("id", uint64(id)))
		}
	}
}

func (s *Simulation) PointerCancel(pointerID int) {
	if s.closed {
		return
	}
	s.follower.Press(false)
	s.tracker.Cancel(s.store, pointerID)
}

// PointerLeave hides the cursor when the pointer exits the view. A drag in
// progress stays captured.
func (s *Simulation) PointerLeave() {
	if s.closed || s.tracker.Captured() {
		return
	}
	s.follower.Hide()
}

// PointerHover samples the cursor over front-end chrome outside the
// playground and shows it in mode m. Drags are left untouched.
func (s *Simulation) PointerHover(x, y float64, m cursor.Mode) {
	if s.closed {
		return
	}
	s.follower.Sample(cp.Vector{X: x, Y: y})
	s.follower.SetMode(m)
}

// Hover overrides the cursor mode for front-end chrome such as buttons and
// text fields.
func (s *Simulation) Hover(m cursor.Mode) {
	if s.closed {
		return
	}
	s.follower.SetMode(m)
}

func (s *Simulation) AddParticle() int {
	if s.closed {
		return s.store.Len()
	}
	p, err := s.store.Add(s.bounds)
	if err != nil {
		s.log.Warn("add particle", zap.Error(err))
		return s.store.Len()
	}
	s.log.Debug("particle added", zap.Uint64("id", uint64(p.ID)), zap.Int("particles", s.store.Len()))
	s.compose()
	return s.store.Len()
}

// RemoveParticle drops the most recently added particle. It is a no-op on an
// empty playground.
func (s *Simulation) RemoveParticle() int {
	if s.closed {
		return s.store.Len()
	}
	p, ok := s.store.RemoveLast()
	if !ok {
		return 0
	}
	s.tracker.Sync(s.store)
	s.log.Debug("particle removed", zap.Uint64("id", uint64(p.ID)), zap.Int("particles", s.store.Len()))
	s.compose()
	return s.store.Len()
}

func (s *Simulation) SetCursorSpeedLevel(level int) int {
	return s.follower.SetLevel(level)
}

func (s *Simulation) CursorFaster() int { return s.follower.Faster() }
func (s *Simulation) CursorSlower() int { return s.follower.Slower() }

// Resize changes the viewport. Particles outside the new bounds are brought
// back by the walls on the following ticks.
func (s *Simulation) Resize(w, h float64) error {
	b := particle.Bounds{Width: w, Height: h}
	if !b.Valid() {
		return particle.ErrInvalidBounds
	}
	s.bounds = b
	s.opts.Bounds = b
	s.compose()
	return nil
}

// Reseed replaces the playground with the same number of fresh particles drawn
// from a new seed. Ids keep increasing.
func (s *Simulation) Reseed(seed int64) error {
	if s.closed {
		return ErrClosed
	}
	n := s.store.Len()
	rng := rand.New(rand.NewSource(seed))
	s.store.SetRand(rng)
	s.integrator.SetRand(rng)

	s.tracker.Drop(s.store)
	if _, err := s.store.Create(n, s.bounds); err != nil {
		return err
	}
	s.opts.Seed = seed
	s.log.Info("reseeded", zap.Int64("seed", seed), zap.Int("particles", n))
	s.compose()
	return nil
}

func (s *Simulation) SetTuning(t physics.Tuning) {
	s.opts.Tuning = t
	s.resolver.SetTuning(t)
	s.integrator.SetTuning(t)
}

// SetLimits updates the grab scale and throw cap of future drags.
func (s *Simulation) SetLimits(grabScale, throwCap float64) {
	s.opts.GrabScale, s.opts.ThrowCap = grabScale, throwCap
	s.tracker.SetLimits(grabScale, throwCap)
}

// Close tears the playground down: any drag is released and every later tick
// or input call is a no-op.
func (s *Simulation) Close() {
	if s.closed {
		return
	}
	s.tracker.Drop(s.store)
	s.follower.Press(false)
	s.closed = true
	s.log.Debug("simulation closed", zap.Uint64("ticks", s.tick))
}
