package particle

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
)

// ErrInvalidBounds is returned when a viewport has a negative dimension.
var ErrInvalidBounds = errors.New("particle: bounds must be non-negative")

const (
	DefaultMinSize      = 50.0
	DefaultMaxSize      = 130.0
	DefaultInitialSpeed = 0.5
	DefaultSpinSpeed    = 0.25
	DefaultPaletteSize  = 4

	placementAttempts = 8
	overlapFactor     = 0.45
)

type Option func(*Store)

// WithSizeRange sets the uniform range new particle sizes are drawn from.
func WithSizeRange(lo, hi float64) Option {
	return func(s *Store) {
		if lo > hi {
			lo, hi = hi, lo
		}
		s.minSize, s.maxSize = lo, hi
	}
}

// WithInitialSpeed sets the half-width of the symmetric per-axis velocity range.
func WithInitialSpeed(v float64) Option {
	return func(s *Store) { s.speed = v }
}

func WithPaletteSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.palette = n
		}
	}
}

// Store holds the live particles in insertion order. It has no locking: the
// simulation context is its only user and runs on a single goroutine.
type Store struct {
	items  []*Particle
	nextID ID
	rng    *rand.Rand

	minSize float64
	maxSize float64
	speed   float64
	palette int
}

func NewStore(rng *rand.Rand, opts ...Option) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &Store{
		items:   make([]*Particle, 0, 32),
		nextID:  1,
		rng:     rng,
		minSize: DefaultMinSize,
		maxSize: DefaultMaxSize,
		speed:   DefaultInitialSpeed,
		palette: DefaultPaletteSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create replaces the contents with count freshly seeded particles. A
// non-positive count leaves the store empty. Ids keep increasing across calls.
func (s *Store) Create(count int, b Bounds) ([]*Particle, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("create %d particles in %vx%v: %w", count, b.Width, b.Height, ErrInvalidBounds)
	}
	s.items = s.items[:0]
	for i := 0; i < count; i++ {
		s.items = append(s.items, s.spawn(b))
	}
	return s.All(), nil
}

// Add appends one particle with a fresh id.
func (s *Store) Add(b Bounds) (*Particle, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("add particle in %vx%v: %w", b.Width, b.Height, ErrInvalidBounds)
	}
	p := s.spawn(b)
	s.items = append(s.items, p)
	return p, nil
}

// RemoveLast pops the most recently added particle. It returns false on an empty store.
func (s *Store) RemoveLast() (*Particle, bool) {
	n := len(s.items)
	if n == 0 {
		return nil, false
	}
	p := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return p, true
}

func (s *Store) Get(id ID) (*Particle, bool) {
	if id == 0 {
		return nil, false
	}
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// All returns the live slice. Callers may mutate particles but not the slice itself.
func (s *Store) All() []*Particle { return s.items }

func (s *Store) Len() int { return len(s.items) }

// SetRand swaps the random source used for new particles. Ids are unaffected.
func (s *Store) SetRand(rng *rand.Rand) {
	if rng != nil {
		s.rng = rng
	}
}

// HitTest returns the topmost particle under pt: the dragged one first, then
// the most recently added.
func (s *Store) HitTest(pt cp.Vector) *Particle {
	for _, p := range s.items {
		if p.Dragging && p.Contains(pt) {
			return p
		}
	}
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Contains(pt) {
			return s.items[i]
		}
	}
	return nil
}

func (s *Store) spawn(b Bounds) *Particle {
	size := s.minSize + s.rng.Float64()*(s.maxSize-s.minSize)

	spanX, spanY := math.Max(0, b.Width-size), math.Max(0, b.Height-size)

	var pos cp.Vector
	for attempt := 0; attempt < placementAttempts; attempt++ {
		pos = cp.Vector{
			X: s.rng.Float64() * spanX,
			Y: s.rng.Float64() * spanY,
		}
		if !s.overlapsAny(pos, size) {
			break
		}
	}

	p := New(s.nextID, pos, size, Shapes[s.rng.Intn(len(Shapes))], s.rng.Intn(s.palette))
	s.nextID++

	p.Vel = cp.Vector{
		X: (s.rng.Float64()*2 - 1) * s.speed,
		Y: (s.rng.Float64()*2 - 1) * s.speed,
	}
	p.Rotation = s.rng.Float64() * 360
	p.RotationSpeed = (s.rng.Float64()*2 - 1) * DefaultSpinSpeed
	return p
}

func (s *Store) overlapsAny(pos cp.Vector, size float64) bool {
	c := cp.Vector{X: pos.X + size/2, Y: pos.Y + size/2}
	for _, other := range s.items {
		limit := overlapFactor * (size + other.size)
		if c.DistanceSq(other.Center()) < limit*limit {
			return true
		}
	}
	return false
}
