package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/driftbox/internal/config"
	"github.com/san-kum/driftbox/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a scripted playground session: a starting configuration and a
// list of timed inputs replayed against a headless simulation.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset"`
	Seed        int64  `yaml:"seed"`
	Count       int    `yaml:"count"`
	Ticks       int    `yaml:"ticks"`
	Steps       []Step `yaml:"steps"`
}

// Step is one input applied before tick At runs.
type Step struct {
	At      uint64  `yaml:"at"`
	Action  Action  `yaml:"action"`
	Pointer int     `yaml:"pointer"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	// Target grabs a particle by index instead of by coordinates. Indices
	// count from the oldest live particle.
	Target *int  `yaml:"target"`
	Seed   int64 `yaml:"seed"`
	Level  int   `yaml:"level"`
	Repeat int   `yaml:"repeat"`
}

type Action string

const (
	ActionPress   Action = "press"
	ActionMove    Action = "move"
	ActionRelease Action = "release"
	ActionCancel  Action = "cancel"
	ActionLeave   Action = "leave"
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
	ActionReseed  Action = "reseed"
	ActionLevel   Action = "level"
	ActionResize  Action = "resize"
)

var actions = map[Action]bool{
	ActionPress: true, ActionMove: true, ActionRelease: true, ActionCancel: true, ActionLeave: true,
	ActionAdd: true, ActionRemove: true, ActionReseed: true, ActionLevel: true, ActionResize: true,
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (sc *Scenario) Validate() error {
	if sc.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScenario, sc.Ticks)
	}
	for i, st := range sc.Steps {
		if !actions[st.Action] {
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, i+1, st.Action)
		}
		if st.At == 0 || st.At > uint64(sc.Ticks) {
			return fmt.Errorf("%w: step %d: tick %d outside 1..%d", ErrInvalidScenario, i+1, st.At, sc.Ticks)
		}
	}
	return nil
}

// Config resolves the scenario's starting configuration over base.
func (sc *Scenario) Config(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if sc.Preset != "" {
		cfg = config.GetPreset(sc.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidScenario, sc.Preset)
		}
	}
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	if sc.Count > 0 {
		cfg.Particles.Count = sc.Count
	}
	return cfg, cfg.Validate()
}

// Player is a sim.Driver that applies scenario steps as their ticks come up.
type Player struct {
	steps []Step
	next  int
}

func NewPlayer(sc *Scenario) *Player {
	steps := append([]Step(nil), sc.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })
	return &Player{steps: steps}
}

func (p *Player) BeforeTick(s *sim.Simulation, tick uint64) error {
	for p.next < len(p.steps) && p.steps[p.next].At <= tick {
		if err := apply(s, p.steps[p.next]); err != nil {
			return fmt.Errorf("step %d at tick %d: %w", p.next+1, tick, err)
		}
		p.next++
	}
	return nil
}

// Done reports whether every step has been applied.
func (p *Player) Done() bool { return p.next == len(p.steps) }

func apply(s *sim.Simulation, st Step) error {
	x, y := st.X, st.Y
	if st.Target != nil {
		ps := s.Particles()
		if *st.Target < 0 || *st.Target >= len(ps) {
			return fmt.Errorf("target %d out of range (%d particles)", *st.Target, len(ps))
		}
		c := ps[*st.Target].Center()
		x, y = c.X, c.Y
	}

	repeat := max(st.Repeat, 1)
	switch st.Action {
	case ActionPress:
		s.PointerDown(st.Pointer, x, y)
	case ActionMove:
		s.PointerMove(st.Pointer, x, y)
	case ActionRelease:
		s.PointerUp(st.Pointer, x, y)
	case ActionCancel:
		s.PointerCancel(st.Pointer)
	case ActionLeave:
		s.PointerLeave()
	case ActionAdd:
		for i := 0; i < repeat; i++ {
			s.AddParticle()
		}
	case ActionRemove:
		for i := 0; i < repeat; i++ {
			s.RemoveParticle()
		}
	case ActionReseed:
		return s.Reseed(st.Seed)
	case ActionLevel:
		s.SetCursorSpeedLevel(st.Level)
	case ActionResize:
		return s.Resize(x, y)
	}
	return nil
}

// RunScenario builds a simulation for the scenario and plays it to the end.
func RunScenario(ctx context.Context, sc *Scenario, base *config.Config, opts ...sim.Option) (*sim.Result, error) {
	cfg, err := sc.Config(base)
	if err != nil {
		return nil, err
	}
	player := NewPlayer(sc)
	s, err := sim.New(cfg.SimOptions(), append(opts, sim.WithDriver(player))...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Run(ctx, sc.Ticks)
}
