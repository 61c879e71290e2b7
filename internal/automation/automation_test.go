package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/driftbox/internal/config"
	"github.com/san-kum/driftbox/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const script = `
name: grab and toss
ticks: 40
seed: 9
count: 5
steps:
  - {at: 5, action: press, target: 4}
  - {at: 6, action: move, target: 4}
  - {at: 20, action: release, target: 4}
  - {at: 25, action: add, repeat: 3}
  - {at: 30, action: remove}
  - {at: 35, action: level, level: 9}
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScript(t, script))
	require.NoError(t, err)
	assert.Equal(t, "grab and toss", sc.Name)
	assert.Equal(t, 40, sc.Ticks)
	require.Len(t, sc.Steps, 6)
	require.NotNil(t, sc.Steps[0].Target)
	assert.Equal(t, 4, *sc.Steps[0].Target)
	assert.Equal(t, ActionAdd, sc.Steps[3].Action)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
	}{
		{"no ticks", Scenario{}},
		{"unknown action", Scenario{Ticks: 10, Steps: []Step{{At: 1, Action: "jump"}}}},
		{"tick zero", Scenario{Ticks: 10, Steps: []Step{{At: 0, Action: ActionAdd}}}},
		{"past the end", Scenario{Ticks: 10, Steps: []Step{{At: 11, Action: ActionAdd}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.sc.Validate(), ErrInvalidScenario)
		})
	}
}

func TestScenarioConfig(t *testing.T) {
	sc := &Scenario{Preset: "crowded", Seed: 3, Ticks: 1}
	cfg, err := sc.Config(config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, config.GetPreset("crowded").Particles.Count, cfg.Particles.Count)
	assert.Equal(t, int64(3), cfg.Seed)

	_, err = (&Scenario{Preset: "nope", Ticks: 1}).Config(config.DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScript(t, script))
	require.NoError(t, err)

	res, err := RunScenario(context.Background(), sc, config.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 40, res.Ticks)

	for _, p := range res.Series {
		held := p.Tick >= 5 && p.Tick < 20
		assert.Equal(t, held, p.Dragging, "tick %d", p.Tick)
	}
	assert.Equal(t, 5, res.Series[23].Particles)
	assert.Equal(t, 8, res.Series[24].Particles, "adds land before tick 25")
	assert.Equal(t, 7, res.Series[39].Particles)
	assert.Empty(t, res.Errors)
}

func TestPlayerStopsOnFailingStep(t *testing.T) {
	target := 99
	sc := &Scenario{Ticks: 10, Count: 2, Steps: []Step{{At: 3, Action: ActionPress, Target: &target}}}
	res, err := RunScenario(context.Background(), sc, config.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.Equal(t, 2, res.Ticks)
}

func TestPlayerOrdersSteps(t *testing.T) {
	sc := &Scenario{Ticks: 10, Steps: []Step{
		{At: 4, Action: ActionRemove},
		{At: 2, Action: ActionAdd, Repeat: 2},
	}}
	p := NewPlayer(sc)

	opts := sim.DefaultOptions()
	opts.Count = 0
	s, err := sim.New(opts)
	require.NoError(t, err)

	require.NoError(t, p.BeforeTick(s, 1))
	assert.Equal(t, 0, s.Len())
	require.NoError(t, p.BeforeTick(s, 3))
	assert.Equal(t, 2, s.Len())
	assert.False(t, p.Done())
	require.NoError(t, p.BeforeTick(s, 4))
	assert.Equal(t, 1, s.Len())
	assert.True(t, p.Done())
}
