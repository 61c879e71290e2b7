package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownParam = errors.New("config: unknown parameter")

// params maps the tunable names used by sweeps onto config fields.
var params = map[string]func(*Config, float64){
	"count":          func(c *Config, v float64) { c.Particles.Count = int(v) },
	"initial_speed":  func(c *Config, v float64) { c.Particles.InitialSpeed = v },
	"overlap_factor": func(c *Config, v float64) { c.Physics.OverlapFactor = v },
	"restitution":    func(c *Config, v float64) { c.Physics.Restitution = v },
	"drag_kick":      func(c *Config, v float64) { c.Physics.DragKick = v },
	"damping":        func(c *Config, v float64) { c.Physics.Damping = v },
	"floor_speed":    func(c *Config, v float64) { c.Physics.FloorSpeed = v },
	"jitter":         func(c *Config, v float64) { c.Physics.Jitter = v },
	"recovery":       func(c *Config, v float64) { c.Physics.Recovery = v },
	"bounce":         func(c *Config, v float64) { c.Physics.Bounce = v },
	"squash":         func(c *Config, v float64) { c.Physics.Squash = v },
	"stretch":        func(c *Config, v float64) { c.Physics.Stretch = v },
	"throw_cap":      func(c *Config, v float64) { c.Input.ThrowCap = v },
}

// Set assigns a numeric parameter by its yaml name.
func (c *Config) Set(name string, v float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	set(c, v)
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
