package metrics

import "github.com/san-kum/driftbox/internal/sim"

// ContactRate is the mean number of particle contacts per tick.
type ContactRate struct {
	name    string
	sum     float64
	samples int
}

func NewContactRate() *ContactRate {
	return &ContactRate{name: "contact_rate"}
}

func (c *ContactRate) Name() string { return c.name }

func (c *ContactRate) Observe(s sim.Sample) {
	c.sum += float64(s.Contacts)
	c.samples++
}

func (c *ContactRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ContactRate) Reset() {
	c.sum = 0
	c.samples = 0
}

// WallHits counts wall reflections over the whole run.
type WallHits struct {
	name  string
	total int
}

func NewWallHits() *WallHits { return &WallHits{name: "wall_hits"} }

func (w *WallHits) Name() string         { return w.name }
func (w *WallHits) Observe(s sim.Sample) { w.total += s.WallHits }
func (w *WallHits) Value() float64       { return float64(w.total) }
func (w *WallHits) Reset()               { w.total = 0 }
