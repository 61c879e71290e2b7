package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/particle"
)

func testOptions(count int) Options {
	opts := DefaultOptions()
	opts.Bounds = particle.Bounds{Width: 2000, Height: 1500}
	opts.Count = count
	opts.Seed = 42
	return opts
}

var _ = Describe("Simulation", func() {
	var s *Simulation

	newSim := func(count int) {
		var err error
		s, err = New(testOptions(count))
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("New", func() {
		It("seeds the requested number of particles", func() {
			newSim(12)
			Expect(s.Len()).To(Equal(12))
			Expect(s.Frame().Items).To(HaveLen(12))
			Expect(s.Cursor().Level).To(Equal(cursor.DefaultLevel))
		})

		It("rejects invalid options", func() {
			for _, mutate := range []func(*Options){
				func(o *Options) { o.Bounds.Width = -1 },
				func(o *Options) { o.Count = -2 },
				func(o *Options) { o.MinSize = 0 },
				func(o *Options) { o.MaxSize = 10 },
				func(o *Options) { o.FPS = 0 },
			} {
				opts := testOptions(3)
				mutate(&opts)
				_, err := New(opts)
				Expect(err).To(MatchError(ErrInvalidOptions))
			}
		})

		It("starts with the cursor offscreen", func() {
			newSim(1)
			Expect(s.Cursor().Pos).To(Equal(cursor.Offscreen))
		})
	})

	Describe("dragging", func() {
		var p *particle.Particle

		BeforeEach(func() {
			newSim(1)
			p = s.Particles()[0]
			p.Pos.X, p.Pos.Y = 900, 700
		})

		It("grabs the particle under the pointer", func() {
			c := p.Center()
			Expect(s.PointerDown(1, c.X, c.Y)).To(BeTrue())
			Expect(p.Dragging).To(BeTrue())
			Expect(p.ScaleX).To(Equal(1.1))
			Expect(s.Cursor().Pressed).To(BeTrue())
			Expect(s.Cursor().Mode).To(Equal(cursor.Pointer))

			held, ok := s.Dragging()
			Expect(ok).To(BeTrue())
			Expect(held.ID).To(Equal(p.ID))
		})

		It("misses empty space", func() {
			Expect(s.PointerDown(1, 5, 5)).To(BeFalse())
			Expect(s.Cursor().Mode).To(Equal(cursor.Default))
			_, ok := s.Dragging()
			Expect(ok).To(BeFalse())
		})

		It("keeps the held particle pinned while ticking", func() {
			c := p.Center()
			s.PointerDown(1, c.X, c.Y)
			s.PointerMove(1, c.X+30, c.Y-10)
			rot := p.Rotation

			for i := 0; i < 10; i++ {
				s.Tick()
			}
			Expect(p.Pos.X).To(BeNumerically("~", 930, 1e-9))
			Expect(p.Pos.Y).To(BeNumerically("~", 690, 1e-9))
			Expect(p.Rotation).To(BeNumerically("~", rot+20, 1e-9))
			Expect(s.Frame().Items[len(s.Frame().Items)-1].Dragging).To(BeTrue())
		})

		It("throws with a capped velocity on release", func() {
			c := p.Center()
			s.PointerDown(1, c.X, c.Y)
			s.PointerMove(1, c.X+40, c.Y+3)
			s.PointerUp(1, c.X+40, c.Y+3)

			Expect(p.Dragging).To(BeFalse())
			Expect(p.Vel.X).To(Equal(15.0))
			Expect(p.Vel.Y).To(Equal(3.0))
			Expect(s.Cursor().Pressed).To(BeFalse())

			x := p.Pos.X
			s.Tick()
			Expect(p.Pos.X).To(BeNumerically("~", x+15, 1e-9))
		})

		It("ignores a second pointer while one drag is active", func() {
			c := p.Center()
			s.PointerDown(1, c.X, c.Y)
			Expect(s.PointerDown(2, c.X, c.Y)).To(BeFalse())
			s.PointerMove(2, 0, 0)
			Expect(p.Pos.X).To(Equal(900.0))
			s.PointerUp(2, 0, 0)
			Expect(p.Dragging).To(BeTrue())
		})

		It("releases on cancel", func() {
			c := p.Center()
			s.PointerDown(1, c.X, c.Y)
			s.PointerCancel(1)
			Expect(p.Dragging).To(BeFalse())
		})

		It("drops the drag when the held particle is removed", func() {
			c := p.Center()
			s.PointerDown(1, c.X, c.Y)
			Expect(s.RemoveParticle()).To(Equal(0))
			_, ok := s.Dragging()
			Expect(ok).To(BeFalse())
			Expect(s.Tick()).NotTo(BeNil())
		})

		It("uses the pointer cursor over particles", func() {
			c := p.Center()
			s.PointerMove(0, c.X, c.Y)
			Expect(s.Cursor().Mode).To(Equal(cursor.Pointer))
			s.PointerMove(0, 1, 1)
			Expect(s.Cursor().Mode).To(Equal(cursor.Default))
			s.Hover(cursor.Text)
			Expect(s.Cursor().Mode).To(Equal(cursor.Text))
		})

		It("follows the pointer over chrome without touching the drag", func() {
			c := p.Center()
			s.PointerDown(1, c.X, c.Y)
			s.PointerHover(c.X+200, 1600, cursor.Pointer)

			Expect(s.Cursor().Target.X).To(Equal(c.X + 200))
			Expect(s.Cursor().Target.Y).To(Equal(1600.0))
			Expect(s.Cursor().Mode).To(Equal(cursor.Pointer))
			Expect(p.Pos.X).To(Equal(900.0))
			Expect(p.Dragging).To(BeTrue())

			s.PointerHover(10, 1600, cursor.Text)
			Expect(s.Cursor().Mode).To(Equal(cursor.Text))
		})
	})

	Describe("control surface", func() {
		BeforeEach(func() { newSim(3) })

		It("adds and removes in stack order", func() {
			Expect(s.AddParticle()).To(Equal(4))
			Expect(s.AddParticle()).To(Equal(5))
			added := s.Particles()[4].ID

			Expect(s.RemoveParticle()).To(Equal(4))
			for _, p := range s.Particles() {
				Expect(p.ID).NotTo(Equal(added))
			}
			Expect(s.Frame().Items).To(HaveLen(4))
		})

		It("treats remove on an empty playground as a no-op", func() {
			for i := 0; i < 3; i++ {
				s.RemoveParticle()
			}
			Expect(s.RemoveParticle()).To(Equal(0))
			Expect(s.Len()).To(Equal(0))
			Expect(s.Tick()).NotTo(BeNil())
		})

		It("clamps the cursor speed level", func() {
			Expect(s.SetCursorSpeedLevel(0)).To(Equal(1))
			Expect(s.SetCursorSpeedLevel(14)).To(Equal(10))
			Expect(s.CursorSlower()).To(Equal(9))
			Expect(s.CursorFaster()).To(Equal(10))
		})

		It("syncs the cursor immediately at max speed", func() {
			s.SetCursorSpeedLevel(10)
			s.PointerMove(0, 123, 456)
			Expect(s.Cursor().Pos.X).To(Equal(123.0))
			Expect(s.Cursor().Pos.Y).To(Equal(456.0))
		})

		It("reseeds with fresh ids and the same count", func() {
			var maxID particle.ID
			for _, p := range s.Particles() {
				if p.ID > maxID {
					maxID = p.ID
				}
			}
			Expect(s.Reseed(7)).To(Succeed())
			Expect(s.Len()).To(Equal(3))
			for _, p := range s.Particles() {
				Expect(p.ID).To(BeNumerically(">", maxID))
			}
		})

		It("rejects a negative resize", func() {
			Expect(s.Resize(-1, 10)).To(MatchError(particle.ErrInvalidBounds))
			Expect(s.Resize(640, 480)).To(Succeed())
			Expect(s.Bounds()).To(Equal(particle.Bounds{Width: 640, Height: 480}))
		})

		It("applies new tuning", func() {
			t := s.Tuning()
			t.Damping = 0.5
			s.SetTuning(t)
			Expect(s.Tuning().Damping).To(Equal(0.5))
		})
	})

	Describe("Close", func() {
		BeforeEach(func() { newSim(1) })

		It("releases the drag and stops ticking", func() {
			p := s.Particles()[0]
			c := p.Center()
			s.PointerDown(1, c.X, c.Y)

			s.Close()
			Expect(s.Closed()).To(BeTrue())
			Expect(p.Dragging).To(BeFalse())
			Expect(s.Tick()).To(BeNil())
			Expect(s.TickCount()).To(BeZero())

			Expect(s.PointerDown(1, c.X, c.Y)).To(BeFalse())
			Expect(s.AddParticle()).To(Equal(1))
			Expect(s.Reseed(3)).To(MatchError(ErrClosed))
		})

		It("is idempotent", func() {
			s.Close()
			s.Close()
			Expect(s.Closed()).To(BeTrue())
		})
	})

	Describe("long run", func() {
		It("keeps every particle inside the walls and finite", func() {
			newSim(30)
			for i := 0; i < 3000; i++ {
				if i%250 == 0 {
					p := s.Particles()[i%s.Len()]
					c := p.Center()
					s.PointerDown(1, c.X, c.Y)
					s.PointerMove(1, c.X+80, c.Y-80)
					s.PointerUp(1, c.X+80, c.Y-80)
				}
				s.Tick()
				b := s.Bounds()
				for _, p := range s.Particles() {
					half := p.Size() / 2
					Expect(math.IsNaN(p.Pos.X)).To(BeFalse())
					Expect(p.Pos.X).To(BeNumerically(">=", -half))
					Expect(p.Pos.X).To(BeNumerically("<=", b.Width+half))
					Expect(p.Pos.Y).To(BeNumerically(">=", -half))
					Expect(p.Pos.Y).To(BeNumerically("<=", b.Height+half))
				}
			}
		})
	})
})
