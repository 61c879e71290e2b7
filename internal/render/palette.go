package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Swatch is one palette entry: a base fill plus the highlight and shadow used
// for shading.
type Swatch struct {
	Base      colorful.Color
	Highlight colorful.Color
	Shadow    colorful.Color
}

// Lit returns the base colour brightened by b. Values at or below 1 return the
// base unchanged.
func (s Swatch) Lit(b float64) colorful.Color {
	if b <= 1 {
		return s.Base
	}
	h, c, l := s.Base.Hcl()
	l *= b
	if l > 1 {
		l = 1
	}
	return colorful.Hcl(h, c, l).Clamped()
}

type Palette []Swatch

var paletteHex = [][3]string{
	{"#2dd4bf", "#99f6e4", "#115e59"}, // teal
	{"#10b981", "#6ee7b7", "#065f46"}, // emerald
	{"#0f766e", "#5eead4", "#0f1d1a"}, // deep teal
	{"#14b8a6", "#ccfbf1", "#0f1d1a"}, // cyan
}

// DefaultPalette is the four-swatch teal palette particles pick from.
func DefaultPalette() Palette {
	p := make(Palette, 0, len(paletteHex))
	for _, hx := range paletteHex {
		p = append(p, Swatch{
			Base:      mustHex(hx[0]),
			Highlight: mustHex(hx[1]),
			Shadow:    mustHex(hx[2]),
		})
	}
	return p
}

// At returns the swatch for a colour index, wrapping out-of-range indices.
func (p Palette) At(i int) Swatch {
	if len(p) == 0 {
		return Swatch{}
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
