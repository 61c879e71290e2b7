package viz

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("cell 1 = %U", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != blank {
		t.Errorf("unset left %U", c.Grid[0][0])
	}

	// out of range writes are dropped
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.String() != "⠀⢀\n" {
		t.Errorf("string = %q", c.String())
	}
}

func TestCanvasFillPolygon(t *testing.T) {
	c := NewCanvas(4, 2) // 8x8 dots
	square := []cp.Vector{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}}
	c.FillPolygon(square, "#2dd4bf")

	count := 0
	for y := 0; y < c.DotsHigh(); y++ {
		for x := 0; x < c.DotsWide(); x++ {
			if c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0 {
				count++
				if x < 2 || x > 5 || y < 2 || y > 5 {
					t.Errorf("dot (%d,%d) outside the square", x, y)
				}
			}
		}
	}
	if count != 16 {
		t.Errorf("expected 16 dots, got %d", count)
	}
	if c.Colors[0][1] != "#2dd4bf" || c.Colors[0][0] != "" {
		t.Errorf("colours = %v", c.Colors[0])
	}
}

func TestCanvasFillDegenerate(t *testing.T) {
	c := NewCanvas(2, 2)
	c.FillPolygon([]cp.Vector{{X: 0, Y: 0}, {X: 3, Y: 3}}, "#fff")
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("two points must not draw")
	}
}

func TestCanvasRenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetColor(0, 0, "#2dd4bf")
	c.SetColor(5, 7, "#10b981")

	out := c.Render()
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 1 newline, got %d", got)
	}
	for _, r := range []rune{0x2801, 0x2880} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("render lost %U", r)
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.DrawLine(0, 0, 3, 7, "#ffffff")
	c.Clear()
	for r := range c.Grid {
		for i := range c.Grid[r] {
			if c.Grid[r][i] != blank || c.Colors[r][i] != "" {
				t.Fatal("clear left data behind")
			}
		}
	}
}
