package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/driftbox/internal/render"
	"github.com/san-kum/driftbox/internal/viz"
)

const (
	background = "#0a0a0a"
	segments   = 48
)

// FrameToSVG draws a composed frame as vector shapes at world scale. Shadows
// of lifted items are drawn under them.
func FrameToSVG(f *render.Frame) string {
	if f == nil {
		return ""
	}
	w, h := f.Bounds.Width, f.Bounds.Height

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)

	for _, it := range f.Items {
		poly := render.Outline(it, segments)
		if it.Elevation > 0 {
			fmt.Fprintf(&sb, `<polygon points="%s" fill="%s" fill-opacity="0.55" transform="translate(%.1f %.1f)"/>
`, points(poly), viz.Hex(it.Swatch.Shadow), it.Elevation/2, it.Elevation)
		}
		stroke := ""
		if it.Dragging {
			stroke = fmt.Sprintf(` stroke="%s" stroke-width="2"`, viz.Hex(it.Swatch.Highlight))
		}
		fmt.Fprintf(&sb, `<polygon points="%s" fill="%s"%s/>
`, points(poly), viz.Hex(it.Swatch.Lit(it.Brightness)), stroke)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func points(poly []cp.Vector) string {
	var sb strings.Builder
	for i, p := range poly {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
	}
	return sb.String()
}

// SeriesToSVG draws a value series as a line chart, oldest sample on the left.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}

// Write sends svg to w.
func Write(w io.Writer, svg string) error {
	_, err := io.WriteString(w, svg)
	return err
}
