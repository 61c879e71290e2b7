package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Plot draws series as an asciigraph line chart. Series longer than width are
// averaged down into width buckets first.
func Plot(series []float64, width, height int, caption string) string {
	if len(series) == 0 {
		return Subtle.Render("(no data)")
	}
	data := Downsample(series, width)
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(data, opts...)
}

// Downsample averages series into at most n buckets.
func Downsample(series []float64, n int) []float64 {
	if n <= 0 || len(series) <= n {
		out := make([]float64, len(series))
		copy(out, series)
		return out
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		from := i * len(series) / n
		to := (i + 1) * len(series) / n
		var sum float64
		for _, v := range series[from:to] {
			sum += v
		}
		out[i] = sum / float64(to-from)
	}
	return out
}
