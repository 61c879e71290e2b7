package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Bin is one frequency component. Freq is in cycles per second given the
// run's tick rate.
type Bin struct {
	Freq   float64
	Period float64 // ticks per cycle
	Power  float64
}

// Spectrum returns the one-sided magnitude spectrum of series sampled at fps
// ticks per second. The mean is removed first so the DC term does not
// dominate; bin 0 is omitted.
func Spectrum(series []float64, fps int) []Bin {
	n := len(series)
	if n < 4 || fps <= 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	bins := make([]Bin, 0, n/2)
	for k := 1; k <= n/2; k++ {
		freq := float64(k) * float64(fps) / float64(n)
		bins = append(bins, Bin{
			Freq:   freq,
			Period: float64(n) / float64(k),
			Power:  cmplx.Abs(coeffs[k]) / float64(n),
		})
	}
	return bins
}

// Dominant returns the strongest bin. ok is false for series too short to
// analyse or with no variation at all.
func Dominant(series []float64, fps int) (Bin, bool) {
	var best Bin
	for _, b := range Spectrum(series, fps) {
		if b.Power > best.Power {
			best = b
		}
	}
	return best, best.Power > 1e-12
}

// Powers is the power column of bins, for plotting.
func Powers(bins []Bin) []float64 {
	out := make([]float64, len(bins))
	for i, b := range bins {
		out[i] = b.Power
	}
	return out
}

// HalfLife returns the first tick at which series falls below half of its
// starting value, or -1 if it never does.
func HalfLife(series []float64) int {
	if len(series) == 0 || series[0] <= 0 {
		return -1
	}
	half := series[0] / 2
	for i, v := range series {
		if v < half {
			return i
		}
	}
	return -1
}

// Stats is the mean and standard deviation of series.
func Stats(series []float64) (mean, std float64) {
	if len(series) == 0 {
		return 0, 0
	}
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))
	for _, v := range series {
		d := v - mean
		std += d * d
	}
	return mean, math.Sqrt(std / float64(len(series)))
}
