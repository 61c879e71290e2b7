package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n int, period, amp, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + amp*math.Sin(2*math.Pi*float64(i)/period)
	}
	return out
}

func TestDominantFindsPeriod(t *testing.T) {
	// 600 ticks at 60 fps, one cycle every 20 ticks -> 3 Hz
	b, ok := Dominant(sine(600, 20, 2, 50), 60)
	require.True(t, ok)
	assert.InDelta(t, 3.0, b.Freq, 1e-9)
	assert.InDelta(t, 20.0, b.Period, 1e-9)
	assert.InDelta(t, 1.0, b.Power, 1e-6, "a sine of amplitude A has one-sided power A/2")
}

func TestDominantNonPowerOfTwo(t *testing.T) {
	b, ok := Dominant(sine(500, 25, 1, 0), 60)
	require.True(t, ok)
	assert.InDelta(t, 25.0, b.Period, 1e-9)
}

func TestDominantFlatSeries(t *testing.T) {
	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 7
	}
	_, ok := Dominant(flat, 60)
	assert.False(t, ok)

	_, ok = Dominant([]float64{1, 2}, 60)
	assert.False(t, ok, "too short")
}

func TestSpectrumShape(t *testing.T) {
	bins := Spectrum(sine(128, 16, 1, 0), 60)
	require.Len(t, bins, 64)
	assert.InDelta(t, 60.0/128, bins[0].Freq, 1e-12)
	assert.InDelta(t, 30.0, bins[len(bins)-1].Freq, 1e-12, "last bin is Nyquist")
	assert.Len(t, Powers(bins), 64)
	assert.Nil(t, Spectrum(sine(128, 16, 1, 0), 0))
}

func TestHalfLife(t *testing.T) {
	decay := make([]float64, 100)
	for i := range decay {
		decay[i] = 100 * math.Pow(0.98, float64(i))
	}
	// 0.98^n < 0.5 first at n = 35
	assert.Equal(t, 35, HalfLife(decay))
	assert.Equal(t, -1, HalfLife([]float64{5, 5, 5}))
	assert.Equal(t, -1, HalfLife(nil))
}

func TestStats(t *testing.T) {
	mean, std := Stats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 2.0, std)

	mean, std = Stats(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)
}
