// Package analysis looks at recorded run series in the frequency domain.
//
// A playground that has settled still breathes: idle re-injection and wall
// bounces leave a periodic signature in kinetic energy and contact counts.
// [Spectrum] exposes it and [Dominant] picks the strongest component.
package analysis
