// Package analysis extracts beat frequencies from density time series.
// The density of a two-plus-mode superposition oscillates at the pair
// frequencies (E_m - E_n)/(2*pi*hbar); a power spectrum of the density
// sampled at one probe position makes them visible.
package analysis

import (
	"math"
	"math/cmplx"
)

// Spectrum returns the one-sided power spectrum of samples, zero-padded
// to the next power of two.
func Spectrum(samples []float64) []float64 {
	n := nextPow2(len(samples))
	buf := make([]complex128, n)
	for i, v := range samples {
		buf[i] = complex(v, 0)
	}
	fft(buf)

	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(buf[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-DC spectral line of
// samples taken dt apart, returning its frequency in Hz and its power.
func DominantFrequency(samples []float64, dt float64) (float64, float64) {
	if len(samples) < 2 || dt <= 0 {
		return 0, 0
	}
	ps := Spectrum(samples)
	n := nextPow2(len(samples))

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	return float64(maxIdx) / (float64(n) * dt), maxPower
}

// fft is an in-place iterative radix-2 Cooley-Tukey transform.
// len(a) must be a power of two.
func fft(a []complex128) {
	n := len(a)
	if n < 2 {
		return
	}

	// bit-reversal permutation
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		wl := cmplx.Exp(complex(0, -2*math.Pi/float64(length)))
		for start := 0; start < n; start += length {
			w := complex(1, 0)
			for k := 0; k < length/2; k++ {
				u := a[start+k]
				v := a[start+k+length/2] * w
				a[start+k] = u + v
				a[start+k+length/2] = u - v
				w *= wl
			}
		}
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
