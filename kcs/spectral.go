/*
NAME
  spectral.go

DESCRIPTION
  spectral.go implements the short-time Fourier analysis that turns a
  sample series into two parallel energy series, one tracking the low
  tone and one tracking the high tone (§4.2).
*/

package kcs

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Spectral holds the two parallel energy series produced by Analyze.
type Spectral struct {
	Lo []float64
	Hi []float64
}

// Analyze slides a window of width der.W across samples with hop der.Step,
// applying cfg.Window, and extracting lo/hi tone energies at each step.
func Analyze(samples []float64, cfg Config, der Derived) Spectral {
	n := len(samples)
	w := der.W
	step := der.Step
	if n < w {
		return Spectral{}
	}
	p := (n-w)/step + 1

	out := Spectral{Lo: make([]float64, p), Hi: make([]float64, p)}
	sub := make([]float64, w)
	win := windowCoeffs(cfg.Window, w)

	for i := 0; i < p; i++ {
		start := i * step
		copy(sub, samples[start:start+w])
		if win != nil {
			for n := range sub {
				sub[n] *= win[n]
			}
		}

		spec := powerSpectrum(sub)

		lo, hi := sumOfThreeEligible(cfg, der)
		if lo {
			out.Lo[i] = spec[der.LoN1-1] + spec[der.LoN1] + spec[der.LoN1+1]
		} else {
			out.Lo[i] = der.LoA1*spec[der.LoN1] + der.LoA2*spec[der.LoN2]
		}
		if hi {
			out.Hi[i] = spec[der.HiN1-1] + spec[der.HiN1] + spec[der.HiN1+1]
		} else {
			out.Hi[i] = der.HiA1*spec[der.HiN1] + der.HiA2*spec[der.HiN2]
		}
	}
	return out
}

// sumOfThreeEligible reports, independently for the lo and hi bins, whether
// the sum-of-three rule applies: cfg.AssumeResampled is set, the bin offset
// is an exact integer, and the neighbouring bins (n-1, n+1) are in range.
// The original implementation does not guard the range; we do, and fall
// back to interpolation when the guard fails (see DESIGN.md).
func sumOfThreeEligible(cfg Config, der Derived) (lo, hi bool) {
	if !cfg.AssumeResampled {
		return false, false
	}
	lo = der.LoA1 == 1 && der.LoN1-1 >= 0 && der.LoN1+1 <= der.W/2
	hi = der.HiA1 == 1 && der.HiN1-1 >= 0 && der.HiN1+1 <= der.W/2
	return
}

// powerSpectrum computes the magnitude-squared power spectrum of x, of
// length len(x)/2+1.
func powerSpectrum(x []float64) []float64 {
	c := fft.FFTReal(x)
	n := len(x)/2 + 1
	p := make([]float64, n)
	for i := 0; i < n; i++ {
		re, im := real(c[i]), imag(c[i])
		p[i] = re*re + im*im
	}
	return p
}

// windowCoeffs returns the window-function coefficients for a subwindow of
// width w, or nil for WindowNone (identity, no multiplication needed).
func windowCoeffs(kind WindowKind, w int) []float64 {
	switch kind {
	case WindowBartlett:
		c := make([]float64, w)
		for n := 0; n < w; n++ {
			c[n] = 1 - math.Abs((float64(n)-float64(w-1)/2)/(float64(w-1)/2))
		}
		return c
	case WindowWelch:
		c := make([]float64, w)
		half := float64(w-1) / 2
		for n := 0; n < w; n++ {
			t := (float64(n) - half) / half
			c[n] = 1 - t*t
		}
		return c
	case WindowHann:
		c := make([]float64, w)
		for n := 0; n < w; n++ {
			c[n] = 0.5 * (1 - math.Cos(2*math.Pi*float64(n)/float64(w-1)))
		}
		return c
	default:
		return nil
	}
}
