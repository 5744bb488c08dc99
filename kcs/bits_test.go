package kcs

import (
	"bytes"
	"testing"
)

func TestBuildBits(t *testing.T) {
	th := Thresholds{AvLo: 10, AvHi: 10}
	lo := []float64{20, 1, 10}
	hi := []float64{1, 20, 10}
	got := BuildBits(lo, hi, th)
	want := []byte{0, 1, 1} // tie goes to hi (strict > required for lo).
	if !bytes.Equal(got, want) {
		t.Errorf("BuildBits() = %v, want %v", got, want)
	}
}

func TestSmoothSingletonGlitch(t *testing.T) {
	// A single flipped bit surrounded by matching polarity on both sides.
	b := []byte{1, 1, 1, 0, 1, 1, 1}
	Smooth(b, 4) // stepsPerBit >= 3 enables the singleton pass only.
	want := []byte{1, 1, 1, 1, 1, 1, 1}
	if !bytes.Equal(b, want) {
		t.Errorf("Smooth() = %v, want %v", b, want)
	}
}

func TestSmoothLeavesRealTransitionsAlone(t *testing.T) {
	b := []byte{1, 1, 1, 0, 0, 0, 0, 1, 1, 1}
	orig := append([]byte(nil), b...)
	Smooth(b, 4)
	if !bytes.Equal(b, orig) {
		t.Errorf("Smooth() altered a genuine 4-wide transition: got %v, want %v", b, orig)
	}
}

func TestSmoothGatedByStepsPerBit(t *testing.T) {
	b := []byte{1, 1, 1, 0, 1, 1, 1}
	Smooth(b, 2) // below the threshold for even the singleton pass.
	want := []byte{1, 1, 1, 0, 1, 1, 1}
	if !bytes.Equal(b, want) {
		t.Errorf("Smooth() with stepsPerBit=2 = %v, want untouched %v", b, want)
	}
}

func TestSmoothPairGlitch(t *testing.T) {
	b := []byte{0, 0, 0, 1, 1, 0, 0, 0}
	Smooth(b, 5) // enables both singleton and pair passes.
	want := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(b, want) {
		t.Errorf("Smooth() pair glitch = %v, want %v", b, want)
	}
}
