/*
NAME
  config.go

DESCRIPTION
  config.go defines the decoder configuration and the derived quantities
  computed from it once the input sample rate is known.
*/

// Package kcs implements the Kansas City Standard / FSK cassette-tape
// decoding pipeline: spectral analysis, adaptive thresholding, bit-timeline
// construction and frame-synchronous decoding of recorded program data.
package kcs

import (
	"math"

	"github.com/ausocean/utils/logging"
)

// WindowKind selects the window function applied to each spectral-analysis
// subwindow before the FFT.
type WindowKind int

const (
	WindowNone WindowKind = iota
	WindowBartlett
	WindowWelch
	WindowHann
)

// String returns the CLI spelling of the window kind.
func (w WindowKind) String() string {
	switch w {
	case WindowBartlett:
		return "bartlett"
	case WindowWelch:
		return "welch"
	case WindowHann:
		return "hann"
	default:
		return "none"
	}
}

// ParseWindowKind parses the CLI spelling of a window kind.
func ParseWindowKind(s string) (WindowKind, bool) {
	switch s {
	case "", "none":
		return WindowNone, true
	case "bartlett":
		return WindowBartlett, true
	case "welch":
		return WindowWelch, true
	case "hann":
		return WindowHann, true
	default:
		return WindowNone, false
	}
}

// Channel selects how a multi-channel sample is reduced to one real value.
type Channel int

const (
	ChannelLeft Channel = iota
	ChannelRight
	ChannelSum // left + right, unscaled.
)

// ParseChannel parses the CLI spelling of a channel-selection policy.
func ParseChannel(s string) (Channel, bool) {
	switch s {
	case "", "L":
		return ChannelLeft, true
	case "R":
		return ChannelRight, true
	case "A":
		return ChannelSum, true
	default:
		return ChannelLeft, false
	}
}

// Parity is the frame's parity kind. It is never verified (see frame.go);
// it only affects cursor placement, since the bit is still present on tape.
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// FrameLayout describes one UART-style character: a start bit, data bits
// (LSB first), optional parity, and stop bits.
type FrameLayout struct {
	DataBits   int
	ParityBits int // 0 or 1.
	Parity     Parity
	StopBits   int
}

// Bits returns the total number of bit-slots in one frame, including the
// fixed single start bit.
func (f FrameLayout) Bits() int {
	return 1 + f.DataBits + f.ParityBits + f.StopBits
}

// Preset bundles of (hi, lo, baud) for named tape encodings (§6, CUTS; the
// others are supplements, see SPEC_FULL.md §5).
type Preset struct {
	Name string
	Hi   float64
	Lo   float64
	Baud float64
}

var (
	PresetKCS    = Preset{Name: "KCS", Hi: 2400, Lo: 1200, Baud: 300}
	PresetCUTS   = Preset{Name: "CUTS", Hi: 1200, Lo: 600, Baud: 1200}
	PresetUK101  = Preset{Name: "UK101", Hi: 2400, Lo: 1200, Baud: 300}
	PresetAtari  = Preset{Name: "Atari", Hi: 5327, Lo: 3995, Baud: 600}
	PresetBBC    = Preset{Name: "BBC", Hi: 2400, Lo: 1200, Baud: 1200}
	PresetByName = map[string]Preset{
		"KCS":   PresetKCS,
		"CUTS":  PresetCUTS,
		"UK101": PresetUK101,
		"Atari": PresetAtari,
		"BBC":   PresetBBC,
	}
)

// Config is the immutable decoder configuration, frozen after construction
// and shared read-only by every pipeline stage.
type Config struct {
	LoHz  float64 // Low-tone frequency.
	HiHz  float64 // High-tone frequency.
	Baud  float64 // Baud rate (bits/second).
	Frame FrameLayout

	Window      WindowKind
	StepsPerBit int // FFT windows per bit period.
	Channel     Channel

	KeepShortRuns   bool // Keep-all flag: emit files shorter than 20 bytes.
	AssumeResampled bool // Input was externally resampled to an exact samples-per-bit.
	BitStreamOutput bool // Emit the ASCII '0'/'1' bitstream file.
	GraphOutput     bool // Emit the two-column .dat (and supplement .png) file.
	PrintData       bool // Echo decoded bytes to the diagnostic log.

	MaxSamples int // 0 means unbounded.

	// Logger receives diagnostics (§6): sample counts, frequency/bin
	// reports, trim counts, class averages, speed-variance notices,
	// stop-bit anomalies, file-boundary announcements, final summary.
	// May be left nil, in which case diagnostics are silently dropped.
	Logger logging.Logger
}

// DefaultConfig returns a Config populated with the classic 300-baud KCS
// defaults and reasonable decoding knobs.
func DefaultConfig() Config {
	return Config{
		LoHz:        PresetKCS.Lo,
		HiHz:        PresetKCS.Hi,
		Baud:        PresetKCS.Baud,
		Frame:       FrameLayout{DataBits: 8, ParityBits: 0, Parity: ParityNone, StopBits: 2},
		Window:      WindowNone,
		StepsPerBit: 4,
		Channel:     ChannelLeft,
	}
}

// Derived holds the quantities computed once from Config and the input
// sample rate (§3, "Derived quantities").
type Derived struct {
	Fs float64

	SamplesPerBit float64
	Step          int
	BitWidth      float64
	FrameBits     int
	FrameWidth    float64

	W int // FFT width, a power of two.

	LoBin, HiBin float64
	LoN1, LoN2   int
	HiN1, HiN2   int
	LoA1, LoA2   float64
	HiA1, HiA2   float64
}

// NewDerived computes the derived quantities (§3) for cfg at sample rate fs.
func NewDerived(cfg Config, fs float64) Derived {
	var d Derived
	d.Fs = fs

	d.SamplesPerBit = round(fs / cfg.Baud)
	d.Step = int(maxFloat(1, round(fs/cfg.Baud/float64(cfg.StepsPerBit))))
	d.BitWidth = fs / cfg.Baud / float64(d.Step)
	d.FrameBits = cfg.Frame.Bits()
	d.FrameWidth = d.BitWidth * float64(d.FrameBits)

	w := largestPow2LE(fs / cfg.Baud)
	if cfg.LoHz < cfg.Baud {
		w *= 2
	}
	d.W = w

	d.LoBin = cfg.LoHz * float64(d.W) / fs
	d.HiBin = cfg.HiHz * float64(d.W) / fs
	d.LoN1, d.LoN2, d.LoA1, d.LoA2 = binWeights(d.LoBin, d.W)
	d.HiN1, d.HiN2, d.HiA1, d.HiA2 = binWeights(d.HiBin, d.W)

	return d
}

// binWeights decomposes a fractional bin index into the two adjacent
// integer bins and their linear interpolation weights, per §3.
func binWeights(bin float64, w int) (n1, n2 int, a1, a2 float64) {
	n1 = int(bin)
	n2 = n1 + 1
	a1 = float64(n2) - bin
	a2 = 1 - a1
	if n1 == 0 {
		a1, a2 = 0, 1
	}
	if n2 > w/2 {
		n2 = w / 2
	}
	return
}

// largestPow2LE returns the largest power of two <= v, or 1 if v < 1.
func largestPow2LE(v float64) int {
	if v < 1 {
		return 1
	}
	n := 1
	for float64(n*2) <= v {
		n *= 2
	}
	return n
}

// round implements round-half-away-from-zero via add-0.5-then-truncate, as
// required throughout the decoder's bit-position arithmetic (§9).
func round(v float64) float64 {
	if v < 0 {
		return math.Trunc(v - 0.5)
	}
	return math.Trunc(v + 0.5)
}

// roundInt is round to the nearest int.
func roundInt(v float64) int {
	return int(round(v))
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
