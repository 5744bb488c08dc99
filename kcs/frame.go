/*
NAME
  frame.go

DESCRIPTION
  frame.go implements the frame-synchronous UART-style decoder: start-bit
  search, mid-bit sampling, per-frame speed tracking, byte emission, and
  carrier-gap file segmentation (§4.5).
*/

package kcs

import (
	"github.com/ausocean/utils/logging"
	"gonum.org/v1/gonum/floats"
)

// frameState is the decoder's mutable cursor state, the "current decoder
// state" of §3.
type frameState struct {
	p, last   int
	bitW      float64
	frameW    float64
	text      []byte
	files     [][]byte
	variances []float64 // one entry per accepted frame's speed variance.

	bitStream []byte // ASCII '0'/'1' accumulator, nil unless enabled.
}

// DecodeResult is the output of Decode: the segmented files, the optional
// bitstream, and the maximum observed tape-speed variance.
type DecodeResult struct {
	Files       [][]byte
	BitStream   string
	MaxVariance float64
}

// Decode runs the frame decoder over bit timeline b (§4.5) and returns the
// resulting files. der.Step converts a timeline index back to an
// approximate original sample offset for diagnostics.
func Decode(b []byte, cfg Config, der Derived) DecodeResult {
	s := &frameState{bitW: der.BitWidth, frameW: der.FrameWidth}
	if cfg.BitStreamOutput {
		s.bitStream = make([]byte, 0, len(b))
	}

	p := len(b)
	frameBits := der.FrameBits
	dataBits := cfg.Frame.DataBits
	parityBits := cfg.Frame.ParityBits
	stopBits := cfg.Frame.StopBits
	frameWidth := der.FrameWidth

	for float64(s.p) < float64(p)-s.frameW {
		// 1. Seek start bit, skipping carrier.
		seekStart := s.p
		for s.p < p && b[s.p] == 1 {
			s.p++
		}
		if s.bitStream != nil {
			advance := s.p - seekStart
			ones := int(float64(advance) / s.bitW)
			for i := 0; i < ones; i++ {
				s.bitStream = append(s.bitStream, '1')
			}
		}
		if s.p >= p {
			break
		}

		// 2. Center on start bit.
		s.p += roundInt(s.bitW / 2)
		if s.p >= p || b[s.p] != 0 {
			logf(cfg.Logger, "abandoned frame attempt: bad start-bit midpoint")
			continue
		}

		// 3. Long-gap sanity check.
		if float64(s.p-s.last) > 2*s.frameW {
			i1 := s.p + roundInt(9*s.bitW)
			i2 := s.p + roundInt(10*s.bitW)
			if i1 >= p || i2 >= p || b[i1] != 1 || b[i2] != 1 {
				logf(cfg.Logger, "abandoned frame attempt: long-gap stop-bit sanity failed")
				continue
			}
		}

		// 4. Speed tracking.
		variance := abs(float64(s.p-s.last)-frameWidth) / frameWidth
		if variance < 0.20 {
			s.frameW = float64(s.p - s.last)
			s.bitW = s.frameW / float64(frameBits)
			s.variances = append(s.variances, variance)
		} else {
			if float64(s.p-s.last) > 11*frameWidth {
				flush(s, cfg)
				if cfg.Logger != nil {
					cfg.Logger.Info("starting new file: carrier gap exceeded 11 frame widths")
				}
			}
			s.frameW = frameWidth
			s.bitW = der.BitWidth
		}

		// 5. Bit-stream echo of data + stop bits.
		if s.bitStream != nil {
			for i := 0; i < dataBits+stopBits; i++ {
				idx := s.p + roundInt(s.bitW*float64(i))
				if idx < p {
					s.bitStream = append(s.bitStream, '0'+b[idx])
				}
			}
		}

		// 6. Decode byte, LSB first.
		var by int
		for i := 1; i <= dataBits; i++ {
			idx := s.p + roundInt(s.bitW*float64(i))
			if idx >= p {
				break
			}
			by |= int(b[idx]) << uint(i-1)
		}
		s.text = append(s.text, byte(by))
		if cfg.PrintData {
			logf(cfg.Logger, "data byte", "value", printable(byte(by)))
		}

		// 7. Stop-bit check (diagnostic only; never aborts the frame).
		for i := 1; i <= stopBits; i++ {
			idx := s.p + roundInt(float64(dataBits+parityBits+i)*s.bitW)
			if idx < p && b[idx] != 1 && cfg.Logger != nil {
				cfg.Logger.Warning("stop-bit anomaly", "approx sample offset", idx*der.Step)
			}
		}

		// 8. Advance.
		s.last = s.p
		s.p += roundInt(float64(1+dataBits+parityBits) * s.bitW)
	}

	flush(s, cfg)

	res := DecodeResult{Files: s.files}
	if len(s.variances) > 0 {
		res.MaxVariance = floats.Max(s.variances)
	}
	if s.bitStream != nil {
		res.BitStream = string(s.bitStream)
	}
	return res
}

// flush implements the file emitter's flush() semantics (§4.6): a file is
// kept if it has >= 20 bytes, or if cfg.KeepShortRuns is set.
func flush(s *frameState, cfg Config) {
	if len(s.text) >= 20 || cfg.KeepShortRuns {
		snapshot := make([]byte, len(s.text))
		copy(snapshot, s.text)
		s.files = append(s.files, snapshot)
	}
	s.text = s.text[:0]
}

// printable renders b for the optional print_data diagnostic mode (§4.5
// step 6): printable bytes pass through, 10 becomes a newline marker, 0 and
// 13 are skipped, everything else is a <HH> hex escape.
func printable(b byte) string {
	switch {
	case b == 10:
		return "\n"
	case b == 0 || b == 13:
		return ""
	case b >= 0x20 && b < 0x7f:
		return string(rune(b))
	default:
		return hexEscape(b)
	}
}

func hexEscape(b byte) string {
	const hexDigits = "0123456789ABCDEF"
	return "<" + string(hexDigits[b>>4]) + string(hexDigits[b&0xf]) + ">"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// logf logs a diagnostic if l is non-nil, matching the teacher's pattern of
// leveled structured logging calls throughout revid and its devices.
func logf(l logging.Logger, msg string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Debug(msg, args...)
}
