/*
NAME
  ingest.go

DESCRIPTION
  ingest.go implements the sample ingester (§4.1): it consumes a waveform
  Source and reduces its multi-channel samples to a single real-valued
  series, honouring the configured channel-selection policy and optional
  sample cap.
*/

package kcs

import (
	"github.com/kansasfsk/kcsdecode/kcs/wave"
	"github.com/pkg/errors"
)

// Ingest reduces src to a real-valued sample series per cfg.Channel,
// halting early once cfg.MaxSamples samples have been produced (0 means
// unbounded). Reports a fatal error if src declares an unsupported channel
// count or contains no samples at all (§7).
func Ingest(src wave.Source, cfg Config) ([]float64, error) {
	channels := src.Channels()
	if channels < 1 || channels > 2 {
		return nil, errors.Errorf("unsupported channel count %d", channels)
	}

	var out []float64
	for {
		if cfg.MaxSamples > 0 && len(out) >= cfg.MaxSamples {
			break
		}
		frame, ok, err := src.Next()
		if err != nil {
			return nil, errors.Wrap(err, "could not read sample frame")
		}
		if !ok {
			break
		}
		out = append(out, reduce(frame, channels, cfg.Channel))
	}
	if len(out) == 0 {
		return nil, errors.New("waveform contains no samples")
	}
	return out, nil
}

// reduce collapses one multi-channel frame to a single real value.
func reduce(frame []int, channels int, ch Channel) float64 {
	if channels == 1 {
		return float64(frame[0])
	}
	switch ch {
	case ChannelRight:
		return float64(frame[1])
	case ChannelSum:
		return float64(frame[0] + frame[1])
	default: // ChannelLeft
		return float64(frame[0])
	}
}
