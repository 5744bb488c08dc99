/*
NAME
  wave.go

DESCRIPTION
  wave.go provides the waveform reader collaborator (spec §1, §4.1, §6):
  it opens a PCM container and exposes per-channel integer samples plus the
  format attributes the decoder's derived-quantity computation needs.

AUTHOR
  Adapted from the AusOcean "av" module's codec/wav package.
*/

// Package wave provides a waveform reader for the decoder's sample
// ingester.
package wave

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Source is the sample ingester's input contract (§4.1): a multi-channel
// PCM stream with a declared format and a pull interface yielding one
// multi-channel sample (a frame, one int per channel) at a time.
type Source interface {
	SampleRate() int
	Channels() int
	BitDepth() int
	TotalSamples() int // total per-channel frames; 0 if unknown.

	// Next returns the next multi-channel sample frame. ok is false once
	// the stream is exhausted.
	Next() (frame []int, ok bool, err error)
}

// wavSource is a Source backed by an in-memory decoded WAV buffer.
type wavSource struct {
	rate, channels, bitDepth int
	data                     []int
	pos                      int
}

func (s *wavSource) SampleRate() int   { return s.rate }
func (s *wavSource) Channels() int     { return s.channels }
func (s *wavSource) BitDepth() int     { return s.bitDepth }
func (s *wavSource) TotalSamples() int { return len(s.data) / s.channels }

func (s *wavSource) Next() ([]int, bool, error) {
	if s.pos+s.channels > len(s.data) {
		return nil, false, nil
	}
	frame := s.data[s.pos : s.pos+s.channels]
	s.pos += s.channels
	return frame, true, nil
}

// Open opens path (.wav or .flac, chosen by extension) and returns a
// Source. Reports a fatal error (§7) if the file cannot be opened, or the
// header declares an unsupported channel count.
func Open(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".flac":
		return openFLAC(path)
	default:
		return openWAV(path)
	}
}

func openWAV(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.Errorf("%s is not a valid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", path)
	}
	channels := int(dec.NumChans)
	if channels < 1 || channels > 2 {
		return nil, errors.Errorf("%s has unsupported channel count %d", path, channels)
	}
	if len(buf.Data) == 0 {
		return nil, errors.Errorf("%s contains no audio data", path)
	}
	return &wavSource{
		rate:     int(dec.SampleRate),
		channels: channels,
		bitDepth: int(dec.BitDepth),
		data:     buf.Data,
	}, nil
}
