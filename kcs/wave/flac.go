/*
NAME
  flac.go

DESCRIPTION
  flac.go provides a Source implementation for FLAC-compressed tape
  recordings, adapted from the AusOcean "av" module's exp/flac decode loop
  (there it decoded to a WAV byte slice; here it decodes directly into the
  ingester's per-channel sample buffer).
*/

package wave

import (
	"io"
	"os"

	"github.com/mewkiz/flac"
	"github.com/pkg/errors"
)

func openFLAC(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer f.Close()

	stream, err := flac.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse flac stream %s", path)
	}

	channels := int(stream.Info.NChannels)
	if channels < 1 || channels > 2 {
		return nil, errors.Errorf("%s has unsupported channel count %d", path, channels)
	}

	var data []int
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "could not decode flac frame in %s", path)
		}
		for i := 0; i < frame.Subframes[0].NSamples; i++ {
			for _, sf := range frame.Subframes {
				data = append(data, int(sf.Samples[i]))
			}
		}
	}
	if len(data) == 0 {
		return nil, errors.Errorf("%s contains no audio data", path)
	}

	return &wavSource{
		rate:     int(stream.Info.SampleRate),
		channels: channels,
		bitDepth: int(stream.Info.BitsPerSample),
		data:     data,
	}, nil
}
