/*
NAME
  resample.go

DESCRIPTION
  resample.go invokes the optional upstream resampler (§6, external
  collaborator): a separate process that rewrites the input to
  "<basename>-r.wav" at resample*baud Hz. Adapted from the teacher's
  os/exec invocation pattern in cmd/speaker/main.go (there, "aplay"; here,
  the configured resampler binary).
*/

package kcs

import (
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// Resample invokes resamplerBin on path, producing "<basename>-r.wav" at
// rate Hz, and returns that output path. This is a thin external-process
// collaborator; it contains no decoding logic of its own.
func Resample(resamplerBin, path string, rate int) (string, error) {
	out := Basename(path) + "-r.wav"
	cmd := exec.Command(resamplerBin, path, out, strconv.Itoa(rate))
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "resampler %s failed on %s", resamplerBin, path)
	}
	return out, nil
}
