/*
NAME
  output.go

DESCRIPTION
  output.go writes the decoder's output artefacts: per-program text files,
  the optional bitstream file, and the optional two-column graph data file
  (§4.6, §6).
*/

package kcs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// WriteFiles writes each entry of files to "<basename>-NNN.txt", 1-based
// and zero-padded to three digits, as raw bytes.
func WriteFiles(basename string, files [][]byte) ([]string, error) {
	names := make([]string, 0, len(files))
	for i, f := range files {
		name := fmt.Sprintf("%s-%03d.txt", basename, i+1)
		if err := os.WriteFile(name, f, 0644); err != nil {
			return names, errors.Wrapf(err, "could not write output file %s", name)
		}
		names = append(names, name)
	}
	return names, nil
}

// WriteBitStream writes the ASCII '0'/'1' bitstream to "<basename>.bit".
func WriteBitStream(basename, bits string) error {
	name := basename + ".bit"
	if err := os.WriteFile(name, []byte(bits), 0644); err != nil {
		return errors.Wrapf(err, "could not write bitstream file %s", name)
	}
	return nil
}

// WriteDat writes the two-column numeric graph series of §6
// ("step index, 100·(hi[i]/avhi − lo[i]/avlo)") to "<basename>.dat",
// consumed downstream by an external plotter.
func WriteDat(basename string, lo, hi []float64, th Thresholds) error {
	var sb strings.Builder
	for i := range lo {
		v := 100 * (hi[i]/th.AvHi - lo[i]/th.AvLo)
		fmt.Fprintf(&sb, "%d %f\n", i, v)
	}
	name := basename + ".dat"
	if err := os.WriteFile(name, []byte(sb.String()), 0644); err != nil {
		return errors.Wrapf(err, "could not write graph data file %s", name)
	}
	return nil
}

// Basename strips the directory and extension from path, giving the
// "<basename>" prefix used throughout §6's output naming.
func Basename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
