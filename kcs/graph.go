/*
NAME
  graph.go

DESCRIPTION
  graph.go renders the graph-mode two-column series to a PNG spectrogram
  as a bonus alongside the required .dat file (SPEC_FULL.md §5 supplement).
*/

package kcs

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WritePNG renders the same series written by WriteDat to
// "<basename>.png", purely as a convenience preview; the external plotter
// described in §6 still consumes the .dat file, this is additive.
func WritePNG(basename string, lo, hi []float64, th Thresholds) error {
	p := plot.New()
	p.Title.Text = "tone discrimination (" + basename + ")"
	p.X.Label.Text = "step"
	p.Y.Label.Text = "100 * (hi/avhi - lo/avlo)"

	pts := make(plotter.XYs, len(lo))
	for i := range lo {
		pts[i].X = float64(i)
		pts[i].Y = 100 * (hi[i]/th.AvHi - lo[i]/th.AvLo)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "could not build spectrogram line plot")
	}
	p.Add(line)

	name := basename + ".png"
	if err := p.Save(8*vg.Inch, 3*vg.Inch, name); err != nil {
		return errors.Wrapf(err, "could not save spectrogram %s", name)
	}
	return nil
}
