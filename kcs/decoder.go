/*
NAME
  decoder.go

DESCRIPTION
  decoder.go is the orchestrating value that owns configuration, derived
  constants, and the per-stage arrays (§9, "Process-wide state"): it wires
  the sample ingester, spectral analyzer, thresholder, bit-timeline
  builder, and frame decoder into the single end-to-end pipeline of §2.
*/

package kcs

import (
	"github.com/kansasfsk/kcsdecode/kcs/wave"
	"github.com/pkg/errors"
)

// Decoder holds a frozen Config and runs the full decode pipeline over one
// input file.
type Decoder struct {
	Cfg Config
}

// NewDecoder returns a Decoder for cfg. cfg is not mutated afterward.
func NewDecoder(cfg Config) *Decoder {
	return &Decoder{Cfg: cfg}
}

// Result is everything the pipeline produced for one input file.
type Result struct {
	Files       [][]byte
	BitStream   string
	MaxVariance float64
	Derived     Derived
	Thresholds  Thresholds
	Spectral    TrimResult // post-trim spectral series, retained for graph output.
}

// Run executes the full pipeline (§2) against path and returns the result.
func (d *Decoder) Run(path string) (Result, error) {
	cfg := d.Cfg
	log := cfg.Logger

	src, err := wave.Open(path)
	if err != nil {
		return Result{}, errors.Wrap(err, "could not open input")
	}
	if log != nil {
		log.Info("opened input", "path", path, "rate", src.SampleRate(), "channels", src.Channels())
	}

	samples, err := Ingest(src, cfg)
	if err != nil {
		return Result{}, errors.Wrap(err, "sample ingestion failed")
	}
	if log != nil {
		log.Info("ingested samples", "count", len(samples))
	}

	der := NewDerived(cfg, float64(src.SampleRate()))
	if log != nil {
		log.Info("derived constants",
			"W", der.W, "step", der.Step, "bit_width", der.BitWidth,
			"lo_bin", der.LoBin, "hi_bin", der.HiBin)
	}

	spec := Analyze(samples, cfg, der)
	if len(spec.Lo) == 0 {
		if log != nil {
			log.Info("no spectral steps produced; nothing to decode")
		}
		return Result{Derived: der}, nil
	}

	trim := Trim(spec)
	if log != nil {
		log.Info("trimmed leading/trailing silence",
			"lead", trim.LeadCount, "trail", trim.TrailCount, "remaining", len(trim.Lo))
	}

	th := Refine(trim.Lo, trim.Hi)
	if log != nil {
		log.Info("adaptive thresholds", "avlo", th.AvLo, "avhi", th.AvHi)
	}

	bits := BuildBits(trim.Lo, trim.Hi, th)
	if !cfg.GraphOutput {
		Smooth(bits, cfg.StepsPerBit)
	}

	dec := Decode(bits, cfg, der)
	if log != nil {
		log.Info("decode complete",
			"files", len(dec.Files), "max_variance", dec.MaxVariance)
	}

	return Result{
		Files:       dec.Files,
		BitStream:   dec.BitStream,
		MaxVariance: dec.MaxVariance,
		Derived:     der,
		Thresholds:  th,
		Spectral:    trim,
	}, nil
}
