/*
NAME
  options.go

DESCRIPTION
  options.go parses the "name=value" CLI options of §6 into a kcs.Config,
  using a declarative variable table adapted from the AusOcean "av"
  module's revid/config/variables.go (there, NetSender cloud variables
  updating a revid.Config; here, command-line options updating a
  kcs.Config).
*/

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
	"github.com/kansasfsk/kcsdecode/kcs"
)

// Option names, matching §6's CLI surface exactly.
const (
	optHi        = "hi"
	optLo        = "lo"
	optBaud      = "baud"
	optCUTS      = "CUTS"
	optFrame     = "frame"
	optMax       = "max"
	optSteps     = "steps"
	optWindow    = "window"
	optResample  = "resample"
	optKeep      = "keep"
	optGraph     = "graph"
	optChannel   = "channel"
	optBit       = "bit"
	optPrintData = "print_data"
)

// variable describes one name=value CLI option: its Update function
// applies a parsed value to cfg.
type variable struct {
	Name   string
	Update func(cfg *kcs.Config, v string, log logging.Logger)
}

var variables = []variable{
	{
		Name: optHi,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.HiHz = parseFloat(optHi, v, log)
		},
	},
	{
		Name: optLo,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.LoHz = parseFloat(optLo, v, log)
		},
	},
	{
		Name: optBaud,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.Baud = parseFloat(optBaud, v, log)
		},
	},
	{
		Name: optCUTS,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			if !parseBool(optCUTS, v, log) {
				return
			}
			cfg.HiHz, cfg.LoHz, cfg.Baud = kcs.PresetCUTS.Hi, kcs.PresetCUTS.Lo, kcs.PresetCUTS.Baud
		},
	},
	{
		Name: optFrame,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			layout, err := parseFrame(v)
			if err != nil {
				log.Warning("invalid frame spec", "value", v, "error", err.Error())
				return
			}
			cfg.Frame = layout
		},
	},
	{
		Name: optMax,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.MaxSamples = parseInt(optMax, v, log)
		},
	},
	{
		Name: optSteps,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.StepsPerBit = parseInt(optSteps, v, log)
		},
	},
	{
		Name: optWindow,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			w, ok := kcs.ParseWindowKind(v)
			if !ok {
				log.Warning("invalid window kind", "value", v)
				return
			}
			cfg.Window = w
		},
	},
	{
		Name: optKeep,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.KeepShortRuns = parseBool(optKeep, v, log)
		},
	},
	{
		Name: optGraph,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.GraphOutput = parseBool(optGraph, v, log)
		},
	},
	{
		Name: optChannel,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			c, ok := kcs.ParseChannel(v)
			if !ok {
				log.Warning("invalid channel selection", "value", v)
				return
			}
			cfg.Channel = c
		},
	},
	{
		Name: optBit,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.BitStreamOutput = parseBool(optBit, v, log)
		},
	},
	{
		Name: optPrintData,
		Update: func(cfg *kcs.Config, v string, log logging.Logger) {
			cfg.PrintData = parseBool(optPrintData, v, log)
		},
	},
}

// resampleOption is handled outside the Config mutation table because it
// drives an external-process step (kcs.Resample) rather than a Config
// field; parsed separately in main.go.
const resampleOption = optResample

// applyOptions parses each "name=value" argument in args and applies it to
// cfg using the variables table, in order. Unknown option names are logged
// and skipped (recovered locally, not fatal, per §7).
func applyOptions(cfg *kcs.Config, args []string, log logging.Logger) {
	byName := make(map[string]variable, len(variables))
	for _, v := range variables {
		byName[v.Name] = v
	}
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			log.Warning("ignoring malformed option", "arg", a)
			continue
		}
		if name == resampleOption {
			continue // consumed separately by main.go.
		}
		v, ok := byName[name]
		if !ok {
			log.Warning("ignoring unknown option", "name", name)
			continue
		}
		v.Update(cfg, value, log)
	}
}

// parseFrame parses a "NxY" frame spec (§6): N data bits, x in {N,E,O} for
// parity kind, Y stop bits.
func parseFrame(v string) (kcs.FrameLayout, error) {
	var n, y int
	var x byte
	if _, err := fmt.Sscanf(v, "%d%c%d", &n, &x, &y); err != nil {
		return kcs.FrameLayout{}, fmt.Errorf("could not parse frame spec %q: %w", v, err)
	}
	layout := kcs.FrameLayout{DataBits: n, StopBits: y}
	switch x {
	case 'N', 'n':
		layout.Parity, layout.ParityBits = kcs.ParityNone, 0
	case 'E', 'e':
		layout.Parity, layout.ParityBits = kcs.ParityEven, 1
	case 'O', 'o':
		layout.Parity, layout.ParityBits = kcs.ParityOdd, 1
	default:
		return kcs.FrameLayout{}, fmt.Errorf("invalid parity kind %q in frame spec %q", string(x), v)
	}
	return layout, nil
}

func parseFloat(name, v string, log logging.Logger) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warning(fmt.Sprintf("expected float for param %s", name), "value", v)
	}
	return f
}

func parseInt(name, v string, log logging.Logger) int {
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Warning(fmt.Sprintf("expected int for param %s", name), "value", v)
	}
	return i
}

func parseBool(name, v string, log logging.Logger) bool {
	switch strings.ToLower(v) {
	case "true", "y", "yes":
		return true
	case "false", "n", "no", "":
		return false
	default:
		log.Warning(fmt.Sprintf("expected bool for param %s", name), "value", v)
		return false
	}
}
