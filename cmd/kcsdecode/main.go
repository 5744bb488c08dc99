/*
NAME
  kcsdecode - recovers byte streams from Kansas City Standard / FSK
  cassette-tape audio recordings.

DESCRIPTION
  kcsdecode is the CLI entry point for the kcs decoding pipeline (§6).
  Adapted from the AusOcean "av" module's cmd/rv and cmd/audio-netsender
  logger-construction idiom, stripped of the NetSender/cloud machinery
  since this tool runs as a one-shot batch job, not a daemon.
*/

// Command kcsdecode decodes a PCM recording of a Kansas City Standard or
// related FSK cassette-tape encoding into one or more recovered text files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"github.com/kansasfsk/kcsdecode/kcs"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logging configuration, adapted from cmd/rv's constants.
const (
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	logLevel := flag.Int("loglevel", int(logging.Info), "log level (0=Debug .. 4=Fatal)")
	logFile := flag.String("logfile", "", "path to log file; stdout if unset")
	watchDir := flag.String("watch", "", "watch this directory and decode each new .wav/.flac file dropped into it")
	resampler := flag.String("resampler-bin", "", "path to the external resampler binary, used when resample=N is given")
	flag.Parse()

	var w io.Writer = os.Stdout
	if *logFile != "" {
		w = &lumberjack.Logger{Filename: *logFile, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	}
	log := logging.New(int8(*logLevel), w, true)

	if *watchDir != "" {
		if err := runWatch(*watchDir, flag.Args(), *resampler, log); err != nil {
			log.Fatal("watch mode failed", "error", err.Error())
		}
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: kcsdecode [options] <input-file> [name=value ...]")
		os.Exit(2)
	}
	path := flag.Arg(0)
	opts := flag.Args()[1:]

	if err := decodeOne(path, opts, *resampler, log); err != nil {
		log.Fatal("decode failed", "path", path, "error", err.Error())
		os.Exit(1)
	}
}

// decodeOne runs the full pipeline over one input file and writes its
// output artefacts (§6).
func decodeOne(path string, opts []string, resamplerBin string, log logging.Logger) error {
	cfg := kcs.DefaultConfig()
	cfg.Logger = log
	applyOptions(&cfg, opts, log)

	if mult, ok := findResampleOption(opts); ok {
		rate, err := parseResampleRate(mult, cfg.Baud)
		if err != nil {
			log.Warning("invalid resample option, decoding original file", "value", mult, "error", err.Error())
		} else if resamplerBin == "" {
			log.Warning("resample requested but -resampler-bin not set, decoding original file")
		} else {
			rpath, err := kcs.Resample(resamplerBin, path, rate)
			if err != nil {
				log.Warning("resample failed, decoding original file", "error", err.Error())
			} else {
				path = rpath
				cfg.AssumeResampled = true
			}
		}
	}

	dec := kcs.NewDecoder(cfg)
	res, err := dec.Run(path)
	if err != nil {
		return err
	}

	base := kcs.Basename(path)
	names, err := kcs.WriteFiles(base, res.Files)
	if err != nil {
		return err
	}
	log.Info("wrote output files", "count", len(names))

	if cfg.BitStreamOutput {
		if err := kcs.WriteBitStream(base, res.BitStream); err != nil {
			return err
		}
	}
	if cfg.GraphOutput {
		if err := kcs.WriteDat(base, res.Spectral.Lo, res.Spectral.Hi, res.Thresholds); err != nil {
			return err
		}
		if err := kcs.WritePNG(base, res.Spectral.Lo, res.Spectral.Hi, res.Thresholds); err != nil {
			log.Warning("could not render spectrogram preview", "error", err.Error())
		}
	}

	log.Info("summary", "files", len(res.Files), "max_variance", res.MaxVariance)
	return nil
}

// findResampleOption scans opts for "resample=VALUE" and returns VALUE.
func findResampleOption(opts []string) (string, bool) {
	for _, o := range opts {
		for i := 0; i < len(o); i++ {
			if o[i] == '=' {
				if o[:i] == resampleOption {
					return o[i+1:], true
				}
				break
			}
		}
	}
	return "", false
}

// parseResampleRate turns the "resample" option's multiplier value into a
// target sample rate (§6: "resample · baud Hz").
func parseResampleRate(v string, baud float64) (int, error) {
	var mult float64
	if _, err := fmt.Sscanf(v, "%f", &mult); err != nil {
		return 0, err
	}
	return int(mult * baud), nil
}
