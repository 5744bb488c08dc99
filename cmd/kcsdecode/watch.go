/*
NAME
  watch.go

DESCRIPTION
  watch.go implements the supplement "directory watch" mode
  (SPEC_FULL.md §4.2): decode each new .wav/.flac file dropped into a
  directory, using fsnotify the same way the AusOcean "av" module's device
  packages watch for hotplug/config changes.
*/

package main

import (
	"path/filepath"
	"strings"

	"github.com/ausocean/utils/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// runWatch watches dir for .wav/.flac files and decodes such a file on every
// create or write event for it, so a file written in several chunks is
// decoded more than once; opts and resamplerBin apply to every decode.
func runWatch(dir string, opts []string, resamplerBin string, log logging.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "could not create directory watcher")
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return errors.Wrapf(err, "could not watch %s", dir)
	}
	log.Info("watching for tape recordings", "dir", dir)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isAudioFile(ev.Name) {
				continue
			}
			log.Info("decoding new recording", "path", ev.Name)
			if err := decodeOne(ev.Name, opts, resamplerBin, log); err != nil {
				log.Error("decode failed", "path", ev.Name, "error", err.Error())
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err.Error())
		}
	}
}

func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".flac":
		return true
	default:
		return false
	}
}
