package kcs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeSource is a minimal wave.Source implementation for ingest tests.
type fakeSource struct {
	channels int
	frames   [][]int
	pos      int
	errAt    int // index at which Next returns an error, -1 for never.
}

func (f *fakeSource) SampleRate() int   { return 44100 }
func (f *fakeSource) Channels() int     { return f.channels }
func (f *fakeSource) BitDepth() int     { return 16 }
func (f *fakeSource) TotalSamples() int { return len(f.frames) }

func (f *fakeSource) Next() ([]int, bool, error) {
	if f.errAt >= 0 && f.pos == f.errAt {
		return nil, false, errors.New("simulated read failure")
	}
	if f.pos >= len(f.frames) {
		return nil, false, nil
	}
	fr := f.frames[f.pos]
	f.pos++
	return fr, true, nil
}

func TestIngestMono(t *testing.T) {
	src := &fakeSource{channels: 1, frames: [][]int{{1}, {2}, {3}}, errAt: -1}
	got, err := Ingest(src, DefaultConfig())
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	want := []float64{1, 2, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ingest() mismatch (-want +got):\n%s", diff)
	}
}

func TestIngestStereoChannelSelection(t *testing.T) {
	frames := [][]int{{1, 10}, {2, 20}}
	tests := []struct {
		name string
		ch   Channel
		want []float64
	}{
		{"left", ChannelLeft, []float64{1, 2}},
		{"right", ChannelRight, []float64{10, 20}},
		{"sum", ChannelSum, []float64{11, 22}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{channels: 2, frames: frames, errAt: -1}
			cfg := DefaultConfig()
			cfg.Channel = tt.ch
			got, err := Ingest(src, cfg)
			if err != nil {
				t.Fatalf("Ingest() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Ingest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIngestUnsupportedChannelCount(t *testing.T) {
	src := &fakeSource{channels: 3, errAt: -1}
	if _, err := Ingest(src, DefaultConfig()); err == nil {
		t.Error("Ingest() with 3 channels: want error, got nil")
	}
}

func TestIngestEmptySource(t *testing.T) {
	src := &fakeSource{channels: 1, errAt: -1}
	if _, err := Ingest(src, DefaultConfig()); err == nil {
		t.Error("Ingest() with no samples: want error, got nil")
	}
}

func TestIngestMaxSamplesCapsOutput(t *testing.T) {
	src := &fakeSource{channels: 1, frames: [][]int{{1}, {2}, {3}, {4}}, errAt: -1}
	cfg := DefaultConfig()
	cfg.MaxSamples = 2
	got, err := Ingest(src, cfg)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Ingest() len = %d, want 2", len(got))
	}
}

func TestIngestPropagatesReadError(t *testing.T) {
	src := &fakeSource{channels: 1, frames: [][]int{{1}, {2}}, errAt: 1}
	if _, err := Ingest(src, DefaultConfig()); err == nil {
		t.Error("Ingest() with failing source: want error, got nil")
	}
}
