package wave

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// encodeTestWAV writes samples (16-bit PCM) to a real WAV file using the
// go-audio/wav encoder, so Open()'s decode path is exercised against output
// from the library's own writer rather than a hand-rolled one.
func encodeTestWAV(t *testing.T, samples []int, channels, rate int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tape.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("could not create test wav file: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Data:           samples,
		Format:         &audio.Format{SampleRate: rate, NumChannels: channels},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Encoder.Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Encoder.Close() error = %v", err)
	}
	return path
}

func TestOpenWAVRoundTrip(t *testing.T) {
	samples := []int{100, -100, 200, -200}
	path := encodeTestWAV(t, samples, 1, 8000)

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	var got []int
	for {
		frame, ok, err := src.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if !ok {
			break
		}
		got = append(got, frame[0])
	}
	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if got[i] != s {
			t.Errorf("sample[%d] = %d, want %d", i, got[i], s)
		}
	}
}

func TestOpenUnsupportedChannelCount(t *testing.T) {
	samples := make([]int, 6)
	path := encodeTestWAV(t, samples, 3, 8000)
	if _, err := Open(path); err == nil {
		t.Error("Open() with 3 channels: want error, got nil")
	}
}
