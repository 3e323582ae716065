package ffmpeg

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mattetti/sf2pack/internal/wav"
)

func TestSupports(t *testing.T) {
	tests := map[string]bool{
		"pad.aif":    true,
		"PAD.AIFF":   true,
		"lead.flac":  true,
		"loop.mp3":   true,
		"vox.ogg":    true,
		"kick.wav":   false,
		"snare.ebl":  false,
		"noextender": false,
	}
	for path, want := range tests {
		if got := Supports(path); got != want {
			t.Errorf("Supports(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestNewDecoderMissingBinary(t *testing.T) {
	_, err := NewDecoder(filepath.Join(t.TempDir(), "no-ffmpeg-here"), false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("NewDecoder error = %v, want ErrNotFound", err)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	d, err := NewDecoder("", false)
	if errors.Is(err, ErrNotFound) {
		t.Skip("ffmpeg is not installed")
	}
	if err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(t.TempDir(), "src.wav")
	samples := wav.Interleave(make([]int16, 441), make([]int16, 441))
	if err := wav.NewEncoder(false, false).WritePCM16(src, samples, 2, 44100); err != nil {
		t.Fatal(err)
	}

	a, err := d.Decode(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if a.Channels != 2 || a.SampleRate != 44100 || a.Frames() != 441 {
		t.Errorf("decoded %d channels at %d Hz, %d frames", a.Channels, a.SampleRate, a.Frames())
	}
}
