package converter

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattetti/sf2pack/internal/manifest"
	"github.com/mattetti/sf2pack/internal/wav"
)

// writeTone writes a short mono sine WAV fixture.
func writeTone(t *testing.T, path string, frames int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = int16(12000 * math.Sin(2*math.Pi*440*float64(i)/44100))
	}
	if err := wav.NewEncoder(false, false).WritePCM16(path, samples, 1, 44100); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

func TestBuildDirectoryMelodic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Piano")
	writeTone(t, filepath.Join(dir, "Piano C5.wav"), 2000)
	writeTone(t, filepath.Join(dir, "Piano C3.wav"), 2000)
	writeTone(t, filepath.Join(dir, "extra", "Pad.wav"), 500)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewConverter(Options{Author: "Tester"})
	inst, err := c.BuildDirectory(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("BuildDirectory: %v", err)
	}
	if inst.Name != "Piano" {
		t.Errorf("name = %q, want %q", inst.Name, "Piano")
	}
	if inst.Author != "Tester" {
		t.Errorf("author = %q", inst.Author)
	}
	if len(inst.Samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(inst.Samples))
	}

	want := []struct {
		name string
		root int
	}{
		{"Piano C3", 48},
		{"Piano C5", 72},
		{"Pad", -1},
	}
	for i, w := range want {
		s := inst.Samples[i]
		if s.Name != w.name {
			t.Errorf("sample %d name = %q, want %q", i, s.Name, w.name)
		}
		if w.root < 0 {
			if s.RootNote != nil {
				t.Errorf("sample %d root = %d, want none", i, *s.RootNote)
			}
			continue
		}
		if s.RootNote == nil || *s.RootNote != w.root {
			t.Errorf("sample %d root = %v, want %d", i, s.RootNote, w.root)
		}
		if s.SampleRate != 44100 || s.Channels != 1 {
			t.Errorf("sample %d rate/channels = %d/%d", i, s.SampleRate, s.Channels)
		}
	}
}

func TestBuildDirectoryEmpty(t *testing.T) {
	c := NewConverter(Options{})
	_, err := c.BuildDirectory(context.Background(), t.TempDir(), "Empty")
	if !errors.Is(err, ErrNoSamples) {
		t.Fatalf("err = %v, want ErrNoSamples", err)
	}
}

func TestBuildDirectoryCancelled(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "a.wav"), 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewConverter(Options{}).BuildDirectory(ctx, dir, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestConvertWritesAndVerifies(t *testing.T) {
	src := t.TempDir()
	writeTone(t, filepath.Join(src, "Lead C3.wav"), 4000)
	writeTone(t, filepath.Join(src, "Lead C5.wav"), 4000)

	out := t.TempDir()
	c := NewConverter(Options{
		Verify:         true,
		PreviewSeconds: 0.25,
		PreviewWAV:     filepath.Join(out, "preview.wav"),
		DemoMIDI:       filepath.Join(out, "demo.mid"),
	})
	ctx := context.Background()
	inst, err := c.BuildDirectory(ctx, src, "Lead")
	if err != nil {
		t.Fatal(err)
	}
	res, err := c.Convert(ctx, inst, filepath.Join(out, "banks", "Lead.sf2"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	info, err := os.Stat(res.Path)
	if err != nil {
		t.Fatalf("bank not written: %v", err)
	}
	if int(info.Size()) != res.Size {
		t.Errorf("file size %d, result size %d", info.Size(), res.Size)
	}
	if res.Samples != 2 {
		t.Errorf("samples = %d, want 2", res.Samples)
	}
	if res.Report == nil {
		t.Fatal("missing report")
	}
	if res.Report.Bank != 0 || res.Report.PresetName != "Lead" {
		t.Errorf("report preset %q bank %d", res.Report.PresetName, res.Report.Bank)
	}
	keys := res.Report.Keys()
	if len(keys) != 2 || keys[0] != 48 || keys[1] != 72 {
		t.Errorf("keys = %v, want [48 72]", keys)
	}

	preview, err := wav.Decode(res.Preview)
	if err != nil {
		t.Fatalf("decoding preview: %v", err)
	}
	if preview.Channels != 2 || preview.SampleRate != 44100 {
		t.Errorf("preview channels/rate = %d/%d", preview.Channels, preview.SampleRate)
	}
	if preview.Frames() != 11025 {
		t.Errorf("preview frames = %d, want 11025", preview.Frames())
	}

	midiData, err := os.ReadFile(res.MIDI)
	if err != nil {
		t.Fatalf("demo MIDI not written: %v", err)
	}
	if string(midiData[:4]) != "MThd" {
		t.Errorf("demo MIDI header = %q", midiData[:4])
	}
}

func TestConvertNoWrite(t *testing.T) {
	src := t.TempDir()
	writeTone(t, filepath.Join(src, "Tone.wav"), 200)

	out := filepath.Join(t.TempDir(), "Tone.sf2")
	c := NewConverter(Options{NoWrite: true, DemoMIDI: filepath.Join(t.TempDir(), "demo.mid")})
	inst, err := c.BuildDirectory(context.Background(), src, "")
	if err != nil {
		t.Fatal(err)
	}
	res, err := c.Convert(context.Background(), inst, out)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Size == 0 {
		t.Error("expected encoded size")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("bank written in no-write mode: %v", err)
	}
	if res.MIDI != "" {
		t.Errorf("demo MIDI written in no-write mode: %s", res.MIDI)
	}
}

func TestDrumDirectory(t *testing.T) {
	src := t.TempDir()
	writeTone(t, filepath.Join(src, "kick.wav"), 300)
	writeTone(t, filepath.Join(src, "snare D3.wav"), 300)

	c := NewConverter(Options{DrumKit: true, Verify: true, NoWrite: true})
	inst, err := c.BuildDirectory(context.Background(), src, "Kit")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range inst.Samples {
		if s.RootNote != nil {
			t.Errorf("drum sample %q took root %d from its name", s.Name, *s.RootNote)
		}
	}
	res, err := c.Convert(context.Background(), inst, filepath.Join(t.TempDir(), "Kit.sf2"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Report.Bank != 128 {
		t.Errorf("bank = %d, want 128", res.Report.Bank)
	}
	if len(res.Report.Regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(res.Report.Regions))
	}
	if r := res.Report.Regions[0]; r.KeyLo != 36 || r.KeyHi != 36 {
		t.Errorf("kick zone = %d-%d, want 36-36", r.KeyLo, r.KeyHi)
	}
}

func TestBuildManifest(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "low.wav"), 1000)
	writeTone(t, filepath.Join(dir, "high.wav"), 1000)
	doc := `{
		"name": "Split",
		"keyMapping": "explicit",
		"samples": [
			{"file": "low.wav", "rootNote": 48, "keyLo": 0, "keyHi": 59, "loopStart": 100, "loopEnd": 900},
			{"file": "high.wav", "name": "Top", "rootNote": 72, "keyLo": 60, "keyHi": 127}
		]
	}`
	m, err := manifest.Parse([]byte(doc), dir)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}

	c := NewConverter(Options{Author: "Fallback", Verify: true, NoWrite: true})
	inst, err := c.BuildManifest(context.Background(), m)
	if err != nil {
		t.Fatalf("BuildManifest: %v", err)
	}
	if inst.Author != "Fallback" {
		t.Errorf("author = %q, want fallback", inst.Author)
	}
	if inst.Samples[0].Name != "low" || inst.Samples[1].Name != "Top" {
		t.Errorf("names = %q, %q", inst.Samples[0].Name, inst.Samples[1].Name)
	}
	if *inst.Samples[0].LoopStart != 100 || *inst.Samples[0].LoopEnd != 900 {
		t.Errorf("loop = %d-%d", *inst.Samples[0].LoopStart, *inst.Samples[0].LoopEnd)
	}

	res, err := c.Convert(context.Background(), inst, filepath.Join(dir, "Split.sf2"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	regions := res.Report.Regions
	if len(regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(regions))
	}
	if regions[0].KeyLo != 0 || regions[0].KeyHi != 59 || regions[1].KeyLo != 60 || regions[1].KeyHi != 127 {
		t.Errorf("regions = %+v", regions)
	}
	if s := res.Report.Samples[0]; s.LoopStart != 100 || s.LoopEnd != 900 {
		t.Errorf("sample loop = %d-%d, want 100-900", s.LoopStart, s.LoopEnd)
	}
}

func TestSupported(t *testing.T) {
	for path, want := range map[string]bool{
		"a.wav":  true,
		"b.EBL":  true,
		"c.flac": true,
		"d.txt":  false,
		"e":      false,
	} {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v, want %v", path, got, want)
		}
	}
}
