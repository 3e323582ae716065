package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattetti/sf2pack/internal/ebl"
	"github.com/mattetti/sf2pack/internal/ffmpeg"
	"github.com/mattetti/sf2pack/internal/manifest"
	"github.com/mattetti/sf2pack/internal/notename"
	"github.com/mattetti/sf2pack/internal/sf2"
	"github.com/mattetti/sf2pack/internal/verify"
	"github.com/mattetti/sf2pack/internal/wav"
)

// ErrNoSamples is returned when a directory holds no supported audio files.
var ErrNoSamples = errors.New("no supported audio files found")

// Options represents the conversion options
type Options struct {
	Debug      bool
	NoWrite    bool
	DrumKit    bool
	Author     string
	SampleRate int    // used for sources without a rate
	FFmpegPath string // empty means auto-detect

	Verify         bool    // read the bank back and print its layout
	PreviewSeconds float64 // length of the audition render
	PreviewWAV     string  // audition render destination, skipped when empty
	DemoMIDI       string  // demo MIDI destination, skipped when empty
}

// Result describes one written bank.
type Result struct {
	Path     string
	Size     int
	Samples  int
	Report   *verify.Report
	Preview  string
	MIDI     string
	Duration time.Duration
}

// Converter handles the conversion process
type Converter struct {
	options    Options
	parser     *ebl.Parser
	encoder    *sf2.Encoder
	wavEncoder *wav.Encoder
	ffmpeg     *ffmpeg.Decoder
}

// NewConverter creates a new converter
func NewConverter(options Options) *Converter {
	if options.SampleRate <= 0 {
		options.SampleRate = sf2.DefaultSampleRate
	}
	if options.PreviewSeconds <= 0 {
		options.PreviewSeconds = 2
	}
	return &Converter{
		options:    options,
		parser:     ebl.NewParser(options.Debug),
		encoder:    sf2.NewEncoder(options.Debug),
		wavEncoder: wav.NewEncoder(options.Debug, options.NoWrite),
	}
}

// Debug logs a message if debug mode is enabled
func (c *Converter) Debug(message string) {
	if c.options.Debug {
		fmt.Println(message)
	}
}

// Supported reports whether path is an audio file the converter can read.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".ebl":
		return true
	}
	return ffmpeg.Supports(path)
}

// loadAudio decodes one source file.
func (c *Converter) loadAudio(ctx context.Context, path string) (*wav.Audio, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(path)
	case ".ebl":
		f, err := c.parser.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return f.Audio(), nil
	}
	if c.ffmpeg == nil {
		d, err := ffmpeg.NewDecoder(c.options.FFmpegPath, c.options.Debug)
		if err != nil {
			return nil, err
		}
		c.ffmpeg = d
	}
	return c.ffmpeg.Decode(ctx, path)
}

// BuildDirectory turns every supported audio file under dir into one
// instrument. Files are taken in path order so repeated runs produce the
// same bank.
func (c *Converter) BuildDirectory(ctx context.Context, dir, name string) (*sf2.Instrument, error) {
	fmt.Printf("Scanning %s/ ...", dir)

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning directory: %w", err)
	}
	if len(files) == 0 {
		fmt.Println()
		return nil, fmt.Errorf("%w in %s", ErrNoSamples, dir)
	}
	sort.Strings(files)
	fmt.Printf("Done.\nPlanning to import %d samples from %s/\n", len(files), dir)

	if name == "" {
		name = filepath.Base(filepath.Clean(dir))
	}
	inst := &sf2.Instrument{
		Name:    name,
		Author:  c.options.Author,
		DrumKit: c.options.DrumKit,
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := c.loadAudio(ctx, path)
		if err != nil {
			return nil, err
		}
		desc := c.descriptor(baseName(path), a, inst.DrumKit)
		c.Debug(fmt.Sprintf("Imported %s: %d frames, %d channels", path, a.Frames(), a.Channels))
		inst.Samples = append(inst.Samples, desc)
	}
	return inst, nil
}

// BuildManifest loads the samples listed in m. Manifest values take
// precedence over metadata found in the files.
func (c *Converter) BuildManifest(ctx context.Context, m *manifest.Manifest) (*sf2.Instrument, error) {
	inst := &sf2.Instrument{
		Name:       m.Name,
		Author:     m.Author,
		Copyright:  m.Copyright,
		Comment:    m.Comment,
		DrumKit:    m.DrumKit || c.options.DrumKit,
		KeyMapping: sf2.KeyMapping(m.KeyMapping),
	}
	if inst.Author == "" {
		inst.Author = c.options.Author
	}

	for _, s := range m.Samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := c.loadAudio(ctx, s.File)
		if err != nil {
			return nil, err
		}
		name := s.Name
		if name == "" {
			name = baseName(s.File)
		}
		desc := c.descriptor(name, a, inst.DrumKit)
		if s.RootNote != nil {
			desc.RootNote = s.RootNote
		}
		if s.LoopStart != nil && s.LoopEnd != nil {
			desc.LoopStart, desc.LoopEnd = s.LoopStart, s.LoopEnd
		}
		desc.KeyLo, desc.KeyHi = s.KeyLo, s.KeyHi
		desc.ExclusiveClass = s.ExclusiveClass
		inst.Samples = append(inst.Samples, desc)
	}
	return inst, nil
}

// descriptor maps decoded audio to an encoder sample. The root note comes
// from the smpl chunk, then from a note name in the file name. Drum kits
// skip the file name so the drum map can place the sample.
func (c *Converter) descriptor(name string, a *wav.Audio, drumKit bool) sf2.SampleDescriptor {
	desc := sf2.SampleDescriptor{
		Name:       name,
		Channels:   a.Channels,
		SampleRate: a.SampleRate,
		RootNote:   a.RootNote,
		LoopStart:  a.LoopStart,
		LoopEnd:    a.LoopEnd,
	}
	if desc.SampleRate <= 0 {
		desc.SampleRate = c.options.SampleRate
	}
	if a.Channels == 2 {
		desc.Interleaved = a.Data
	} else {
		desc.Data = a.Data
	}
	if desc.RootNote == nil && !drumKit {
		if key, ok := notename.Parse(name); ok {
			desc.RootNote = &key
		}
	}
	return desc
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Convert encodes inst, writes it to outputPath and produces the optional
// verification report, audition render and demo MIDI file.
func (c *Converter) Convert(ctx context.Context, inst *sf2.Instrument, outputPath string) (*Result, error) {
	startTime := time.Now()

	data, err := c.encoder.Encode(inst)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s: %w", outputPath, err)
	}
	res := &Result{Path: outputPath, Size: len(data), Samples: len(inst.Samples)}

	if !c.options.NoWrite {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return nil, fmt.Errorf("error creating output directory: %w", err)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return nil, fmt.Errorf("error writing %s: %w", outputPath, err)
		}
	}

	if c.options.Verify || c.options.PreviewWAV != "" || c.options.DemoMIDI != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := verify.Inspect(data)
		if err != nil {
			return nil, err
		}
		res.Report = report
		if c.options.Verify {
			c.printReport(report)
		}
	}

	if c.options.PreviewWAV != "" {
		if err := c.writePreview(data, inst.DrumKit, res); err != nil {
			return nil, err
		}
	}

	if c.options.DemoMIDI != "" && !c.options.NoWrite {
		if err := verify.WriteDemoMIDI(c.options.DemoMIDI, res.Report.Keys(), inst.DrumKit); err != nil {
			return nil, err
		}
		res.MIDI = c.options.DemoMIDI
	}

	res.Duration = time.Since(startTime)
	return res, nil
}

// writePreview renders the middle zone key and saves it as a WAV file.
func (c *Converter) writePreview(data []byte, drumKit bool, res *Result) error {
	keys := res.Report.Keys()
	if len(keys) == 0 {
		return nil
	}
	key := keys[len(keys)/2]

	left, right, rate, err := verify.Render(data, key, c.options.PreviewSeconds, drumKit)
	if err != nil {
		return err
	}
	l := make([]int16, len(left))
	r := make([]int16, len(right))
	for i := range left {
		l[i] = sf2.FloatToPCM16(left[i])
		r[i] = sf2.FloatToPCM16(right[i])
	}
	c.Debug(fmt.Sprintf("Rendered key %d for %.2fs", key, c.options.PreviewSeconds))
	if err := c.wavEncoder.WritePCM16(c.options.PreviewWAV, wav.Interleave(l, r), 2, rate); err != nil {
		return err
	}
	res.Preview = c.options.PreviewWAV
	return nil
}

func (c *Converter) printReport(r *verify.Report) {
	fmt.Printf("Verified %q: bank %d preset %d, %d samples, %d zones\n",
		r.Name, r.Bank, r.Patch, len(r.Samples), len(r.Regions))
	for _, reg := range r.Regions {
		fmt.Printf("  keys %3d-%3d  %s\n", reg.KeyLo, reg.KeyHi, reg.Sample)
	}
}
