// Package verify reads encoded banks back with an independent SoundFont
// implementation and renders short auditions of them.
package verify

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/sinshu/go-meltysynth/meltysynth"
)

// ErrUnreadable is returned when the synthesizer cannot load a bank.
var ErrUnreadable = errors.New("verify: bank could not be loaded")

const (
	renderRate     = 44100
	velocity       = 100
	melodicChannel = 0
	drumChannel    = 9
	unpitched      = 255
)

// Report summarizes a bank as seen by the synthesizer.
type Report struct {
	Name       string
	PresetName string
	Bank       int
	Patch      int
	Samples    []SampleInfo
	Regions    []Region
}

// SampleInfo is one sample header. Loop points are relative to the sample start.
type SampleInfo struct {
	Name          string
	Frames        int
	LoopStart     int
	LoopEnd       int
	SampleRate    int
	OriginalPitch int
}

// Region is one instrument zone.
type Region struct {
	KeyLo  int
	KeyHi  int
	Sample string
	Root   int
}

func load(data []byte) (*meltysynth.SoundFont, error) {
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return sf, nil
}

// Inspect parses data and reports its preset, samples and instrument zones.
func Inspect(data []byte) (*Report, error) {
	sf, err := load(data)
	if err != nil {
		return nil, err
	}
	if len(sf.Presets) == 0 || len(sf.Instruments) == 0 {
		return nil, fmt.Errorf("%w: no preset or instrument", ErrUnreadable)
	}

	r := &Report{
		Name:       sf.Info.BankName,
		PresetName: sf.Presets[0].Name,
		Bank:       int(sf.Presets[0].BankNumber),
		Patch:      int(sf.Presets[0].PatchNumber),
	}
	for _, sh := range sf.SampleHeaders {
		r.Samples = append(r.Samples, SampleInfo{
			Name:          sh.Name,
			Frames:        int(sh.End) - int(sh.Start),
			LoopStart:     int(sh.StartLoop) - int(sh.Start),
			LoopEnd:       int(sh.EndLoop) - int(sh.Start),
			SampleRate:    int(sh.SampleRate),
			OriginalPitch: int(sh.OriginalPitch),
		})
	}
	for _, inst := range sf.Instruments {
		for _, region := range inst.Regions {
			reg := Region{
				KeyLo: int(region.GetKeyRangeStart()),
				KeyHi: int(region.GetKeyRangeEnd()),
			}
			if region.Sample != nil {
				reg.Sample = region.Sample.Name
				reg.Root = int(region.Sample.OriginalPitch)
			}
			r.Regions = append(r.Regions, reg)
		}
	}
	return r, nil
}

// Keys returns one representative key per zone in ascending order: the
// sample's root when the zone contains it, otherwise the zone's lowest key.
func (r *Report) Keys() []int {
	seen := make(map[int]bool)
	var keys []int
	for _, reg := range r.Regions {
		key := reg.KeyLo
		if reg.Root != unpitched && reg.Root >= reg.KeyLo && reg.Root <= reg.KeyHi {
			key = reg.Root
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Ints(keys)
	return keys
}

// Render plays key for the given duration and returns the stereo output.
// The note is released half way through so the release stage is audible.
// Drum kits play on the percussion channel.
func Render(data []byte, key int, seconds float64, drumKit bool) (left, right []float32, rate int, err error) {
	if key < 0 || key > 127 {
		return nil, nil, 0, fmt.Errorf("verify: key %d out of range", key)
	}
	sf, err := load(data)
	if err != nil {
		return nil, nil, 0, err
	}
	settings := meltysynth.NewSynthesizerSettings(renderRate)
	synth, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	frames := int(seconds * renderRate)
	if frames < 2 {
		frames = 2
	}
	left = make([]float32, frames)
	right = make([]float32, frames)

	channel := int32(melodicChannel)
	if drumKit {
		channel = drumChannel
	}
	held := frames / 2
	synth.NoteOn(channel, int32(key), velocity)
	synth.Render(left[:held], right[:held])
	synth.NoteOff(channel, int32(key))
	synth.Render(left[held:], right[held:])
	return left, right, renderRate, nil
}
