package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	gowav "github.com/go-audio/wav"
)

var (
	// ErrInvalidWAV is returned for files that are not readable PCM WAV files.
	ErrInvalidWAV = errors.New("wav: invalid file")
	// ErrUnsupportedChannels is returned for sources with more than two channels.
	ErrUnsupportedChannels = errors.New("wav: only mono and stereo sources are supported")
	// ErrUnsupportedFormat is returned for non integer PCM encodings.
	ErrUnsupportedFormat = errors.New("wav: unsupported audio format")
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Decode reads the WAV file at path.
func Decode(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	a, err := DecodeReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// DecodeReader decodes a WAV stream into normalized float samples and picks up
// the root note and first loop of an optional smpl chunk.
func DecodeReader(r io.ReadSeeker) (*Audio, error) {
	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
		}
		return nil, ErrInvalidWAV
	}
	if d.WavAudioFormat != formatPCM && d.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}
	if d.NumChans > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, d.NumChans)
	}

	// Metadata may live after the data chunk, so read it first and rewind.
	d.ReadMetadata()
	if err := d.Rewind(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}

	a := &Audio{
		Channels:   int(d.NumChans),
		SampleRate: int(d.SampleRate),
		Data:       normalize(buf.Data, int(d.BitDepth)),
	}
	if d.Metadata != nil && d.Metadata.SamplerInfo != nil {
		applySampler(a, d.Metadata.SamplerInfo)
	}
	return a, nil
}

// normalize scales integer samples to [-1, 1]. 8-bit WAV data is unsigned.
func normalize(data []int, bitDepth int) []float32 {
	out := make([]float32, len(data))
	if bitDepth == 8 {
		for i, v := range data {
			out[i] = float32(v-128) / 128
		}
		return out
	}
	scale := float32(int64(1) << uint(bitDepth-1))
	for i, v := range data {
		out[i] = float32(v) / scale
	}
	return out
}

func applySampler(a *Audio, info *gowav.SamplerInfo) {
	if info.MIDIUnityNote <= 127 {
		root := int(info.MIDIUnityNote)
		a.RootNote = &root
	}
	if len(info.Loops) == 0 || info.Loops[0] == nil {
		return
	}
	// smpl loop ends are inclusive.
	start := int(info.Loops[0].Start)
	end := int(info.Loops[0].End) + 1
	a.LoopStart, a.LoopEnd = &start, &end
}
