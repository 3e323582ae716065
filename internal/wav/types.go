package wav

// WAVHeader is the canonical 44 byte header of a PCM WAV file with a single
// data chunk.
type WAVHeader struct {
	// RIFF header
	RiffID   [4]byte // "RIFF"
	FileSize uint32  // 4 + (8 + SubChunk1Size) + (8 + SubChunk2Size)
	WaveID   [4]byte // "WAVE"

	// fmt sub-chunk
	FmtID         [4]byte // "fmt "
	FmtSize       uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // 1 for mono, 2 for stereo
	SampleRate    uint32  // e.g., 44100
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample/8
	BlockAlign    uint16  // NumChannels * BitsPerSample/8
	BitsPerSample uint16  // 8, 16, etc.

	// data sub-chunk
	DataID   [4]byte // "data"
	DataSize uint32  // NumSamples * NumChannels * BitsPerSample/8
}

// Audio is a decoded sample source.
type Audio struct {
	Channels   int
	SampleRate int

	// Data holds interleaved samples normalized to [-1, 1].
	Data []float32

	// Sampler metadata from the smpl chunk, nil when absent. LoopEnd is
	// exclusive.
	RootNote  *int
	LoopStart *int
	LoopEnd   *int
}

// Frames returns the number of sample frames.
func (a *Audio) Frames() int {
	if a.Channels < 1 {
		return 0
	}
	return len(a.Data) / a.Channels
}
