package sf2

// KeyMapping selects how melodic instruments spread samples across the keyboard.
type KeyMapping string

const (
	// KeyMappingNearest assigns every key to the sample with the closest root note.
	KeyMappingNearest KeyMapping = "nearest"
	// KeyMappingExplicit uses the key ranges supplied on each sample descriptor.
	KeyMappingExplicit KeyMapping = "explicit"
)

// Instrument is the input of one encode call.
type Instrument struct {
	Name      string // INAM, preset and instrument name; "Untitled SoundFont" when empty
	Author    string // IENG, omitted when empty
	Copyright string // ICOP, omitted when empty
	Comment   string // ICMT, omitted when empty

	// DrumKit places every sample on a single key (bank 128) instead of
	// spreading samples across the keyboard.
	DrumKit    bool
	KeyMapping KeyMapping
	Samples    []SampleDescriptor
}

// SampleDescriptor describes one source sample.
//
// Loop bounds are permissive: when LoopStart and LoopEnd are not both set,
// not ordered, or not within the sample frames, the sample is encoded
// without looping instead of being rejected.
type SampleDescriptor struct {
	Name string

	// Data holds mono samples in [-1, 1]. For stereo sources set Channels to 2
	// and provide interleaved frames in Interleaved (or Data).
	Data        []float32
	Interleaved []float32
	Channels    int

	SampleRate int // defaults to 44100

	// Optional overrides. RootNote defaults to 60, or to the GM drum map entry
	// for the sample name in drum kits.
	RootNote       *int
	LoopStart      *int
	LoopEnd        *int
	ExclusiveClass *int

	// KeyLo and KeyHi are only read by KeyMappingExplicit.
	KeyLo *int
	KeyHi *int
}

// SampleType is the channel role of a pooled sample.
type SampleType uint16

const (
	MonoSample  SampleType = 1
	RightSample SampleType = 2
	LeftSample  SampleType = 4
)

// Sample modes written to the sampleModes generator.
const (
	NoLoop         uint16 = 0
	ContinuousLoop uint16 = 1
)

// KeyRange is an inclusive MIDI key range.
type KeyRange struct {
	Lo int
	Hi int
}

// SampleRecord is a normalized mono sample ready to be pooled.
type SampleRecord struct {
	Name           string
	PCM            []int16
	SampleRate     int
	RootNote       int
	OriginalPitch  int
	ExclusiveClass int
	LoopStart      int // relative to PCM
	LoopEnd        int
	SampleMode     uint16
	SampleLink     int
	SampleType     SampleType
	KeyRange       *KeyRange
}

// Frames returns the number of PCM frames.
func (r *SampleRecord) Frames() int {
	return len(r.PCM)
}

// ZoneRecord binds a key range to a pooled sample.
type ZoneRecord struct {
	KeyLo          uint8
	KeyHi          uint8
	SampleID       int
	SampleMode     uint16
	Pan            int16
	ExclusiveClass int
}
