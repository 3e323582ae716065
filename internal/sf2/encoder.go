package sf2

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// Encoder turns instruments into SoundFont 2 banks. An Encoder holds no
// per-call state and can be shared between goroutines.
type Encoder struct {
	debug bool
}

// NewEncoder creates a new SF2 encoder
func NewEncoder(debug bool) *Encoder {
	return &Encoder{debug: debug}
}

// Debug logs a message if debug mode is enabled
func (e *Encoder) Debug(message string) {
	if e.debug {
		fmt.Println(message)
	}
}

// Encode builds the complete SF2 file for inst. A nil instrument encodes an
// untitled bank holding a single silent sample.
func (e *Encoder) Encode(inst *Instrument) ([]byte, error) {
	if inst == nil {
		inst = &Instrument{}
	}

	records := normalizeSamples(inst)
	zones, err := buildZones(inst, records)
	if err != nil {
		return nil, err
	}

	if e.debug {
		e.dumpLayout(records, zones)
	}

	data, err := assemble(inst, records, zones)
	if err != nil {
		return nil, err
	}
	e.Debug(fmt.Sprintf("Encoded %d samples, %d zones, %d bytes", len(records), len(zones), len(data)))
	return data, nil
}

// Encode builds an SF2 file with a non-debug encoder.
func Encode(inst *Instrument) ([]byte, error) {
	return NewEncoder(false).Encode(inst)
}

func (e *Encoder) dumpLayout(records []SampleRecord, zones []ZoneRecord) {
	for i := range records {
		r := &records[i]
		e.Debug(fmt.Sprintf("Sample %d: %s frames=%d rate=%d root=%s loop=%d-%d mode=%d link=%d type=%d",
			i, r.Name, r.Frames(), r.SampleRate, midi.Note(uint8(r.RootNote)).String(),
			r.LoopStart, r.LoopEnd, r.SampleMode, r.SampleLink, r.SampleType))
	}
	for i, z := range zones {
		e.Debug(fmt.Sprintf("Zone %d: %s-%s sample=%d pan=%d class=%d",
			i, midi.Note(z.KeyLo).String(), midi.Note(z.KeyHi).String(), z.SampleID, z.Pan, z.ExclusiveClass))
	}
}
