package verify

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	demoTempo       = 120
	ticksPerQuarter = 960
)

// WriteDemoMIDI writes a single track file that plays each key for a quarter
// note. Drum kits use the percussion channel.
func WriteDemoMIDI(path string, keys []int, drumKit bool) error {
	ticks := smf.MetricTicks(ticksPerQuarter)
	s := smf.New()
	s.TimeFormat = ticks

	ch := uint8(melodicChannel)
	if drumKit {
		ch = drumChannel
	}

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(demoTempo))
	for _, key := range keys {
		if key < 0 || key > 127 {
			return fmt.Errorf("verify: key %d out of range", key)
		}
		tr.Add(0, midi.NoteOn(ch, uint8(key), velocity))
		tr.Add(ticks.Ticks4th(), midi.NoteOff(ch, uint8(key)))
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return fmt.Errorf("error adding demo track: %w", err)
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
