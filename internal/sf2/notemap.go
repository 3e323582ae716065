package sf2

// noteRun is a contiguous key range mapped to one sample.
type noteRun struct {
	KeyLo    uint8
	KeyHi    uint8
	SampleID int
}

// mapNotes assigns every MIDI note to the record whose root note is closest.
// Ties keep the earliest record, so the result follows input order. Right
// channel records are skipped; their left partner is always found first.
func mapNotes(records []SampleRecord) [128]int {
	var assign [128]int
	for note := 0; note < 128; note++ {
		best, bestDist := -1, 0
		for i := range records {
			if records[i].SampleType == RightSample {
				continue
			}
			d := note - records[i].RootNote
			if d < 0 {
				d = -d
			}
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
		if best < 0 {
			best = 0
		}
		assign[note] = best
	}
	return assign
}

// compressRuns collapses a per-note assignment into runs covering 0-127.
func compressRuns(assign [128]int) []noteRun {
	var runs []noteRun
	start := 0
	for note := 1; note < 128; note++ {
		if assign[note] != assign[note-1] {
			runs = append(runs, noteRun{KeyLo: uint8(start), KeyHi: uint8(note - 1), SampleID: assign[note-1]})
			start = note
		}
	}
	return append(runs, noteRun{KeyLo: uint8(start), KeyHi: 127, SampleID: assign[127]})
}
