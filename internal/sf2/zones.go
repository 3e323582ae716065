package sf2

import "fmt"

// panHard is the pan generator value for a hard-left or hard-right stereo half,
// in 0.1% units.
const panHard = 500

// buildZones selects the zone layout for the instrument.
func buildZones(inst *Instrument, records []SampleRecord) ([]ZoneRecord, error) {
	switch {
	case inst.DrumKit:
		return drumZones(records), nil
	case inst.KeyMapping == KeyMappingExplicit:
		return explicitZones(records)
	default:
		return melodicZones(records, compressRuns(mapNotes(records))), nil
	}
}

// melodicZones emits one zone per note run, doubled for stereo samples.
func melodicZones(records []SampleRecord, runs []noteRun) []ZoneRecord {
	zones := make([]ZoneRecord, 0, len(runs)*2)
	for _, run := range runs {
		zones = appendZone(zones, records, run.SampleID, run.KeyLo, run.KeyHi, false)
	}
	return zones
}

// explicitZones uses the caller supplied key ranges. Ranges may leave gaps but
// may not overlap.
func explicitZones(records []SampleRecord) ([]ZoneRecord, error) {
	var owner [128]int
	for i := range owner {
		owner[i] = -1
	}

	var zones []ZoneRecord
	for i := range records {
		rec := &records[i]
		if rec.SampleType == RightSample {
			continue
		}
		kr := rec.KeyRange
		if kr == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingKeyRange, rec.Name)
		}
		if kr.Lo < 0 || kr.Hi > 127 || kr.Lo > kr.Hi {
			return nil, fmt.Errorf("%w: %q has %d-%d", ErrInvalidKeyRange, rec.Name, kr.Lo, kr.Hi)
		}
		for k := kr.Lo; k <= kr.Hi; k++ {
			if owner[k] >= 0 {
				return nil, fmt.Errorf("%w: %q and %q both claim key %d",
					ErrKeyRangeOverlap, records[owner[k]].Name, rec.Name, k)
			}
			owner[k] = i
		}
		zones = appendZone(zones, records, i, uint8(kr.Lo), uint8(kr.Hi), false)
	}
	return zones, nil
}

// drumZones places every sample on its root key.
func drumZones(records []SampleRecord) []ZoneRecord {
	zones := make([]ZoneRecord, 0, len(records))
	for i := range records {
		if records[i].SampleType == RightSample {
			continue
		}
		key := uint8(records[i].RootNote)
		zones = appendZone(zones, records, i, key, key, true)
	}
	return zones
}

// appendZone adds the zone for records[id] and, for a linked left channel,
// the hard-right companion zone of its partner.
func appendZone(zones []ZoneRecord, records []SampleRecord, id int, lo, hi uint8, drum bool) []ZoneRecord {
	rec := &records[id]
	z := ZoneRecord{KeyLo: lo, KeyHi: hi, SampleID: id, SampleMode: rec.SampleMode}
	if drum {
		z.ExclusiveClass = rec.ExclusiveClass
	}
	if rec.SampleType != LeftSample {
		return append(zones, z)
	}

	z.Pan = -panHard
	zones = append(zones, z)
	if rec.SampleLink <= 0 || rec.SampleLink >= len(records) {
		return zones
	}
	partner := &records[rec.SampleLink]
	companion := ZoneRecord{
		KeyLo:      lo,
		KeyHi:      hi,
		SampleID:   rec.SampleLink,
		SampleMode: partner.SampleMode,
		Pan:        panHard,
	}
	if drum {
		companion.ExclusiveClass = partner.ExclusiveClass
	}
	return append(zones, companion)
}
