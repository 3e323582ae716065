package sf2

import "strings"

const (
	DefaultSampleRate = 44100
	DefaultRootNote   = 60

	// unpitched is the originalPitch value for samples that are never transposed.
	unpitched = 255

	nameSize = 20

	leftSuffix  = "_L"
	rightSuffix = "_R"
)

// FloatToPCM16 converts a sample in [-1, 1] to 16-bit PCM. Negative values
// scale by 32768 and non-negative values by 32767 so both ends of the range
// are reachable. Out of range input is clamped.
func FloatToPCM16(v float32) int16 {
	if v != v {
		return 0
	}
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	if v < 0 {
		return int16(v * 32768)
	}
	return int16(v * 32767)
}

// floatsToPCM16 converts a whole buffer.
func floatsToPCM16(in []float32) []int16 {
	out := make([]int16, len(in))
	for i, v := range in {
		out[i] = FloatToPCM16(v)
	}
	return out
}

// normalizeSamples turns the instrument's descriptors into pool-ordered sample records.
func normalizeSamples(inst *Instrument) []SampleRecord {
	if len(inst.Samples) == 0 {
		return []SampleRecord{silence()}
	}

	records := make([]SampleRecord, 0, len(inst.Samples)*2)
	for i := range inst.Samples {
		desc := &inst.Samples[i]

		rate := desc.SampleRate
		if rate <= 0 {
			rate = DefaultSampleRate
		}
		root, class := resolvePitch(desc, inst.DrumKit)
		pitch := root
		if inst.DrumKit {
			pitch = unpitched
		}
		template := SampleRecord{
			SampleRate:     rate,
			RootNote:       root,
			OriginalPitch:  pitch,
			ExclusiveClass: class,
			KeyRange:       descriptorKeyRange(desc),
		}

		if desc.Channels == 2 {
			data := desc.Interleaved
			if data == nil {
				data = desc.Data
			}
			left, right := deinterleave(data)
			base := stereoBaseName(desc.Name)

			l := template
			l.Name = base + leftSuffix
			l.SampleType = LeftSample
			l.PCM = floatsToPCM16(left)
			applyLoop(&l, desc)

			r := template
			r.Name = base + rightSuffix
			r.SampleType = RightSample
			r.PCM = floatsToPCM16(right)
			applyLoop(&r, desc)

			records = append(records, l, r)
			continue
		}

		data := desc.Data
		if data == nil {
			data = desc.Interleaved
		}
		m := template
		m.Name = truncateName(desc.Name)
		m.SampleType = MonoSample
		m.PCM = floatsToPCM16(data)
		applyLoop(&m, desc)
		records = append(records, m)
	}

	linkStereoPairs(records)
	return records
}

// silence is the placeholder sample used when an instrument has no samples,
// so the output is still a structurally valid bank.
func silence() SampleRecord {
	return SampleRecord{
		Name:          "Silence",
		PCM:           make([]int16, 4),
		SampleRate:    DefaultSampleRate,
		RootNote:      DefaultRootNote,
		OriginalPitch: DefaultRootNote,
		LoopStart:     3,
		LoopEnd:       4,
		SampleMode:    NoLoop,
		SampleType:    MonoSample,
		KeyRange:      &KeyRange{Lo: 0, Hi: 127},
	}
}

// resolvePitch returns the root note and exclusive class for a descriptor.
func resolvePitch(desc *SampleDescriptor, drumKit bool) (root, class int) {
	root = DefaultRootNote
	if drumKit {
		if d, ok := lookupDrum(desc.Name); ok {
			if desc.RootNote == nil {
				root = d.Key
			}
			class = d.ExclusiveClass
		}
	}
	if desc.RootNote != nil {
		root = clampKey(*desc.RootNote)
	}
	if desc.ExclusiveClass != nil && *desc.ExclusiveClass >= 0 {
		class = *desc.ExclusiveClass
	}
	return root, class
}

// applyLoop sets the loop region. Invalid caller bounds fall back to a
// disabled one-frame region at the end of the sample.
func applyLoop(r *SampleRecord, desc *SampleDescriptor) {
	// A sample needs at least one frame for the loop region to be well formed.
	if len(r.PCM) == 0 {
		r.PCM = []int16{0}
	}
	frames := len(r.PCM)

	if desc.LoopStart != nil && desc.LoopEnd != nil {
		start, end := *desc.LoopStart, *desc.LoopEnd
		if start >= 0 && start < end && end <= frames {
			r.LoopStart, r.LoopEnd = start, end
			r.SampleMode = ContinuousLoop
			return
		}
	}
	r.LoopStart, r.LoopEnd = frames-1, frames
	r.SampleMode = NoLoop
}

// deinterleave splits LRLR... frames, dropping a trailing unpaired value.
func deinterleave(data []float32) (left, right []float32) {
	frames := len(data) / 2
	left = make([]float32, frames)
	right = make([]float32, frames)
	for i := 0; i < frames; i++ {
		left[i] = data[2*i]
		right[i] = data[2*i+1]
	}
	return left, right
}

// linkStereoPairs links adjacent left/right records that share a base name.
func linkStereoPairs(records []SampleRecord) {
	for i := 0; i+1 < len(records); i++ {
		l, r := &records[i], &records[i+1]
		if l.SampleType != LeftSample || r.SampleType != RightSample {
			continue
		}
		if strings.TrimSuffix(l.Name, leftSuffix) != strings.TrimSuffix(r.Name, rightSuffix) {
			continue
		}
		l.SampleLink = i + 1
		r.SampleLink = i
		i++
	}
}

// stereoBaseName strips spaces and leaves room for the channel suffix.
func stereoBaseName(name string) string {
	base := strings.ReplaceAll(name, " ", "")
	if limit := nameSize - len(leftSuffix); len(base) > limit {
		base = base[:limit]
	}
	return base
}

func truncateName(name string) string {
	if len(name) > nameSize {
		return name[:nameSize]
	}
	return name
}

func descriptorKeyRange(desc *SampleDescriptor) *KeyRange {
	if desc.KeyLo == nil || desc.KeyHi == nil {
		return nil
	}
	return &KeyRange{Lo: *desc.KeyLo, Hi: *desc.KeyHi}
}

func clampKey(k int) int {
	if k < 0 {
		return 0
	}
	if k > 127 {
		return 127
	}
	return k
}
