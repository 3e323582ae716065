package sf2

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// guardFrames of silence follow every sample in the smpl chunk.
	guardFrames = 46

	versionMajor = 2
	versionMinor = 1
	soundEngine  = "EMU8000"
	untitled     = "Untitled SoundFont"

	melodicBank = 0
	drumBank    = 128

	maxInfoText = 255
	maxComment  = 65535
	maxIndex    = math.MaxUint16
)

// assembler writes the fixed sfbk skeleton for one encode call.
type assembler struct {
	inst    *Instrument
	records []SampleRecord
	zones   []ZoneRecord
	bags    [][]Generator
	gens    int
}

// assemble produces the complete SF2 file.
func assemble(inst *Instrument, records []SampleRecord, zones []ZoneRecord) ([]byte, error) {
	a := &assembler{
		inst:    inst,
		records: records,
		zones:   zones,
		bags:    instrumentBags(zones, inst.DrumKit),
	}
	a.gens = countGenerators(a.bags)
	if err := a.checkLimits(); err != nil {
		return nil, err
	}

	w := NewChunkWriter(a.size())
	err := w.Chunk("RIFF", func(w *ChunkWriter) error {
		if err := w.FourCC("sfbk"); err != nil {
			return err
		}
		if err := w.List("INFO", a.writeInfo); err != nil {
			return fmt.Errorf("writing INFO list: %w", err)
		}
		if err := w.List("sdta", a.writeSampleData); err != nil {
			return fmt.Errorf("writing sdta list: %w", err)
		}
		if err := w.List("pdta", a.writePresetData); err != nil {
			return fmt.Errorf("writing pdta list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// checkLimits rejects pools that cannot be indexed by the format's 16 and 32 bit fields.
func (a *assembler) checkLimits() error {
	if len(a.records)+1 > maxIndex {
		return fmt.Errorf("%w: %d samples", ErrTooManyRecords, len(a.records))
	}
	if len(a.bags)+1 > maxIndex {
		return fmt.Errorf("%w: %d instrument zones", ErrTooManyRecords, len(a.bags))
	}
	if a.gens+1 > maxIndex {
		return fmt.Errorf("%w: %d generators", ErrTooManyRecords, a.gens)
	}
	var frames uint64
	for i := range a.records {
		frames += uint64(a.records[i].Frames() + guardFrames)
	}
	if frames*2 > math.MaxUint32 {
		return fmt.Errorf("%w: %d sample frames", ErrChunkTooLarge, frames)
	}
	return nil
}

func (a *assembler) name() string {
	if a.inst.Name == "" {
		return untitled
	}
	return a.inst.Name
}

func (a *assembler) bank() uint16 {
	if a.inst.DrumKit {
		return drumBank
	}
	return melodicBank
}

// size returns the exact encoded length so the output never reallocates.
func (a *assembler) size() int {
	info := 4 + chunkSize(4) + textSize(soundEngine, maxInfoText) + textSize(a.name(), maxInfoText)
	if a.inst.Author != "" {
		info += textSize(a.inst.Author, maxInfoText)
	}
	if a.inst.Copyright != "" {
		info += textSize(a.inst.Copyright, maxInfoText)
	}
	if a.inst.Comment != "" {
		info += textSize(a.inst.Comment, maxComment)
	}

	pcm := 0
	for i := range a.records {
		pcm += 2 * (a.records[i].Frames() + guardFrames)
	}
	sdta := 4 + chunkSize(pcm)

	pdta := 4 +
		chunkSize(2*presetHeaderSize) +
		chunkSize(2*bagSize) +
		chunkSize(modSize) +
		chunkSize(2*genSize) +
		chunkSize(2*instHeaderSize) +
		chunkSize((len(a.bags)+1)*bagSize) +
		chunkSize(modSize) +
		chunkSize((a.gens+1)*genSize) +
		chunkSize((len(a.records)+1)*sampleHeaderSize)

	return chunkSize(4 + chunkSize(info) + chunkSize(sdta) + chunkSize(pdta))
}

// chunkSize is the framed size of a payload of n bytes.
func chunkSize(n int) int {
	return 8 + n + n%2
}

// textSize is the framed size of a zero terminated INFO string.
func textSize(s string, limit int) int {
	if len(s) > limit {
		s = s[:limit]
	}
	return chunkSize(len(s) + 1)
}

func (a *assembler) writeInfo(w *ChunkWriter) error {
	err := w.Chunk("ifil", func(w *ChunkWriter) error {
		w.WriteUint16(versionMajor)
		w.WriteUint16(versionMinor)
		return nil
	})
	if err != nil {
		return err
	}
	if err := writeText(w, "isng", soundEngine, maxInfoText); err != nil {
		return err
	}
	if err := writeText(w, "INAM", a.name(), maxInfoText); err != nil {
		return err
	}
	if a.inst.Author != "" {
		if err := writeText(w, "IENG", a.inst.Author, maxInfoText); err != nil {
			return err
		}
	}
	if a.inst.Copyright != "" {
		if err := writeText(w, "ICOP", a.inst.Copyright, maxInfoText); err != nil {
			return err
		}
	}
	if a.inst.Comment != "" {
		if err := writeText(w, "ICMT", a.inst.Comment, maxComment); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w *ChunkWriter, tag, text string, limit int) error {
	if len(text) > limit {
		text = text[:limit]
	}
	return w.Chunk(tag, func(w *ChunkWriter) error {
		w.WriteString(text)
		return nil
	})
}

// writeSampleData concatenates every sample followed by its guard frames.
func (a *assembler) writeSampleData(w *ChunkWriter) error {
	return w.Chunk("smpl", func(w *ChunkWriter) error {
		for i := range a.records {
			w.WritePCM(a.records[i].PCM)
			w.WriteZeros(guardFrames * 2)
		}
		return nil
	})
}

// writePresetData writes the nine pdta sub-chunks in their mandated order.
func (a *assembler) writePresetData(w *ChunkWriter) error {
	sections := []struct {
		tag  string
		data interface{}
	}{
		{"phdr", a.presetHeaders()},
		{"pbag", []bagRecord{{GenIndex: 0}, {GenIndex: 1}}},
		{"pmod", []modRecord{{}}},
		{"pgen", []genRecord{{Oper: uint16(GenInstrument), Amount: 0}, {}}},
		{"inst", a.instrumentHeaders()},
		{"ibag", a.instrumentBagRecords()},
		{"imod", []modRecord{{}}},
		{"igen", a.instrumentGenerators()},
		{"shdr", a.sampleHeaders()},
	}
	for _, s := range sections {
		data := s.data
		err := w.Chunk(s.tag, func(w *ChunkWriter) error {
			return binary.Write(w, binary.LittleEndian, data)
		})
		if err != nil {
			return fmt.Errorf("writing %s: %w", s.tag, err)
		}
	}
	return nil
}

// presetHeaders is the single preset plus the EOP terminal.
func (a *assembler) presetHeaders() []presetHeader {
	return []presetHeader{
		{Name: fixedName(a.name()), Preset: 0, Bank: a.bank(), BagIndex: 0},
		{Name: fixedName("EOP"), BagIndex: 1},
	}
}

// instrumentHeaders is the single instrument plus the EOI terminal, which
// points past the last zone bag.
func (a *assembler) instrumentHeaders() []instHeader {
	return []instHeader{
		{Name: fixedName(a.name()), BagIndex: 0},
		{Name: fixedName("EOI"), BagIndex: uint16(len(a.bags))},
	}
}

// instrumentBagRecords records where each bag's generators start, then the
// final offset in the terminal bag.
func (a *assembler) instrumentBagRecords() []bagRecord {
	out := make([]bagRecord, 0, len(a.bags)+1)
	offset := 0
	for _, gens := range a.bags {
		out = append(out, bagRecord{GenIndex: uint16(offset)})
		offset += len(gens)
	}
	return append(out, bagRecord{GenIndex: uint16(offset)})
}

// instrumentGenerators flattens the bags in the same order as instrumentBagRecords.
func (a *assembler) instrumentGenerators() []genRecord {
	out := make([]genRecord, 0, a.gens+1)
	for _, gens := range a.bags {
		for _, g := range gens {
			out = append(out, genRecord{Oper: uint16(g.Op), Amount: g.Amount})
		}
	}
	return append(out, genRecord{})
}

// sampleHeaders converts relative sample positions to absolute offsets into smpl.
func (a *assembler) sampleHeaders() []sampleHeader {
	out := make([]sampleHeader, 0, len(a.records)+1)
	var offset uint32
	for i := range a.records {
		r := &a.records[i]
		out = append(out, sampleHeader{
			Name:          fixedName(r.Name),
			Start:         offset,
			End:           offset + uint32(r.Frames()),
			StartLoop:     offset + uint32(r.LoopStart),
			EndLoop:       offset + uint32(r.LoopEnd),
			SampleRate:    uint32(r.SampleRate),
			OriginalPitch: uint8(r.OriginalPitch),
			SampleLink:    uint16(r.SampleLink),
			SampleType:    uint16(r.SampleType),
		})
		offset += uint32(r.Frames() + guardFrames)
	}
	return append(out, sampleHeader{Name: fixedName("EOS")})
}
