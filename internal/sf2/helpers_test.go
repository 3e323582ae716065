package sf2

import (
	"bytes"
	"encoding/binary"
	"testing"
)

type rawChunk struct {
	id   string
	data []byte
}

// splitChunks parses a flat sequence of chunks.
func splitChunks(t *testing.T, b []byte) []rawChunk {
	t.Helper()
	var out []rawChunk
	for len(b) > 0 {
		if len(b) < 8 {
			t.Fatalf("truncated chunk header: %d bytes left", len(b))
		}
		size := int(binary.LittleEndian.Uint32(b[4:8]))
		if 8+size > len(b) {
			t.Fatalf("chunk %q claims %d bytes, only %d left", b[:4], size, len(b)-8)
		}
		out = append(out, rawChunk{id: string(b[:4]), data: b[8 : 8+size]})
		b = b[8+size:]
	}
	return out
}

// listChunks returns the sub-chunks of the top level LIST of the given type.
func listChunks(t *testing.T, file []byte, listType string) map[string][]byte {
	t.Helper()
	if string(file[:4]) != "RIFF" || string(file[8:12]) != "sfbk" {
		t.Fatalf("not an sfbk RIFF file: %q %q", file[:4], file[8:12])
	}
	for _, c := range splitChunks(t, file[12:]) {
		if c.id != "LIST" || string(c.data[:4]) != listType {
			continue
		}
		out := make(map[string][]byte)
		for _, sub := range splitChunks(t, c.data[4:]) {
			out[sub.id] = sub.data
		}
		return out
	}
	t.Fatalf("LIST %s not found", listType)
	return nil
}

type parsedSample struct {
	name                           string
	start, end, startLoop, endLoop uint32
	rate                           uint32
	pitch                          uint8
	correction                     int8
	link, kind                     uint16
}

func parseSampleHeaders(t *testing.T, file []byte) []parsedSample {
	t.Helper()
	shdr := listChunks(t, file, "pdta")["shdr"]
	if len(shdr)%sampleHeaderSize != 0 {
		t.Fatalf("shdr length %d is not a multiple of %d", len(shdr), sampleHeaderSize)
	}
	var out []parsedSample
	for rec := shdr; len(rec) > 0; rec = rec[sampleHeaderSize:] {
		out = append(out, parsedSample{
			name:       string(bytes.TrimRight(rec[:20], "\x00")),
			start:      binary.LittleEndian.Uint32(rec[20:]),
			end:        binary.LittleEndian.Uint32(rec[24:]),
			startLoop:  binary.LittleEndian.Uint32(rec[28:]),
			endLoop:    binary.LittleEndian.Uint32(rec[32:]),
			rate:       binary.LittleEndian.Uint32(rec[36:]),
			pitch:      rec[40],
			correction: int8(rec[41]),
			link:       binary.LittleEndian.Uint16(rec[42:]),
			kind:       binary.LittleEndian.Uint16(rec[44:]),
		})
	}
	return out
}

// parseRecords4 splits a chunk of 4 byte (uint16, uint16) records.
func parseRecords4(t *testing.T, data []byte) [][2]uint16 {
	t.Helper()
	if len(data)%4 != 0 {
		t.Fatalf("record chunk length %d is not a multiple of 4", len(data))
	}
	var out [][2]uint16
	for ; len(data) > 0; data = data[4:] {
		out = append(out, [2]uint16{binary.LittleEndian.Uint16(data), binary.LittleEndian.Uint16(data[2:])})
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i%200)/100 - 1
	}
	return out
}

func mustEncode(t *testing.T, inst *Instrument) []byte {
	t.Helper()
	data, err := Encode(inst)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}
