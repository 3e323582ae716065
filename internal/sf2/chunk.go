package sf2

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ChunkWriter frames RIFF style chunks into a growable buffer. Each chunk is
// a 4 byte tag, a little-endian uint32 payload length and the payload, padded
// to an even length. Chunks nest freely.
type ChunkWriter struct {
	buf []byte
}

// NewChunkWriter creates a writer with room for size bytes.
func NewChunkWriter(size int) *ChunkWriter {
	return &ChunkWriter{buf: make([]byte, 0, size)}
}

// Write appends raw bytes at the cursor.
func (w *ChunkWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Bytes returns everything written so far.
func (w *ChunkWriter) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *ChunkWriter) Len() int {
	return len(w.buf)
}

// Chunk writes tag, reserves the length field, runs body and then pads and
// backpatches the length. The stored length covers the payload including the
// alignment byte but not the 8 byte header.
func (w *ChunkWriter) Chunk(tag string, body func(w *ChunkWriter) error) error {
	if err := w.FourCC(tag); err != nil {
		return err
	}
	sizeAt := len(w.buf)
	w.buf = append(w.buf, 0, 0, 0, 0)

	if body != nil {
		if err := body(w); err != nil {
			return err
		}
	}

	size := len(w.buf) - sizeAt - 4
	if size%2 != 0 {
		w.buf = append(w.buf, 0)
		size++
	}
	if uint64(size) > math.MaxUint32 {
		return fmt.Errorf("%w: %s payload is %d bytes", ErrChunkTooLarge, tag, size)
	}
	binary.LittleEndian.PutUint32(w.buf[sizeAt:], uint32(size))
	return nil
}

// List writes a LIST chunk of the given type.
func (w *ChunkWriter) List(listType string, body func(w *ChunkWriter) error) error {
	return w.Chunk("LIST", func(w *ChunkWriter) error {
		if err := w.FourCC(listType); err != nil {
			return err
		}
		if body == nil {
			return nil
		}
		return body(w)
	})
}

// FourCC writes a 4 byte ASCII identifier.
func (w *ChunkWriter) FourCC(id string) error {
	if !validTag(id) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, id)
	}
	w.buf = append(w.buf, id...)
	return nil
}

// WriteUint16 appends a little-endian uint16.
func (w *ChunkWriter) WriteUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// WriteString appends s and a zero terminator.
func (w *ChunkWriter) WriteString(s string) {
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

// WriteZeros appends n zero bytes.
func (w *ChunkWriter) WriteZeros(n int) {
	for ; n > 0; n-- {
		w.buf = append(w.buf, 0)
	}
}

// WritePCM appends 16-bit samples in little-endian order.
func (w *ChunkWriter) WritePCM(pcm []int16) {
	for _, s := range pcm {
		w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(s))
	}
}

func validTag(tag string) bool {
	if len(tag) != 4 {
		return false
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] < 0x20 || tag[i] > 0x7e {
			return false
		}
	}
	return true
}
