package sf2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestChunkPadsOddPayload(t *testing.T) {
	w := NewChunkWriter(0)
	err := w.Chunk("abcd", func(w *ChunkWriter) error {
		_, err := w.Write([]byte{1, 2, 3})
		return err
	})
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	want := []byte{'a', 'b', 'c', 'd', 4, 0, 0, 0, 1, 2, 3, 0}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Chunk bytes = %v, want %v", w.Bytes(), want)
	}
}

func TestChunkEvenPayloadIsNotPadded(t *testing.T) {
	w := NewChunkWriter(0)
	if err := w.Chunk("data", func(w *ChunkWriter) error {
		w.WriteUint16(0xBEEF)
		return nil
	}); err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if w.Len() != 10 {
		t.Errorf("Len = %d, want 10", w.Len())
	}
	if got := binary.LittleEndian.Uint32(w.Bytes()[4:]); got != 2 {
		t.Errorf("size field = %d, want 2", got)
	}
}

func TestChunkNesting(t *testing.T) {
	w := NewChunkWriter(0)
	err := w.Chunk("RIFF", func(w *ChunkWriter) error {
		if err := w.FourCC("test"); err != nil {
			return err
		}
		return w.List("abcd", func(w *ChunkWriter) error {
			if err := w.Chunk("odd1", func(w *ChunkWriter) error {
				w.WriteString("hi") // 3 bytes with terminator
				return nil
			}); err != nil {
				return err
			}
			return w.Chunk("emty", nil)
		})
	})
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}

	b := w.Bytes()
	if got := int(binary.LittleEndian.Uint32(b[4:])); got != len(b)-8 {
		t.Errorf("RIFF size = %d, want %d", got, len(b)-8)
	}
	if len(b)%2 != 0 {
		t.Errorf("total length %d is odd", len(b))
	}
	// RIFF(8) test(4) LIST(8) abcd(4) odd1(8+4) emty(8)
	if len(b) != 44 {
		t.Errorf("total length = %d, want 44", len(b))
	}
	if got := binary.LittleEndian.Uint32(b[16:]); got != 4+12+8 {
		t.Errorf("LIST size = %d, want %d", got, 4+12+8)
	}
	if string(b[20:24]) != "abcd" {
		t.Errorf("list type = %q, want abcd", b[20:24])
	}
}

func TestChunkRejectsBadTags(t *testing.T) {
	for _, tag := range []string{"", "abc", "abcde", "ab\x00c", "é12"} {
		w := NewChunkWriter(0)
		err := w.Chunk(tag, nil)
		if !errors.Is(err, ErrInvalidTag) {
			t.Errorf("Chunk(%q) error = %v, want ErrInvalidTag", tag, err)
		}
	}

	w := NewChunkWriter(0)
	err := w.Chunk("RIFF", func(w *ChunkWriter) error {
		return w.List("bad", nil)
	})
	if !errors.Is(err, ErrInvalidTag) {
		t.Errorf("nested bad list type error = %v, want ErrInvalidTag", err)
	}
}

func TestChunkPropagatesBodyError(t *testing.T) {
	boom := errors.New("boom")
	w := NewChunkWriter(0)
	err := w.Chunk("RIFF", func(w *ChunkWriter) error {
		return w.Chunk("data", func(w *ChunkWriter) error { return boom })
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}
