package ebl

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/mattetti/sf2pack/internal/wav"
)

// ErrInvalidEBL is returned when a header prefix does not match.
var ErrInvalidEBL = errors.New("invalid EBL file")

const (
	nameFieldSize    = 64
	headerDataSize   = 176
	defaultFrequency = 44100
)

// Parser handles reading and parsing EBL files
type Parser struct {
	debug bool
}

// NewParser creates a new EBL parser
func NewParser(debug bool) *Parser {
	return &Parser{debug: debug}
}

// Debug logs a message if debug mode is enabled
func (p *Parser) Debug(message string) {
	if p.debug {
		fmt.Println(message)
	}
}

// dumpHex returns a hexadecimal dump of the provided data
func (p *Parser) dumpHex(data []byte, maxLen int) string {
	if len(data) > maxLen {
		data = data[:maxLen]
	}
	return hex.Dump(data)
}

// decodeUTF16 decodes UTF-16 little endian bytes to a string, removing trailing nulls
func decodeUTF16(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	u16s := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		u16s = append(u16s, binary.LittleEndian.Uint16(b[i:i+2]))
	}
	return strings.TrimRight(string(utf16.Decode(u16s)), "\x00")
}

// reader tracks the read offset and keeps the first error.
type reader struct {
	r   io.Reader
	n   int64
	err error
}

func (r *reader) bytes(n int, what string) []byte {
	if r.err != nil || n <= 0 {
		return nil
	}
	b := make([]byte, n)
	read, err := io.ReadFull(r.r, b)
	r.n += int64(read)
	if err != nil {
		r.err = fmt.Errorf("error reading %s: %w (read %d of %d bytes)", what, err, read, n)
	}
	return b
}

func (r *reader) uint32(order binary.ByteOrder, what string) int {
	b := r.bytes(4, what)
	if b == nil {
		return 0
	}
	return int(order.Uint32(b))
}

func (r *reader) prefix(want string) []byte {
	b := r.bytes(len(want), want+" prefix")
	if r.err == nil && string(b) != want {
		r.err = fmt.Errorf("%w: expected %s prefix, got %s (hex: %x)", ErrInvalidEBL, want, b, b)
	}
	return b
}

// ReadFile reads and parses an EBL file
func (p *Parser) ReadFile(inputFile string) (*EBLFile, error) {
	file, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("error getting file info: %w", err)
	}

	eblFile, err := p.Parse(file, fileInfo.Size())
	if err != nil {
		return nil, err
	}
	eblFile.Filename = filepath.Base(inputFile)
	eblFile.Path = inputFile
	if eblFile.Name == "" {
		eblFile.Name = strings.TrimSuffix(eblFile.Filename, filepath.Ext(eblFile.Filename))
	}
	return eblFile, nil
}

// Parse reads an EBL stream of the given total size.
func (p *Parser) Parse(in io.Reader, size int64) (*EBLFile, error) {
	r := &reader{r: in}
	eblFile := &EBLFile{Size: size}

	// Header 1: FORM and the remaining size, big-endian.
	r.prefix("FORM")
	formSize := r.uint32(binary.BigEndian, "file size")
	p.Debug(fmt.Sprintf("Header 1 filesize: %d", formSize))

	// Header 2: table of contents.
	r.prefix("E5B0TOC2")
	r.uint32(binary.BigEndian, "next header bytes")

	// Header 3: sample entry with a UTF-16 name.
	r.prefix("E5S1")
	r.uint32(binary.BigEndian, "data size")
	header3Data := r.uint32(binary.BigEndian, "data")
	r.bytes(2, "zeros")
	tocName := decodeUTF16(r.bytes(nameFieldSize, "filename"))
	if r.err != nil {
		return nil, r.err
	}
	p.Debug(fmt.Sprintf("Header 3 filename: %s", tocName))

	// Header 3 may be followed by padding that already holds the header 4 prefix.
	var padding []byte
	if pad := header3Data - int(r.n); pad > 0 {
		p.Debug(fmt.Sprintf("Reading %d bytes of padding after Header 3", pad))
		padding = r.bytes(pad, "padding")
		if r.err != nil {
			return nil, r.err
		}
	}
	switch {
	case len(padding) >= 8 && string(padding[:4]) == "E5S1":
		p.Debug("Found Header 4 prefix and size in the padding bytes")
	case len(padding) >= 4 && string(padding[:4]) == "E5S1":
		r.uint32(binary.BigEndian, "header 4 size")
	default:
		if b := r.prefix("E5S1"); r.err != nil && len(b) > 0 {
			p.Debug(fmt.Sprintf("Invalid Header 4 prefix:\n%s", p.dumpHex(b, 4)))
		}
		r.uint32(binary.BigEndian, "header 4 size")
	}
	r.bytes(6, "header 4 data")

	// Sample header: name, twelve little-endian values and a comment.
	eblFile.Name = decodeUTF16(r.bytes(nameFieldSize, "filename"))
	var v [12]int
	for i := range v {
		v[i] = r.uint32(binary.LittleEndian, fmt.Sprintf("v%d", i+1))
	}
	eblFile.Comment = decodeUTF16(r.bytes(nameFieldSize, "comment"))
	if r.err != nil {
		return nil, r.err
	}
	if eblFile.Name == "" {
		eblFile.Name = tocName
	}
	eblFile.Header = HeaderData{
		V1: v[0], V2: v[1], V3: v[2], V4: v[3], V5: v[4], V6: v[5],
		V7: v[6], V8: v[7], V9: v[8], SampleRate: v[9], V11: v[10], V12: v[11],
	}
	h := &eblFile.Header
	p.Debug(fmt.Sprintf("HeaderData values: v1=%d, v2=%d, v3=%d, v4=%d, v5=%d, frequency=%d",
		h.V1, h.V2, h.V3, h.V4, h.V5, h.SampleRate))

	eblFile.Channel1Size = h.V3 - h.V2
	eblFile.Channel2Size = h.V5 - h.V4
	if eblFile.Channel1Size == eblFile.Channel2Size {
		if eblFile.Channel1Size == 0 {
			p.Debug("MONO DETECTED")
			eblFile.Channel1Size = h.V4 - h.V3 + 2
		}
	} else if eblFile.Channel1Size*eblFile.Channel2Size != 0 {
		p.Debug(fmt.Sprintf("Error: Channels Different length. C1: %d, C2: %d",
			eblFile.Channel1Size, eblFile.Channel2Size))
	}
	if eblFile.Channel1Size < 0 || eblFile.Channel2Size < 0 {
		return nil, fmt.Errorf("%w: negative channel size (%d, %d)",
			ErrInvalidEBL, eblFile.Channel1Size, eblFile.Channel2Size)
	}

	if pad := h.V5 - eblFile.Channel1Size - eblFile.Channel2Size - 178; pad > 0 {
		p.Debug(fmt.Sprintf("Reading %d bytes of data padding", pad))
		r.bytes(pad, "data padding")
	}

	eblFile.Channel1Data = r.bytes(eblFile.Channel1Size, "channel 1 data")
	eblFile.Channel2Data = r.bytes(eblFile.Channel2Size, "channel 2 data")
	if r.err != nil {
		return nil, r.err
	}
	eblFile.Read = r.n

	// Many files carry a 4 byte trailer, some a 40 byte extra header.
	if diff := size - r.n; diff != 0 && diff != 4 && diff != 40 {
		p.Debug(fmt.Sprintf("ERROR: Inconsistent filesize: Read: %d, Expected: %d, Difference: %d",
			r.n, size, diff))
	}
	return eblFile, nil
}

// Audio converts the channel planes to interleaved float samples.
func (f *EBLFile) Audio() *wav.Audio {
	rate := f.Header.SampleRate
	if rate <= 0 {
		rate = defaultFrequency
	}
	left := pcm16(f.Channel1Data)
	if !f.Stereo() {
		data := make([]float32, len(left))
		for i, s := range left {
			data[i] = float32(s) / 32768
		}
		return &wav.Audio{Channels: 1, SampleRate: rate, Data: data}
	}

	right := pcm16(f.Channel2Data)
	frames := len(left)
	if len(right) < frames {
		frames = len(right)
	}
	data := make([]float32, 0, frames*2)
	for i := 0; i < frames; i++ {
		data = append(data, float32(left[i])/32768, float32(right[i])/32768)
	}
	return &wav.Audio{Channels: 2, SampleRate: rate, Data: data}
}

func pcm16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}
