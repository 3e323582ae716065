package wav

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"regexp"
)

// Encoder writes 16-bit PCM WAV files, used for audition renders.
type Encoder struct {
	debug   bool
	noWrite bool
}

// NewEncoder creates a new WAV encoder
func NewEncoder(debug, noWrite bool) *Encoder {
	return &Encoder{
		debug:   debug,
		noWrite: noWrite,
	}
}

// Debug logs a message if debug mode is enabled
func (e *Encoder) Debug(message string) {
	if e.debug {
		fmt.Println(message)
	}
}

// WritePCM16 writes interleaved 16-bit samples to outputPath.
func (e *Encoder) WritePCM16(outputPath string, samples []int16, numChannels, sampleRate int) error {
	if numChannels < 1 || numChannels > 2 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, numChannels)
	}

	const (
		wavHeaderLength = uint32(16) // Standard PCM header length
		wavPCMMode      = uint16(1)
		wavBPS          = uint16(16)
	)
	channels := uint16(numChannels)
	rate := uint32(sampleRate)
	dataSize := uint32(len(samples)) * uint32(wavBPS/8)

	header := WAVHeader{
		RiffID:        [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      36 + dataSize, // 4 + (8 + 16) + (8 + DataSize)
		WaveID:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       wavHeaderLength,
		AudioFormat:   wavPCMMode,
		NumChannels:   channels,
		SampleRate:    rate,
		ByteRate:      rate * uint32(channels) * uint32(wavBPS) / 8,
		BlockAlign:    channels * wavBPS / 8,
		BitsPerSample: wavBPS,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	e.Debug(fmt.Sprintf("Writing %s: %d frames, %d channels, %d Hz",
		outputPath, len(samples)/numChannels, numChannels, sampleRate))
	if e.noWrite {
		return nil
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("error writing WAV header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("error writing audio data: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing audio data: %w", err)
	}
	return file.Close()
}

// Interleave merges per-channel sample planes (LLLL..., RRRR...) into LRLR... frames.
func Interleave(left, right []int16) []int16 {
	out := make([]int16, len(left)*2)
	for i := range left {
		out[i*2] = left[i]
		if i < len(right) {
			out[i*2+1] = right[i]
		}
	}
	return out
}

var unsafeChars = regexp.MustCompile(`[^0-9a-zA-Z\.,:%\-_#]+`)

// CleanFilename removes invalid characters from a filename (Windows-safe)
func CleanFilename(filename string) string {
	return unsafeChars.ReplaceAllString(filename, "_")
}
