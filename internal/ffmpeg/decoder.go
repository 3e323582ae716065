package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mattetti/sf2pack/internal/wav"
)

// ErrNotFound is returned when no ffmpeg binary can be located.
var ErrNotFound = errors.New("ffmpeg not found. Please install ffmpeg to import non-WAV samples")

// extensions lists the source formats decoded through ffmpeg.
var extensions = map[string]bool{
	".aif":  true,
	".aiff": true,
	".flac": true,
	".mp3":  true,
	".ogg":  true,
}

// Supports reports whether path has an extension handled by the decoder.
func Supports(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Decoder transcodes compressed or non-WAV sources with ffmpeg.
type Decoder struct {
	ffmpegPath string
	debug      bool
}

// NewDecoder creates a new decoder. An empty ffmpegPath searches the system.
func NewDecoder(ffmpegPath string, debug bool) (*Decoder, error) {
	if ffmpegPath == "" {
		found, err := findFFmpeg()
		if err != nil {
			return nil, err
		}
		ffmpegPath = found
	} else if _, err := os.Stat(ffmpegPath); err != nil {
		return nil, fmt.Errorf("%w at %s", ErrNotFound, ffmpegPath)
	}

	return &Decoder{
		ffmpegPath: ffmpegPath,
		debug:      debug,
	}, nil
}

// Debug logs a message if debug mode is enabled
func (d *Decoder) Debug(message string) {
	if d.debug {
		fmt.Println(message)
	}
}

// findFFmpeg locates the ffmpeg binary on the system
func findFFmpeg() (string, error) {
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path, nil
	}

	// Check common installation locations based on OS
	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/opt/local/bin/ffmpeg",
		}
	default:
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/ffmpeg/bin/ffmpeg",
		}
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Decode transcodes inputFile to a temporary 16-bit WAV and decodes it. The
// channel count is preserved, so sources wider than stereo are rejected by
// the WAV decoder.
func (d *Decoder) Decode(ctx context.Context, inputFile string) (*wav.Audio, error) {
	if _, err := os.Stat(inputFile); err != nil {
		return nil, fmt.Errorf("input file does not exist: %s", inputFile)
	}

	tmpDir, err := os.MkdirTemp("", "sf2pack-ffmpeg-")
	if err != nil {
		return nil, fmt.Errorf("error creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	wavFile := filepath.Join(tmpDir, "source.wav")

	cmd := exec.CommandContext(ctx,
		d.ffmpegPath,
		"-i", inputFile,        // Input file
		"-vn",                  // Drop cover art streams
		"-acodec", "pcm_s16le", // 16-bit little-endian PCM
		"-y",                   // Overwrite output file if it exists
		wavFile,
	)

	// If debug mode is on, show the ffmpeg output
	if d.debug {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		fmt.Printf("Running: %s\n", cmd.String())
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("error decoding %s with ffmpeg: %w", filepath.Base(inputFile), err)
	}

	a, err := wav.Decode(wavFile)
	if err != nil {
		return nil, err
	}
	d.Debug(fmt.Sprintf("Decoded %s: %d frames, %d channels, %d Hz",
		filepath.Base(inputFile), a.Frames(), a.Channels, a.SampleRate))
	return a, nil
}
