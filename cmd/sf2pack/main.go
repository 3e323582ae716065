package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mattetti/sf2pack/internal/config"
	"github.com/mattetti/sf2pack/internal/converter"
	"github.com/mattetti/sf2pack/internal/manifest"
	"github.com/mattetti/sf2pack/internal/sf2"
	"github.com/mattetti/sf2pack/internal/wav"
)

var (
	inputPath  string
	outputPath string
	exbPath    string
	exbDirPath string
	bankName   string
	author     string
	previewWAV string
	demoMIDI   string
	drumKit    bool
	verifyMode bool
	debugMode  bool
	version    bool
)

var cfg = config.Load()

func init() {
	flag.StringVar(&inputPath, "i", "", "Input directory of samples or a .json manifest (required if not using -exb or -exbdir)")
	flag.StringVar(&outputPath, "o", "", "Output .sf2 path (defaults to <name>.sf2 in $SF2PACK_OUTPUT_DIR)")
	flag.StringVar(&exbPath, "exb", "", "Path to an .exb file. Builds a bank from the .ebl files in its SamplePool folder")
	flag.StringVar(&exbDirPath, "exbdir", "", "Path to a directory containing .exb files (will process recursively)")
	flag.StringVar(&bankName, "name", "", "Bank name (defaults to the input directory name)")
	flag.StringVar(&author, "author", cfg.Author, "Author written to the bank")
	flag.StringVar(&previewWAV, "preview", "", "Render the bank to this WAV file for a quick listen")
	flag.StringVar(&demoMIDI, "midi", "", "Write a MIDI file playing every zone of the bank")
	flag.BoolVar(&drumKit, "drums", false, "Build a drum kit (bank 128, one key per sample)")
	flag.BoolVar(&verifyMode, "verify", false, "Read the bank back and print its zones")
	flag.BoolVar(&debugMode, "d", cfg.Debug, "Debug mode")
	flag.BoolVar(&version, "version", false, "Display version information")
}

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	// Display version if requested
	if version {
		fmt.Printf("sf2pack version %s\n", VERSION)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if debugMode {
		fmt.Printf("DEBUG MODE: %t, DRUM KIT: %t, VERIFY: %t\n", debugMode, drumKit, verifyMode)
		fmt.Printf("Using %d CPU cores\n", runtime.NumCPU())
	}

	conv := newConverter()

	// Process directory of EXB files if provided
	if exbDirPath != "" {
		processExbDirectory(ctx, conv, exbDirPath)
		return
	}

	// Process EXB file if provided
	if exbPath != "" {
		if filepath.Ext(exbPath) != ".exb" {
			fmt.Println("Error: EXB path must point to an .exb file")
			os.Exit(1)
		}
		if err := processExbFile(ctx, conv, exbPath, outputPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if inputPath == "" {
		fmt.Println("Error: Input path is required. Use -i flag, provide an .exb file with -exb, or specify a directory of EXB files with -exbdir.")
		printUsage()
		os.Exit(1)
	}

	inst, err := buildInstrument(ctx, conv)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := convert(ctx, conv, inst, outputPath); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func newConverter() *converter.Converter {
	return converter.NewConverter(converter.Options{
		Debug:          debugMode,
		DrumKit:        drumKit,
		Author:         author,
		SampleRate:     cfg.SampleRate,
		FFmpegPath:     cfg.FFmpegPath,
		Verify:         verifyMode,
		PreviewSeconds: cfg.PreviewSeconds,
		PreviewWAV:     previewWAV,
		DemoMIDI:       demoMIDI,
	})
}

// buildInstrument loads -i as a manifest or a sample directory.
func buildInstrument(ctx context.Context, conv *converter.Converter) (*sf2.Instrument, error) {
	if strings.EqualFold(filepath.Ext(inputPath), ".json") {
		m, err := manifest.Load(inputPath)
		if err != nil {
			return nil, err
		}
		inst, err := conv.BuildManifest(ctx, m)
		if err != nil {
			return nil, err
		}
		if bankName != "" {
			inst.Name = bankName
		}
		if inst.Name == "" {
			base := filepath.Base(inputPath)
			inst.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		return inst, nil
	}

	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	if !inputInfo.IsDir() {
		return nil, fmt.Errorf("input must be a directory of samples or a .json manifest")
	}
	return conv.BuildDirectory(ctx, inputPath, bankName)
}

// convert writes inst, defaulting the output path to the bank name.
func convert(ctx context.Context, conv *converter.Converter, inst *sf2.Instrument, output string) error {
	if output == "" {
		output = filepath.Join(cfg.OutputDir, wav.CleanFilename(inst.Name)+".sf2")
		fmt.Printf("No output path selected - Defaulting to %s\n", output)
	}

	res, err := conv.Convert(ctx, inst, output)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %d samples, %d bytes in %.2f seconds.\n",
		res.Path, res.Samples, res.Size, res.Duration.Seconds())
	if res.Preview != "" {
		fmt.Printf("Preview rendered to %s\n", res.Preview)
	}
	if res.MIDI != "" {
		fmt.Printf("Demo MIDI written to %s\n", res.MIDI)
	}
	return nil
}

// processExbDirectory builds one bank per EXB file found under dir.
func processExbDirectory(ctx context.Context, conv *converter.Converter, dir string) {
	dirInfo, err := os.Stat(dir)
	if err != nil {
		fmt.Printf("Error accessing directory: %v\n", err)
		os.Exit(1)
	}
	if !dirInfo.IsDir() {
		fmt.Printf("Error: %s is not a directory\n", dir)
		os.Exit(1)
	}

	fmt.Printf("Scanning %s for EXB files...\n", dir)

	var exbFiles []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.ToLower(filepath.Ext(path)) == ".exb" {
			exbFiles = append(exbFiles, path)
		}
		return nil
	})
	if err != nil {
		fmt.Printf("Error scanning for EXB files: %v\n", err)
		os.Exit(1)
	}
	if len(exbFiles) == 0 {
		fmt.Println("No EXB files found.")
		os.Exit(1)
	}

	fmt.Printf("Found %d EXB files to process.\n", len(exbFiles))

	converted := 0
	for i, exbFile := range exbFiles {
		if ctx.Err() != nil {
			fmt.Println("Interrupted.")
			os.Exit(1)
		}
		fmt.Printf("[%d/%d] Processing %s\n", i+1, len(exbFiles), exbFile)

		// Mirror the input tree under the output directory.
		out := ""
		if outputPath != "" {
			rel, err := filepath.Rel(dir, filepath.Dir(exbFile))
			if err != nil {
				rel = "."
			}
			out = filepath.Join(outputPath, rel, exbBaseName(exbFile)+".sf2")
		}
		if err := processExbFile(ctx, conv, exbFile, out); err != nil {
			fmt.Printf("Error: %v\n", err)
			fmt.Println("Skipping to the next EXB file.")
			continue
		}
		converted++
	}

	fmt.Printf("Successfully processed %d of %d EXB files.\n", converted, len(exbFiles))
}

// processExbFile builds a bank named after the EXB file from the .ebl
// samples in its SamplePool folder.
func processExbFile(ctx context.Context, conv *converter.Converter, exbPath, output string) error {
	samplePoolDir := filepath.Join(filepath.Dir(exbPath), "SamplePool")
	if _, err := os.Stat(samplePoolDir); os.IsNotExist(err) {
		return fmt.Errorf("SamplePool directory not found at %s", samplePoolDir)
	}

	name := bankName
	if name == "" {
		name = exbBaseName(exbPath)
	}
	fmt.Printf("Processing EXB file: %s\n", name)

	inst, err := conv.BuildDirectory(ctx, samplePoolDir, name)
	if err != nil {
		return err
	}
	return convert(ctx, conv, inst, output)
}

func exbBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printUsage() {
	fmt.Println("Usage: sf2pack -i <input> [options] or sf2pack -exb <exbfile> [options] or sf2pack -exbdir <directory> [options]")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  sf2pack -i /path/to/piano/ -o Piano.sf2          # Build a melodic bank from a sample folder")
	fmt.Println("  sf2pack -i kit/ -drums -name \"808 Kit\"           # Build a drum kit")
	fmt.Println("  sf2pack -i strings.json -verify                  # Build from a manifest and check the result")
	fmt.Println("  sf2pack -i pad/ -preview pad.wav -midi pad.mid   # Render an audition file and demo MIDI")
	fmt.Println("  sf2pack -exb Sample.exb                          # Build a bank from the SamplePool folder")
	fmt.Println("  sf2pack -exbdir /path/to/soundbanks/ -o banks/   # Build a bank per .exb file recursively")
}
