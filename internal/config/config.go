package config

import (
	"os"
	"strconv"
)

// Config holds runtime defaults, loaded from environment variables. CLI
// flags override every field.
type Config struct {
	OutputDir      string
	Author         string
	SampleRate     int // used when a source does not carry one
	Debug          bool
	FFmpegPath     string  // empty means auto-detect
	PreviewSeconds float64 // length of audition renders
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		OutputDir:      envStr("SF2PACK_OUTPUT_DIR", "."),
		Author:         envStr("SF2PACK_AUTHOR", ""),
		SampleRate:     envInt("SF2PACK_SAMPLE_RATE", 44100),
		Debug:          envBool("SF2PACK_DEBUG", false),
		FFmpegPath:     envStr("SF2PACK_FFMPEG", ""),
		PreviewSeconds: envFloat("SF2PACK_PREVIEW_SECONDS", 2.0),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
