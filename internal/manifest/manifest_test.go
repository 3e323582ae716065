package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validManifest = `{
  "name": "Choir",
  "author": "Jane",
  "keyMapping": "explicit",
  "samples": [
    {"file": "low.wav", "rootNote": 48, "keyLo": 0, "keyHi": 59},
    {"file": "/abs/high.wav", "name": "High", "loopStart": 10, "loopEnd": 900, "keyLo": 60, "keyHi": 127}
  ]
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "choir.json")
	if err := os.WriteFile(path, []byte(validManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Choir" || m.Author != "Jane" || m.KeyMapping != "explicit" || m.DrumKit {
		t.Errorf("manifest = %+v", m)
	}
	if len(m.Samples) != 2 {
		t.Fatalf("len(Samples) = %d, want 2", len(m.Samples))
	}
	if want := filepath.Join(dir, "low.wav"); m.Samples[0].File != want {
		t.Errorf("Samples[0].File = %q, want %q", m.Samples[0].File, want)
	}
	if m.Samples[1].File != "/abs/high.wav" {
		t.Errorf("Samples[1].File = %q, want the absolute path untouched", m.Samples[1].File)
	}
	if m.Samples[0].RootNote == nil || *m.Samples[0].RootNote != 48 {
		t.Errorf("Samples[0].RootNote = %v, want 48", m.Samples[0].RootNote)
	}
	if m.Samples[1].RootNote != nil {
		t.Errorf("Samples[1].RootNote = %v, want nil", *m.Samples[1].RootNote)
	}
	if s := m.Samples[1]; *s.LoopStart != 10 || *s.LoopEnd != 900 || *s.KeyLo != 60 || *s.KeyHi != 127 {
		t.Errorf("Samples[1] = %+v", s)
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := map[string]string{
		"missing samples":   `{"name": "x"}`,
		"unknown field":     `{"samples": [], "volume": 3}`,
		"bad key mapping":   `{"samples": [], "keyMapping": "closest"}`,
		"root out of range": `{"samples": [{"file": "a.wav", "rootNote": 128}]}`,
		"missing file":      `{"samples": [{"rootNote": 60}]}`,
		"wrong type":        `{"samples": [{"file": "a.wav", "keyLo": "low"}]}`,
		"not json":          `{"samples": [`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), ".")
			if !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("Parse error = %v, want ErrInvalidManifest", err)
			}
		})
	}
}

func TestValidationErrorListsEveryViolation(t *testing.T) {
	_, err := Parse([]byte(`{"samples": [{"file": "a.wav", "rootNote": -1, "keyHi": 300}]}`), ".")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Parse error = %v, want *ValidationError", err)
	}
	if len(verr.Violations) != 2 {
		t.Errorf("Violations = %q, want 2 entries", verr.Violations)
	}
}

func TestParseEmptySampleList(t *testing.T) {
	m, err := Parse([]byte(`{"samples": [], "drumKit": true}`), ".")
	if err != nil {
		t.Fatal(err)
	}
	if !m.DrumKit || len(m.Samples) != 0 {
		t.Errorf("manifest = %+v", m)
	}
}
