// Package manifest reads JSON instrument descriptions.
package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaData []byte

// ErrInvalidManifest is returned for documents that do not match the schema.
var ErrInvalidManifest = errors.New("invalid manifest")

// ValidationError lists every schema violation of a manifest.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidManifest, strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidManifest
}

// Manifest describes one instrument.
type Manifest struct {
	Name       string   `json:"name"`
	Author     string   `json:"author"`
	Copyright  string   `json:"copyright"`
	Comment    string   `json:"comment"`
	DrumKit    bool     `json:"drumKit"`
	KeyMapping string   `json:"keyMapping"`
	Samples    []Sample `json:"samples"`
}

// Sample is one manifest entry. File is resolved against the manifest's directory.
type Sample struct {
	File           string `json:"file"`
	Name           string `json:"name"`
	RootNote       *int   `json:"rootNote"`
	LoopStart      *int   `json:"loopStart"`
	LoopEnd        *int   `json:"loopEnd"`
	KeyLo          *int   `json:"keyLo"`
	KeyHi          *int   `json:"keyHi"`
	ExclusiveClass *int   `json:"exclusiveClass"`
}

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaData))
})

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse validates data against the manifest schema and decodes it.
func Parse(data []byte, baseDir string) (*Manifest, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile manifest schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, re := range result.Errors() {
			verr.Violations = append(verr.Violations, re.String())
		}
		return nil, verr
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	for i := range m.Samples {
		if !filepath.IsAbs(m.Samples[i].File) {
			m.Samples[i].File = filepath.Join(baseDir, m.Samples[i].File)
		}
	}
	return &m, nil
}
