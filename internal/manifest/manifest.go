package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (

	// Manifest file name looked up when none is given.
	DefaultFile = "slipway.yaml"

	// Directory build contexts are resolved against by default.
	defaultSourceDir = "."

	// Directory staging files and context archives are written to.
	defaultOutputDir = "build/slipway"
)

// The declarative description of everything one run builds.
//
// The JSON tags mirror the YAML ones because a manifest also travels inside
// daemon build requests.
type Manifest struct {
	SourceDir  string            `yaml:"source-dir,omitempty" json:"source-dir,omitempty"` // Root for resolving build contexts and assembly dirs.
	OutputDir  string            `yaml:"output-dir,omitempty" json:"output-dir,omitempty"` // Root for staging dirs and context archives.
	Properties map[string]string `yaml:"properties,omitempty" json:"properties,omitempty"` // Project-level properties, also a build-argument source.
	Images     []ImageConfig     `yaml:"images" json:"images"`                             // Images to build, in declaration order.
}

// Loads and validates a manifest file.
//
// Unknown keys are rejected so that a typo fails the run instead of silently
// dropping configuration. Defaults are filled in and every image entry is
// validated before the manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	m, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifest, path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Parses manifest bytes and applies defaults.
func parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, err
	}

	if m.SourceDir == "" {
		m.SourceDir = defaultSourceDir
	}
	if m.OutputDir == "" {
		m.OutputDir = defaultOutputDir
	}

	return &m, nil
}

// Checks every image entry and rejects duplicate names.
func (m *Manifest) Validate() error {
	if len(m.Images) == 0 {
		return fmt.Errorf("%w: no images declared", ErrManifest)
	}

	seen := make(map[string]bool, len(m.Images))
	for _, img := range m.Images {
		if err := img.Validate(); err != nil {
			return err
		}
		if seen[img.Name] {
			return fmt.Errorf("%w: image %s declared twice", ErrManifest, img.Name)
		}
		seen[img.Name] = true
	}

	return nil
}

// Returns the image entry with the given name.
func (m *Manifest) Image(name string) (ImageConfig, bool) {
	for _, img := range m.Images {
		if img.Name == name {
			return img, true
		}
	}
	return ImageConfig{}, false
}
