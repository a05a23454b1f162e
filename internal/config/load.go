// Package config loads simulation inputs from disk and provides the named
// preset scenarios.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wbusacker/robot-gnc/internal/engine"
	"github.com/wbusacker/robot-gnc/internal/simerr"
)

// MaxFileSize caps the size of an input file.
const MaxFileSize = 1 * 1024 * 1024 // 1MB

// Format is the encoding of an input document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", simerr.Configf("input file must have .json, .yaml or .yml extension, got %q", ext)
	}
}

// Load reads a simulation input from a JSON or YAML file.
func Load(path string) (engine.SimulationInput, error) {
	cleanPath := filepath.Clean(path)
	format, err := FormatForPath(cleanPath)
	if err != nil {
		return engine.SimulationInput{}, err
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return engine.SimulationInput{}, fmt.Errorf("failed to stat input file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return engine.SimulationInput{}, simerr.Configf("input file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return engine.SimulationInput{}, fmt.Errorf("failed to read input file: %w", err)
	}

	in, err := Parse(data, format)
	if err != nil {
		return engine.SimulationInput{}, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return in, nil
}

// Parse decodes a simulation input. Unknown fields are rejected so a typo
// never silently falls back to a default.
func Parse(data []byte, format Format) (engine.SimulationInput, error) {
	var in engine.SimulationInput
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return in, fmt.Errorf("%w: parsing JSON: %v", simerr.ErrConfiguration, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&in); err != nil {
			return in, fmt.Errorf("%w: parsing YAML: %v", simerr.ErrConfiguration, err)
		}
	default:
		return in, simerr.Configf("unknown input format %q", format)
	}
	return in, nil
}
