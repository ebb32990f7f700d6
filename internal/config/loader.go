package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadScenario reads, defaults and validates a scenario file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	sc, err := ParseScenario(data, path)
	if err != nil {
		return nil, err
	}

	sc.ApplyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// ParseScenario parses scenario data. The format comes from the extension of
// path; empty or unknown extensions are parsed as YAML.
func ParseScenario(data []byte, path string) (*Scenario, error) {
	var sc Scenario

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON scenario: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML scenario: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("failed to parse scenario (unknown format %s): %w", ext, err)
		}
	}

	return &sc, nil
}
