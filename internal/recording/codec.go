package recording

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for file extensions with no codec.
var ErrUnknownFormat = errors.New("unknown recording format")

// Format names an on-disk encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
	FormatPacked Format = "coachz"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatCSV, FormatPacked}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".coachz":
		return FormatPacked, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Encode writes r to w in format f.
func Encode(w io.Writer, r *Recording, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return encodeCSV(w, r)
	case FormatPacked:
		return encodePacked(w, r, 3)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode parses data in format f and validates the result.
func Decode(data []byte, f Format) (*Recording, error) {
	var (
		r   *Recording
		err error
	)

	switch f {
	case FormatJSON:
		if err := ValidateJSON(data); err != nil {
			return nil, err
		}
		r = &Recording{}
		err = json.Unmarshal(data, r)
	case FormatYAML:
		r = &Recording{}
		err = yaml.Unmarshal(data, r)
	case FormatCSV:
		r, err = decodeCSV(bytes.NewReader(data))
	case FormatPacked:
		r, err = decodePacked(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s recording: %w", f, err)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Save writes r to path, choosing the format from the extension.
func Save(path string, r *Recording) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, r, f); err != nil {
		return fmt.Errorf("failed to encode recording: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write recording: %w", err)
	}
	return nil
}

// Load reads and validates the recording at path.
func Load(path string) (*Recording, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}

	return Decode(data, f)
}
