package recording

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/wesleyorama2/coach/pkg/coach"
)

// packedMagic opens every .coachz file.
var packedMagic = []byte("COACHZ1\n")

type packedRecording struct {
	Version   int                       `json:"version"`
	ID        string                    `json:"id,omitempty"`
	Title     string                    `json:"title"`
	Steps     int                       `json:"steps"`
	Metadata  map[string]coach.Metadata `json:"metadata,omitempty"`
	Variables []packedVariable          `json:"variables"`
}

type packedVariable struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

func encodePacked(w io.Writer, r *Recording, level int) error {
	c, err := NewCompressor(level)
	if err != nil {
		return err
	}
	defer c.Close()

	p := packedRecording{
		Version:   r.Version,
		ID:        r.ID,
		Title:     r.Title,
		Steps:     r.Steps,
		Metadata:  r.Metadata,
		Variables: make([]packedVariable, len(r.Variables)),
	}
	for i, v := range r.Variables {
		data, err := c.CompressValues(v.Values)
		if err != nil {
			return fmt.Errorf("compressing %q: %w", v.Name, err)
		}
		p.Variables[i] = packedVariable{Name: v.Name, Data: data}
	}

	if _, err := w.Write(packedMagic); err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(p)
}

func decodePacked(data []byte) (*Recording, error) {
	if !bytes.HasPrefix(data, packedMagic) {
		return nil, fmt.Errorf("missing %q header", bytes.TrimSpace(packedMagic))
	}

	var p packedRecording
	if err := json.Unmarshal(data[len(packedMagic):], &p); err != nil {
		return nil, err
	}
	if p.Steps < 0 {
		return nil, fmt.Errorf("negative step count %d", p.Steps)
	}

	c, err := NewCompressor(0)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	r := &Recording{
		Version:   p.Version,
		ID:        p.ID,
		Title:     p.Title,
		Steps:     p.Steps,
		Metadata:  p.Metadata,
		Variables: make([]Variable, len(p.Variables)),
	}
	for i, v := range p.Variables {
		values, err := c.DecompressValues(v.Data, p.Steps)
		if err != nil {
			return nil, fmt.Errorf("decompressing %q: %w", v.Name, err)
		}
		r.Variables[i] = Variable{Name: v.Name, Values: values}
	}

	return r, nil
}
