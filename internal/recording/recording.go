// Package recording exports recorded sessions to files and replays them.
//
// A Recording is a plain snapshot of a coach.Session: every series with its
// missing-value markers, and every explicit metadata entry. Replaying a
// recording yields a session with identical series and labels.
package recording

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wesleyorama2/coach/pkg/coach"
)

// Version is the current recording format version.
const Version = 1

// ErrInvalidRecording indicates a recording that cannot be replayed.
var ErrInvalidRecording = errors.New("invalid recording")

// Recording is a serialisable snapshot of a session.
type Recording struct {
	Version   int                       `json:"version" yaml:"version"`
	ID        string                    `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string                    `json:"title" yaml:"title"`
	Steps     int                       `json:"steps" yaml:"steps"`
	Metadata  map[string]coach.Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Variables []Variable                `json:"variables" yaml:"variables"`
}

// Variable is one recorded series, in order of first appearance.
type Variable struct {
	Name   string  `json:"name" yaml:"name"`
	Values Samples `json:"values" yaml:"values"`
}

// FromSession snapshots s.
func FromSession(s *coach.Session) *Recording {
	r := &Recording{
		Version:   Version,
		ID:        s.ID(),
		Title:     s.Title(),
		Steps:     s.Len(),
		Metadata:  make(map[string]coach.Metadata),
		Variables: make([]Variable, 0, len(s.Names())),
	}

	for _, name := range s.MetadataNames() {
		r.Metadata[name] = s.Metadata(name)
	}
	for _, name := range s.Names() {
		values, _ := s.Series(name)
		r.Variables = append(r.Variables, Variable{Name: name, Values: values})
	}

	return r
}

// Variable returns the named variable.
func (r *Recording) Variable(name string) (Variable, bool) {
	for _, v := range r.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Validate checks that the recording describes a session that could have been recorded.
func (r *Recording) Validate() error {
	if r.Version < 1 || r.Version > Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidRecording, r.Version)
	}
	if r.Steps < 0 {
		return fmt.Errorf("%w: negative step count %d", ErrInvalidRecording, r.Steps)
	}

	seen := make(map[string]struct{}, len(r.Variables))
	for _, v := range r.Variables {
		if v.Name == "" {
			return fmt.Errorf("%w: variable without a name", ErrInvalidRecording)
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("%w: variable %q listed twice", ErrInvalidRecording, v.Name)
		}
		seen[v.Name] = struct{}{}

		if len(v.Values) != r.Steps {
			return fmt.Errorf("%w: variable %q has %d values, want %d", ErrInvalidRecording, v.Name, len(v.Values), r.Steps)
		}
	}

	// Track rejects empty steps, so every recorded step has a real value
	for step := 0; step < r.Steps; step++ {
		if len(r.stepValues(step)) == 0 {
			return fmt.Errorf("%w: step %d has no values", ErrInvalidRecording, step)
		}
	}

	return nil
}

// Replay builds a new session from the recording. cfg.Title defaults to the
// recorded title. The new session gets its own ID.
func (r *Recording) Replay(cfg coach.Config) (*coach.Session, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if cfg.Title == "" {
		cfg.Title = r.Title
	}

	s := coach.NewSessionWithConfig(cfg)

	names := make([]string, 0, len(r.Metadata))
	for name := range r.Metadata {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := r.Metadata[name]
		if err := s.SetMetadata(name, m.Unit, m.Label); err != nil {
			return nil, err
		}
	}

	for step := 0; step < r.Steps; step++ {
		if err := s.Track(r.stepValues(step)...); err != nil {
			return nil, fmt.Errorf("replay step %d: %w", step, err)
		}
	}

	return s, nil
}

// stepValues returns the non-missing values of one step in variable order.
func (r *Recording) stepValues(step int) []coach.Value {
	var values []coach.Value
	for _, v := range r.Variables {
		if x := v.Values[step]; !coach.IsMissing(x) {
			values = append(values, coach.V(v.Name, x))
		}
	}
	return values
}
