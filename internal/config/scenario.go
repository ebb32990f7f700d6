// Package config loads and validates scenario files for the coach CLI.
package config

import (
	"encoding/json"
	"time"

	"github.com/wesleyorama2/coach/pkg/coach"
)

// Scenario is the root configuration for one simulation run.
//
// Example YAML:
//
//	name: "Free fall"
//	model: freefall
//	params:
//	  y0: 1.8
//	  v0: 5
//	dt: 0.01
//	metadata:
//	  t: {unit: s, label: Time}
//	  y: {unit: m, label: Height}
//	plots:
//	  - y: [y]
//	    against: t
//	output:
//	  html: freefall.html
type Scenario struct {
	// Name is used as the session and chart title (default: model name)
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Description of the scenario (optional)
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Model selects a built-in model
	Model string `json:"model" yaml:"model"`

	// Params override the model's default parameters
	Params map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`

	// Dt is the integration step (default: 0.01)
	Dt float64 `json:"dt,omitempty" yaml:"dt,omitempty"`

	// MaxSteps caps the run (default: 100000)
	MaxSteps int `json:"maxSteps,omitempty" yaml:"maxSteps,omitempty"`

	// Timeout bounds wall-clock run time (optional)
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Metadata overrides the model's units and labels
	Metadata map[string]MetadataConfig `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Plots are drawn after the run
	Plots []PlotConfig `json:"plots,omitempty" yaml:"plots,omitempty"`

	// Output selects where results go
	Output OutputConfig `json:"output,omitempty" yaml:"output,omitempty"`
}

// MetadataConfig sets the unit and label of one variable.
type MetadataConfig struct {
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// PlotConfig describes one plot.
type PlotConfig struct {
	Y       []string     `json:"y" yaml:"y"`
	Against string       `json:"against,omitempty" yaml:"against,omitempty"`
	XLabel  string       `json:"xLabel,omitempty" yaml:"xLabel,omitempty"`
	YLabel  string       `json:"yLabel,omitempty" yaml:"yLabel,omitempty"`
	Title   string       `json:"title,omitempty" yaml:"title,omitempty"`
	Layout  coach.Layout `json:"layout,omitempty" yaml:"layout,omitempty"`
	Width   int          `json:"width,omitempty" yaml:"width,omitempty"`
	Height  int          `json:"height,omitempty" yaml:"height,omitempty"`
}

// Options converts the plot config to session plot options.
func (p PlotConfig) Options() coach.PlotOptions {
	return coach.PlotOptions{
		Against: p.Against,
		XLabel:  p.XLabel,
		YLabel:  p.YLabel,
		Title:   p.Title,
		Layout:  p.Layout,
		Width:   p.Width,
		Height:  p.Height,
	}
}

// OutputConfig selects result destinations. Empty fields are skipped.
type OutputConfig struct {
	// HTML is the path of the chart report
	HTML string `json:"html,omitempty" yaml:"html,omitempty"`

	// Export is the path of the recording (.json, .yaml, .csv, .coachz)
	Export string `json:"export,omitempty" yaml:"export,omitempty"`

	// Terminal draws the plots as text charts
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}

// Defaults
const (
	DefaultDt       = 0.01
	DefaultMaxSteps = 100000
)

// ApplyDefaults fills unset fields.
func (s *Scenario) ApplyDefaults() {
	if s.Name == "" {
		s.Name = s.Model
	}
	if s.Dt == 0 {
		s.Dt = DefaultDt
	}
	if s.MaxSteps == 0 {
		s.MaxSteps = DefaultMaxSteps
	}
}

// Duration is a time.Duration that can be unmarshaled from a string like "30s".
type Duration time.Duration

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	if s == "" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}
