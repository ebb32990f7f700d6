package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the scenario. Model names and parameters are checked when
// the model is built, not here.
//
// Returns nil if valid, or a *ValidationErrors with every problem found.
func (s *Scenario) Validate() error {
	errs := &ValidationErrors{}

	if s.Model == "" {
		errs.Add("model", "model is required")
	}
	if s.Dt < 0 {
		errs.Add("dt", fmt.Sprintf("dt must be positive, got %g", s.Dt))
	}
	if s.MaxSteps < 0 {
		errs.Add("maxSteps", "maxSteps cannot be negative")
	}
	if s.Timeout < 0 {
		errs.Add("timeout", "timeout cannot be negative")
	}

	for name := range s.Metadata {
		if strings.TrimSpace(name) == "" {
			errs.Add("metadata", "variable name cannot be empty")
		}
	}

	for i, p := range s.Plots {
		validatePlot(fmt.Sprintf("plots[%d]", i), &p, errs)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validatePlot(prefix string, p *PlotConfig, errs *ValidationErrors) {
	if len(p.Y) == 0 {
		errs.Add(prefix+".y", "at least one dependent variable is required")
	}
	for j, y := range p.Y {
		if y == "" {
			errs.Add(fmt.Sprintf("%s.y[%d]", prefix, j), "variable name cannot be empty")
		}
	}
	if !p.Layout.Valid() {
		errs.Add(prefix+".layout", fmt.Sprintf("invalid layout '%s' (valid: overlay, separate)", p.Layout))
	}
	if p.Width < 0 || p.Height < 0 {
		errs.Add(prefix, "width and height cannot be negative")
	}
}
