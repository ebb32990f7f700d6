// Package models provides the built-in classroom simulations used by the coach CLI.
//
// Every model is a plain Euler integrator: Step advances the state by dt and
// returns the values to record for that step.
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wesleyorama2/coach/pkg/coach"
	"github.com/wesleyorama2/coach/pkg/physics"
)

var (
	// ErrUnknownModel indicates a model name that is not registered.
	ErrUnknownModel = errors.New("unknown model")

	// ErrInvalidParam indicates a missing, unknown or out-of-range parameter.
	ErrInvalidParam = errors.New("invalid model parameter")
)

// Variable describes one recorded quantity and its default presentation.
type Variable struct {
	Name  string
	Unit  string
	Label string
}

// Model is a stepping simulation.
type Model interface {
	// Name returns the registry name of the model
	Name() string

	// Variables lists the recorded quantities in recording order
	Variables() []Variable

	// Step advances the model by dt and returns the values for this step
	Step(dt float64) []coach.Value

	// Done reports whether the model has reached its stop condition
	Done() bool
}

// Params are named model parameters. Missing entries take model defaults.
type Params map[string]float64

// Factory builds a model from parameters.
type Factory func(p Params) (Model, error)

type entry struct {
	factory     Factory
	description string
	defaults    Params
}

var registry = map[string]entry{
	"freefall": {
		factory:     newFreeFall,
		description: "Vertical throw under constant gravity, stops at the ground",
		defaults:    Params{"y0": 1.8, "v0": 5, "g": physics.G},
	},
	"oscillator": {
		factory:     newOscillator,
		description: "Mass on a spring, runs for a fixed duration",
		defaults:    Params{"k": 10, "m": 1, "x0": 1, "v0": 0, "duration": 10},
	},
	"projectile": {
		factory:     newProjectile,
		description: "Two-dimensional throw with quadratic air drag, stops at the ground",
		defaults:    Params{"v0": 20, "angle": 45, "m": 0.15, "c": 0.01, "y0": 0, "g": physics.G},
	},
}

// New builds the named model.
func New(name string, p Params) (Model, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownModel, name, strings.Join(Names(), ", "))
	}

	merged, err := merge(e.defaults, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	m, err := e.factory(merged)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Names returns the registered model names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description and the default parameters of a model.
func Describe(name string) (string, Params, bool) {
	e, ok := registry[name]
	if !ok {
		return "", nil, false
	}
	defaults := make(Params, len(e.defaults))
	for k, v := range e.defaults {
		defaults[k] = v
	}
	return e.description, defaults, true
}

// merge overlays p on defaults and rejects parameters the model does not know.
func merge(defaults, p Params) (Params, error) {
	out := make(Params, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range p {
		if _, known := defaults[k]; !known {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParam, k)
		}
		out[k] = v
	}
	return out, nil
}

func positive(p Params, names ...string) error {
	for _, name := range names {
		if p[name] <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParam, name, p[name])
		}
	}
	return nil
}
