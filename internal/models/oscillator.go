package models

import (
	"github.com/wesleyorama2/coach/pkg/coach"
)

type oscillator struct {
	k, m     float64
	duration float64
	t, x, v  float64
}

func newOscillator(p Params) (Model, error) {
	if err := positive(p, "k", "m", "duration"); err != nil {
		return nil, err
	}
	return &oscillator{
		k:        p["k"],
		m:        p["m"],
		duration: p["duration"],
		x:        p["x0"],
		v:        p["v0"],
	}, nil
}

func (o *oscillator) Name() string { return "oscillator" }

func (o *oscillator) Variables() []Variable {
	return []Variable{
		{Name: "t", Unit: "s", Label: "Time"},
		{Name: "x", Unit: "m", Label: "Displacement"},
		{Name: "v", Unit: "m/s", Label: "Velocity"},
		{Name: "E", Unit: "J", Label: "Energy"},
	}
}

func (o *oscillator) Step(dt float64) []coach.Value {
	a := -o.k / o.m * o.x
	o.v += a * dt
	o.x += o.v * dt
	o.t += dt

	energy := 0.5*o.m*o.v*o.v + 0.5*o.k*o.x*o.x

	return []coach.Value{
		coach.V("t", o.t),
		coach.V("x", o.x),
		coach.V("v", o.v),
		coach.V("E", energy),
	}
}

// Done allows 1e-9 of rounding in t so the final step is not repeated.
func (o *oscillator) Done() bool {
	return o.t >= o.duration-1e-9
}
