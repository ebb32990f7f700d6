package models

import "github.com/wesleyorama2/coach/pkg/coach"

type freeFall struct {
	g       float64
	t, y, v float64
}

func newFreeFall(p Params) (Model, error) {
	if err := positive(p, "y0", "g"); err != nil {
		return nil, err
	}
	return &freeFall{g: p["g"], y: p["y0"], v: p["v0"]}, nil
}

func (m *freeFall) Name() string { return "freefall" }

func (m *freeFall) Variables() []Variable {
	return []Variable{
		{Name: "t", Unit: "s", Label: "Time"},
		{Name: "y", Unit: "m", Label: "Height"},
		{Name: "v", Unit: "m/s", Label: "Velocity"},
	}
}

func (m *freeFall) Step(dt float64) []coach.Value {
	a := -m.g
	m.v += a * dt
	m.y += m.v * dt
	m.t += dt

	return []coach.Value{
		coach.V("t", m.t),
		coach.V("y", m.y),
		coach.V("v", m.v),
	}
}

func (m *freeFall) Done() bool {
	return m.y <= 0
}
