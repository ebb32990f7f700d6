package models

import (
	"fmt"
	"math"

	"github.com/wesleyorama2/coach/pkg/coach"
	"github.com/wesleyorama2/coach/pkg/physics"
)

// projectile integrates m*dv/dt = -m*g*ŷ - c*|v|*v.
type projectile struct {
	g, m, c  float64
	t, x, y  float64
	vx, vy   float64
	launched bool
}

func newProjectile(p Params) (Model, error) {
	if err := positive(p, "v0", "m", "g"); err != nil {
		return nil, err
	}
	for _, name := range []string{"c", "y0"} {
		if p[name] < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidParam, name, p[name])
		}
	}

	angle := p["angle"] * physics.Pi / 180
	return &projectile{
		g:  p["g"],
		m:  p["m"],
		c:  p["c"],
		y:  p["y0"],
		vx: p["v0"] * math.Cos(angle),
		vy: p["v0"] * math.Sin(angle),
	}, nil
}

func (p *projectile) Name() string { return "projectile" }

func (p *projectile) Variables() []Variable {
	return []Variable{
		{Name: "t", Unit: "s", Label: "Time"},
		{Name: "x", Unit: "m", Label: "Distance"},
		{Name: "y", Unit: "m", Label: "Height"},
		{Name: "vx", Unit: "m/s", Label: "Horizontal velocity"},
		{Name: "vy", Unit: "m/s", Label: "Vertical velocity"},
	}
}

func (p *projectile) Step(dt float64) []coach.Value {
	speed := math.Hypot(p.vx, p.vy)
	ax := -p.c / p.m * speed * p.vx
	ay := -p.g - p.c/p.m*speed*p.vy

	p.vx += ax * dt
	p.vy += ay * dt
	p.x += p.vx * dt
	p.y += p.vy * dt
	p.t += dt
	p.launched = true

	return []coach.Value{
		coach.V("t", p.t),
		coach.V("x", p.x),
		coach.V("y", p.y),
		coach.V("vx", p.vx),
		coach.V("vy", p.vy),
	}
}

func (p *projectile) Done() bool {
	return p.launched && p.y <= 0
}
