// Package physics provides constants for classroom models, in SI units.
package physics

import "math"

// Mathematics
const (
	Pi = math.Pi
	E  = math.E
)

// Physics (standard values, SI units)
const (
	// G is the standard gravitational acceleration at the Earth's surface (m/s^2)
	G = 9.81

	// GUniv is the universal gravitational constant (N m^2 / kg^2)
	GUniv = 6.67430e-11

	// C is the speed of light in vacuum (m/s)
	C = 299792458.0

	// H is the Planck constant (J s)
	H = 6.62607015e-34

	// KB is the Boltzmann constant (J/K)
	KB = 1.380649e-23

	// NA is the Avogadro constant (1/mol)
	NA = 6.02214076e23

	// R is the molar gas constant (J / (mol K))
	R = 8.314462618
)
