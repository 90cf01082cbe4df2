package ode

import (
	"gonum.org/v1/gonum/mat"
)

// TerminalValueProblem converts an ordinary differential equation
//
// dy/dt = f(t, y),  t in [0, T],  y(T) = yT
//
// pinned at the END of its time domain into an equivalent initial-value
// problem on the reversed axis s = T - t:
//
// dz/ds = -f(T - s, z(s)),  z(0) = yT.
//
// Integrating the wrapped system over s in [0, T] and reversing the output
// sample order recovers y at forward times. The wrapper is a pure algebraic
// transform and holds no state of its own.
type TerminalValueProblem struct {
	// Horizon is the forward terminal time T.
	Horizon float64
	// System is the forward-time system f.
	System DifferentiableSystem
}

// Derivative implements DifferentiableSystem on the reversed time axis.
func (p TerminalValueProblem) Derivative(s float64, state mat.Vector) mat.Vector {
	d := p.System.Derivative(p.Horizon-s, state)
	out := mat.NewVecDense(d.Len(), nil)
	out.ScaleVec(-1, d)
	return out
}

// ReverseSamples inverts the index order of a grid-sampled array in place.
// A sequence sampled at reversed times s = 0, h, ..., T becomes the same
// values indexed by forward time t = 0, h, ..., T. Only the order changes;
// the values are untouched.
func ReverseSamples(xs []float64) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
