// Package hjb solves the coupled coefficient equations of the
// Hamilton-Jacobi-Bellman value function for portfolio choice under model
// ambiguity. The quadratic coefficient K2 satisfies a self-contained
// Riccati-type equation; the linear coefficient K0 depends on a continuous
// interpolant of the solved K2. Both are terminal-value problems integrated
// on a reversed time axis through the ode package.
package hjb

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/SuriChen1028/PortfolioChoice/model"
)

// quadraticRHS is the forward-time right-hand side of the Riccati equation
// for the quadratic coefficient,
//
//	dK2/dt = -1/(g B^2 + a S) + d K2
//	       + 2 K2 (S/B^2) ((g-1)B^2 + a S)/(g B^2 + a S)
//	       + K2^2 (S^2/B^2) ((g-1)B^2 + a S)/(g B^2 + a S)
//
// with S the current variance level.
func quadraticRHS(p model.Parameters, sigma, k2 float64) float64 {
	by2 := p.By * p.By
	den := p.RiskDenominator(sigma)
	ratio := ((p.Gamma-1)*by2 + p.Alpha*sigma) / den
	return -1/den + p.Delta*k2 +
		2*k2*(sigma/by2)*ratio +
		k2*k2*(sigma*sigma/by2)*ratio
}

// linearRHS is the forward-time right-hand side of the linear coefficient
// equation,
//
// dK0/dt = -d K0 + d ln(d) - d + r + K2(t) S^2 / (2 B^2).
func linearRHS(p model.Parameters, sigma, k2, k0 float64) float64 {
	return -p.Delta*k0 + p.Delta*math.Log(p.Delta) - p.Delta + p.R +
		0.5*k2*sigma*sigma/(p.By*p.By)
}

// quadraticSystem is the forward-time Riccati system. The reversed-time
// initial-value form is obtained by wrapping it in ode.TerminalValueProblem.
type quadraticSystem struct {
	params model.Parameters
}

func (s quadraticSystem) Derivative(t float64, state mat.Vector) mat.Vector {
	sigma := model.Variance(s.params.Sigma0, s.params.By, t)
	return mat.NewVecDense(1, []float64{quadraticRHS(s.params, sigma, state.AtVec(0))})
}

// linearSystem is the forward-time system for the linear coefficient. Its
// right-hand side evaluates the dense quadratic solution at the exact times
// the integrator selects, which are generally not grid-aligned.
type linearSystem struct {
	params model.Parameters
	k2     *CoefficientPath
}

func (s linearSystem) Derivative(t float64, state mat.Vector) mat.Vector {
	sigma := model.Variance(s.params.Sigma0, s.params.By, t)
	return mat.NewVecDense(1, []float64{linearRHS(s.params, sigma, s.k2.At(t), state.AtVec(0))})
}

// stateSystem reparameterizes the Riccati equation with the decaying
// variance as the independent variable. With dS/dt = -S^2/B^2 the chain rule
// gives
//
// dJ2/dS = -(B^2/S^2) * dK2/dt,
//
// integrated over increasing S from the numerical floor epsilon up to
// sigma0, which is the stable direction.
type stateSystem struct {
	params model.Parameters
}

func (s stateSystem) Derivative(sigma float64, state mat.Vector) mat.Vector {
	by2 := s.params.By * s.params.By
	d := -(by2 / (sigma * sigma)) * quadraticRHS(s.params, sigma, state.AtVec(0))
	return mat.NewVecDense(1, []float64{d})
}
