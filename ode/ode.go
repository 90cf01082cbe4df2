// Package ode implements embedded Runge-Kutta methods
// https://en.wikipedia.org/wiki/Runge–Kutta_methods with adaptive step-size
// control and dense (continuously evaluable) output. The integrated system is
// described through the DifferentiableSystem interface.
package ode

import (
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

// DifferentiableSystem describes a system of ordinary differential equations
//
// x'(t) = f(t, x(t))
//
// by its derivative field f.
type DifferentiableSystem interface {
	Derivative(t float64, state mat.Vector) mat.Vector
}

// RungeKutta holds the butcherTableau which describes the Runge-Kutta method.
type RungeKutta struct {
	Description butcherTableau
}

// butcherTableau describes the approximate solution, see
// https://en.wikipedia.org/wiki/Runge–Kutta_methods. When weights holds two
// rows the difference between the two quadratures provides an embedded local
// error estimate.
type butcherTableau struct {
	stages           int
	weights          [][]float64
	nodes            []float64
	rungeKuttaMatrix [][]float64
	order            float64
}

// NewRK4 function returns a fourth order Runge-Kutta object
func NewRK4() *RungeKutta {
	var temp butcherTableau
	temp.stages = 4
	temp.nodes = []float64{0, 1. / 2., 1. / 2., 1}
	temp.weights = [][]float64{{1. / 6., 1. / 3., 1. / 3., 1. / 6.}}
	temp.rungeKuttaMatrix = [][]float64{
		nil,
		{1. / 2.},
		{0, 1. / 2.},
		{0, 0, 1.},
	}
	temp.order = 4
	rk := RungeKutta{temp}
	return &rk
}

// NewFehlberg45 implements https://en.wikipedia.org/wiki/Runge%E2%80%93Kutta%E2%80%93Fehlberg_method
func NewFehlberg45() *RungeKutta {
	var temp butcherTableau
	temp.stages = 6
	temp.nodes = []float64{0, 1. / 4., 3. / 8., 12. / 13., 1., 1. / 2.}
	temp.weights = [][]float64{
		{16. / 135., 0, 6656. / 12825., 28561. / 56430., -9. / 50., 2. / 55.},
		{25. / 216., 0, 1408. / 2565., 2197. / 4104., -1. / 5., 0},
	}
	temp.rungeKuttaMatrix = [][]float64{
		nil,
		{1. / 4.},
		{3. / 32., 9. / 32.},
		{1932. / 2197., -7200. / 2197., 7296. / 2197.},
		{439. / 216., -8., 3680. / 513., -845. / 4104.},
		{-8. / 27., 2, -3544. / 2565., 1859. / 4104., -11. / 40.},
	}
	temp.order = 5
	rk := RungeKutta{temp}
	return &rk
}

// step advances the state one step of length h from time t. The derivative at
// (t, value) is passed in as deriv0 since the caller already knows it (the
// first node of both supported tableaus is zero). Stage times are clamped to
// tmax so a clamped final step cannot query the right-hand side past the
// integration interval by a rounding error. Returns the advanced state and
// the embedded local error estimate in infinity norm, zero for tableaus
// without an embedded pair.
func (rk RungeKutta) step(t, h, tmax float64, value *mat.VecDense, deriv0 mat.Vector, system DifferentiableSystem) (*mat.VecDense, float64) {
	m := value.Len()

	// The precomputed derivative points
	K := make([]mat.Vector, rk.Description.stages)
	for index := range K {
		if index == 0 && deriv0 != nil {
			K[0] = deriv0
			continue
		}
		var tempV mat.VecDense
		tempV.CloneFromVec(value)
		// Compute the relevant vector by combining previously computed
		// derivative points according to the Butcher tableau.
		for index2, a := range rk.Description.rungeKuttaMatrix[index] {
			if a == 0 {
				continue
			}
			tempV.AddScaledVec(&tempV, h*a, K[index2])
		}
		stageTime := t + h*rk.Description.nodes[index]
		if stageTime > tmax {
			stageTime = tmax
		}
		K[index] = system.Derivative(stageTime, &tempV)
	}

	next := mat.NewVecDense(m, nil)
	next.CloneFromVec(value)
	errVec := mat.NewVecDense(m, nil)
	// Sum up the different contributions with relevant weights.
	for index, k := range K {
		next.AddScaledVec(next, h*rk.Description.weights[0][index], k)
		if len(rk.Description.weights) == 2 {
			errVec.AddScaledVec(errVec, h*(rk.Description.weights[1][index]-rk.Description.weights[0][index]), k)
		}
	}

	errEst := 0.
	for index := 0; index < m; index++ {
		errEst = math.Max(errEst, math.Abs(errVec.AtVec(index)))
	}
	return next, errEst
}

// Solution holds the accepted steps of an adaptive integration together with
// a dense interpolant. The interpolant is a piecewise cubic Hermite fitted to
// the accepted states and their derivatives, so the solution can be evaluated
// at arbitrary points within the integration span, not only at the accepted
// nodes.
type Solution struct {
	// Times holds the accepted step times in increasing order.
	Times []float64
	// States holds the accepted states, States[i] corresponding to Times[i].
	States [][]float64

	interpolants []interp.PiecewiseCubic
}

// Dim returns the state dimension.
func (s *Solution) Dim() int {
	return len(s.interpolants)
}

// Span returns the interval covered by the solution.
func (s *Solution) Span() (float64, float64) {
	return s.Times[0], s.Times[len(s.Times)-1]
}

// At evaluates one component of the dense solution at time t. Querying
// outside the integration span is a contract violation and panics with an
// *OutOfRangeError.
func (s *Solution) At(t float64, component int) float64 {
	t0, t1 := s.Span()
	if t < t0 || t > t1 {
		panic(&OutOfRangeError{T: t, From: t0, To: t1})
	}
	return s.interpolants[component].Predict(t)
}

// fit builds the per-component Hermite interpolants from the recorded nodes.
func (s *Solution) fit(derivs [][]float64) {
	dim := len(s.States[0])
	n := len(s.Times)
	s.interpolants = make([]interp.PiecewiseCubic, dim)
	for component := 0; component < dim; component++ {
		ys := make([]float64, n)
		dydxs := make([]float64, n)
		for i := 0; i < n; i++ {
			ys[i] = s.States[i][component]
			dydxs[i] = derivs[i][component]
		}
		s.interpolants[component].FitWithDerivatives(s.Times, ys, dydxs)
	}
}

const (
	// maxNumberOfSteps bounds the total step attempts of one integration.
	maxNumberOfSteps = 10000000
	// The step-size update factor is stepSafety*(bound/err)^(1/order). On a
	// rejected step it is clamped to at least minStepScale; on an accepted
	// step to [1, maxStepScale] so acceptances never shrink the step.
	stepSafety   = 0.9
	minStepScale = 0.1
	maxStepScale = 5.
)

// AdaptiveDense integrates the system from time from to time to, starting at
// state initial. Each step is accepted when the embedded local error estimate
// stays below tol*(1 + |state|), so tol acts as an absolute bound for states
// of order one and a relative bound for large states. The returned Solution
// supports dense evaluation over [from, to]. On failure the returned error is
// an *IntegrationError carrying the last accepted time and state.
func (rk RungeKutta) AdaptiveDense(from, to, tol float64, initial mat.Vector, system DifferentiableSystem) (*Solution, error) {
	if len(rk.Description.weights) != 2 {
		panic("ode: tableau has no embedded error estimate")
	}
	if to <= from {
		return nil, &IntegrationError{T: from, Reason: "empty integration interval"}
	}

	m := initial.Len()
	state := mat.NewVecDense(m, nil)
	state.CloneFromVec(initial)

	t := from
	deriv := system.Derivative(t, state)
	if nanOrInf(deriv) {
		return nil, &IntegrationError{T: t, State: rawCopy(state), Reason: "non-finite derivative"}
	}

	sol := &Solution{}
	derivs := make([][]float64, 0, 64)
	sol.Times = append(sol.Times, t)
	sol.States = append(sol.States, rawCopy(state))
	derivs = append(derivs, rawCopy(deriv))

	h := (to - from) / 100.
	exponent := 1. / rk.Description.order

	for count := 0; t < to; count++ {
		if count >= maxNumberOfSteps {
			return nil, &IntegrationError{T: t, State: rawCopy(state), Reason: "maximum number of steps reached"}
		}
		final := false
		if t+h >= to {
			h = to - t
			final = true
		}
		next, errEst := rk.step(t, h, to, state, deriv, system)
		if nanOrInf(next) || math.IsNaN(errEst) || math.IsInf(errEst, 0) {
			return nil, &IntegrationError{T: t, State: rawCopy(state), Reason: "non-finite right-hand side"}
		}
		bound := tol * (1 + normInf(next))
		if errEst > bound {
			// Reject and retry with a smaller step.
			scale := stepSafety * math.Pow(bound/errEst, exponent)
			h *= math.Max(scale, minStepScale)
			continue
		}
		// Accept the step. Land on the endpoint exactly so the dense span
		// covers all of [from, to].
		if final {
			t = to
		} else {
			t += h
		}
		state = next
		deriv = system.Derivative(t, state)
		if nanOrInf(deriv) {
			return nil, &IntegrationError{T: t, State: rawCopy(state), Reason: "non-finite derivative"}
		}
		sol.Times = append(sol.Times, t)
		sol.States = append(sol.States, rawCopy(state))
		derivs = append(derivs, rawCopy(deriv))

		if errEst == 0 {
			h *= maxStepScale
		} else {
			scale := stepSafety * math.Pow(bound/errEst, exponent)
			h *= math.Min(math.Max(scale, 1), maxStepScale)
		}
	}

	sol.fit(derivs)
	return sol, nil
}

// rawCopy copies a vector into a fresh slice.
func rawCopy(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// normInf returns the infinity norm of a vector.
func normInf(v mat.Vector) float64 {
	max := 0.
	for i := 0; i < v.Len(); i++ {
		max = math.Max(max, math.Abs(v.AtVec(i)))
	}
	return max
}
