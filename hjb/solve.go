package hjb

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/SuriChen1028/PortfolioChoice/model"
	"github.com/SuriChen1028/PortfolioChoice/ode"
)

// Tolerance is the per-step local error bound handed to the adaptive
// integrator by all three solvers. The integrator scales it by the state
// magnitude, so it is effectively relative for the large coefficient values
// near the limiting fixed point.
const Tolerance = 1e-9

// SolveQuadratic solves the Riccati equation for the quadratic coefficient
// K2 over [0, T]. The terminal condition selects K2(T): zero for the finite
// horizon, the closed-form limiting value for the near-infinite horizon. The
// returned path carries both the grid samples on the horizon's evaluation
// grid and a dense interpolant, which SolveLinear requires.
func SolveQuadratic(p model.Parameters, h model.Horizon, tc model.TerminalCondition) (*CoefficientPath, error) {
	if err := validateRun(p, h, tc); err != nil {
		return nil, err
	}
	terminal := 0.
	if tc == model.LimitingTerminal {
		terminal, _ = SteadyState(p)
	}
	problem := ode.TerminalValueProblem{Horizon: h.T, System: quadraticSystem{params: p}}
	sol, err := ode.NewFehlberg45().AdaptiveDense(0, h.T, Tolerance, mat.NewVecDense(1, []float64{terminal}), problem)
	if err != nil {
		return nil, fmt.Errorf("quadratic coefficient: %w", err)
	}
	return reversedPath(sol, h), nil
}

// SolveLinear solves the equation for the linear coefficient K0 over the
// same horizon. Its right-hand side queries the dense K2 solution at
// integrator-chosen times, so the quadratic solve must have completed first
// and must cover the same horizon.
func SolveLinear(p model.Parameters, h model.Horizon, tc model.TerminalCondition, k2 *CoefficientPath) (*CoefficientPath, error) {
	if err := validateRun(p, h, tc); err != nil {
		return nil, err
	}
	if k2 == nil {
		return nil, fmt.Errorf("%w: quadratic coefficient path is required", model.ErrInvalidParameter)
	}
	if lo, hi := k2.Span(); lo > 0 || hi < h.T {
		return nil, fmt.Errorf("%w: quadratic path spans [%v, %v], want [0, %v]", model.ErrInvalidParameter, lo, hi, h.T)
	}
	terminal := 0.
	if tc == model.LimitingTerminal {
		_, terminal = SteadyState(p)
	}
	problem := ode.TerminalValueProblem{Horizon: h.T, System: linearSystem{params: p, k2: k2}}
	sol, err := ode.NewFehlberg45().AdaptiveDense(0, h.T, Tolerance, mat.NewVecDense(1, []float64{terminal}), problem)
	if err != nil {
		return nil, fmt.Errorf("linear coefficient: %w", err)
	}
	return reversedPath(sol, h), nil
}

// SolveState solves the state-parameterized form J2(Sigma) of the quadratic
// coefficient over [epsilon, sigma0], starting from the closed-form limiting
// value at the numerical floor epsilon. Re-expressed through the decay map
// this must agree with the time-parameterized limiting solution; the two are
// alternative parameterizations of the same unknown, not independent
// algorithms.
func SolveState(p model.Parameters, epsilon float64) (*CoefficientPath, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(epsilon > 0) || epsilon >= p.Sigma0 {
		return nil, fmt.Errorf("%w: epsilon must lie in (0, sigma0), got %v", model.ErrInvalidParameter, epsilon)
	}
	limit, _ := SteadyState(p)
	sol, err := ode.NewFehlberg45().AdaptiveDense(epsilon, p.Sigma0, Tolerance, mat.NewVecDense(1, []float64{limit}), stateSystem{params: p})
	if err != nil {
		return nil, fmt.Errorf("state-parameterized coefficient: %w", err)
	}
	values := make([]float64, len(sol.Times))
	for i, state := range sol.States {
		values[i] = state[0]
	}
	return &CoefficientPath{Times: append([]float64(nil), sol.Times...), Values: values, dense: sol}, nil
}

// reversedPath samples a reversed-time solution on the horizon's grid and
// flips the sample order back to forward time.
func reversedPath(sol *ode.Solution, h model.Horizon) *CoefficientPath {
	times := h.Grid()
	values := make([]float64, len(times))
	for i, s := range times {
		values[i] = sol.At(s, 0)
	}
	// The grid is uniform over [0, T], so index-order inversion of samples
	// taken on the reversed axis yields the forward-time samples.
	ode.ReverseSamples(values)
	return &CoefficientPath{Times: times, Values: values, dense: sol, reversed: true, horizon: h.T}
}

func validateRun(p model.Parameters, h model.Horizon, tc model.TerminalCondition) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := h.Validate(); err != nil {
		return err
	}
	return tc.Validate()
}
